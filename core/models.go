// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for graph nodes.
// It is derived from content so that re-ingesting the same input merges
// instead of duplicating.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CorpusID returns the ID of the corpus with the given name.
func CorpusID(name string) ID {
	return IDFromContent("corpus\x00" + name)
}

// DocumentID returns the ID of a document within a corpus.
func DocumentID(corpus, name string) ID {
	return IDFromContent("document\x00" + corpus + "\x00" + name)
}

// TermID returns the ID of a term within a corpus.
func TermID(corpus, text string) ID {
	return IDFromContent("term\x00" + corpus + "\x00" + text)
}

// Corpus is the root node that documents and terms belong to.
type Corpus struct {
	Id          ID
	Name        string
	Description string
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Document is a single text of a corpus.
type Document struct {
	Id         ID
	Corpus     string
	Name       string    // Unique within the corpus, typically the file name
	Source     string    // Where the text came from (path or URL)
	Length     int       // Number of tokens counted in the text
	InsertedAt time.Time // When the document was added to the graph
}

// Term is a distinct token of a corpus together with its corpus-level statistics.
type Term struct {
	Id                ID
	Corpus            string
	Text              string
	DocumentFrequency int     // Number of documents containing the term (populated by the frequency stage)
	IDF               float64 // Inverse document frequency (populated by the frequency stage)
	UpdatedAt         time.Time
}

// TermFrequency is the edge between a term and a document it occurs in.
type TermFrequency struct {
	TermId     ID
	DocumentId ID
	Count      int     // Raw occurrences of the term in the document
	TF         float64 // Count divided by the document length
	TFIDF      float64 // TF times the term's IDF (populated by the TF-IDF stage)
}

// Checkpoint records how far a stage got for a corpus.
type Checkpoint struct {
	Stage      string
	Corpus     string
	EpochsDone int
	UpdatedAt  time.Time
}

// TermScore is the weight of one term of a scored text.
type TermScore struct {
	Text  string
	Count int
	TF    float64
	IDF   float64
	TFIDF float64
}
