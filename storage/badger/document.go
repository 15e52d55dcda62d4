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

package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/termgraph/core"
	"github.com/poiesic/termgraph/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	return &DocumentRepository{
		backend: backend,
	}, nil
}

// Close releases resources. DocumentRepository has no resources to release.
func (r *DocumentRepository) Close() error {
	return nil
}

// AddDocument stores a document with its term nodes and edges in one transaction.
func (r *DocumentRepository) AddDocument(ctx context.Context, doc *core.Document, counts map[string]int) (*core.Document, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}
	for text, count := range counts {
		if count < 0 {
			return nil, fmt.Errorf("%w: %w: term %q count %d", core.ErrInvalidDocument, core.ErrNegativeCount, text, count)
		}
	}

	doc.Id = core.DocumentID(doc.Corpus, doc.Name)
	if doc.InsertedAt.IsZero() {
		doc.InsertedAt = timestamp()
	} else {
		doc.InsertedAt = doc.InsertedAt.UTC().Truncate(time.Microsecond)
	}
	corpusID := core.CorpusID(doc.Corpus)

	err := r.backend.Update(func(tx *badger.Txn) error {
		// A re-added document replaces its previous edges.
		for _, key := range scanKeys(tx, makeIDKey(documentTermPrefix, doc.Id)) {
			if err := tx.Delete(makeTermFrequencyKey(trailingID(key), doc.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		if err := tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
			return err
		}
		if err := tx.Set(makeCorpusDocumentKey(corpusID, doc.Id), emptyValue); err != nil {
			return err
		}

		for text, count := range counts {
			if text == "" || count == 0 {
				continue
			}
			termID, err := ensureTerm(tx, corpusID, doc.Corpus, text)
			if err != nil {
				return err
			}

			edge := &core.TermFrequency{
				TermId:     termID,
				DocumentId: doc.Id,
				Count:      count,
			}
			if doc.Length > 0 {
				edge.TF = float64(count) / float64(doc.Length)
			}
			if err := tx.Set(makeTermFrequencyKey(termID, doc.Id), storage.MarshalTermFrequency(edge)); err != nil {
				return err
			}
			if err := tx.Set(makeDocumentTermKey(doc.Id, termID), emptyValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ensureTerm creates the term node if the corpus doesn't have it yet.
func ensureTerm(tx *badger.Txn, corpusID core.ID, corpus, text string) (core.ID, error) {
	termID := core.TermID(corpus, text)
	key := makeTermKey(termID)
	_, err := tx.Get(key)
	if err == nil {
		return termID, nil
	}
	if err != badger.ErrKeyNotFound {
		return 0, err
	}

	term := &core.Term{
		Id:        termID,
		Corpus:    corpus,
		Text:      text,
		UpdatedAt: timestamp(),
	}
	if err := tx.Set(key, storage.MarshalTerm(term)); err != nil {
		return 0, err
	}
	if err := tx.Set(makeCorpusTermKey(corpusID, termID), emptyValue); err != nil {
		return 0, err
	}
	return termID, nil
}

// GetDocument retrieves a document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var doc *core.Document
	err := r.backend.View(func(tx *badger.Txn) error {
		var err error
		doc, err = readValue(tx, makeDocumentKey(id), storage.UnmarshalDocument)
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document %d", storage.ErrNotFound, id)
	}
	return doc, nil
}

// CountDocuments returns the number of documents in a corpus.
func (r *DocumentRepository) CountDocuments(ctx context.Context, corpus string) (int, error) {
	count := 0
	err := r.backend.View(func(tx *badger.Txn) error {
		count = countKeys(tx, makeIDKey(corpusDocumentPrefix, core.CorpusID(corpus)))
		return nil
	})
	return count, err
}

// TermFrequencies returns the edges of a document, ordered by term ID.
func (r *DocumentRepository) TermFrequencies(ctx context.Context, documentID core.ID) ([]*core.TermFrequency, error) {
	var edges []*core.TermFrequency
	err := r.backend.View(func(tx *badger.Txn) error {
		for _, key := range scanKeys(tx, makeIDKey(documentTermPrefix, documentID)) {
			edge, err := readValue(tx, makeTermFrequencyKey(trailingID(key), documentID), storage.UnmarshalTermFrequency)
			if err != nil {
				return err
			}
			if edge != nil {
				edges = append(edges, edge)
			}
		}
		return nil
	})
	return edges, err
}
