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


// Package storage provides the term/document graph abstraction for termgraph.
//
// The graph has three kinds of nodes and one kind of edge:
//
//   - Corpus: the root a set of documents belongs to
//   - Document: one text of the corpus
//   - Term: a distinct token of the corpus with its document frequency and IDF
//   - TermFrequency: the edge from a term to a document it occurs in,
//     carrying the raw count, TF and TF-IDF
//
// Repository interfaces decouple the statistics pipeline from the storage
// engine. The BadgerDB implementation lives in storage/badger.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	docs := badger.NewDocumentRepository(backend)
//	terms := badger.NewTermRepository(backend)
//
// # Thread Safety
//
// All repository implementations must be safe for concurrent use. Blocks of
// an execution plan write documents in parallel, so AddDocument in particular
// must tolerate concurrent creation of the same term node.
//
// # Context Support
//
// All repository methods accept context.Context. Long scans check it between
// batches.
package storage
