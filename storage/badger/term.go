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

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/termgraph/core"
	"github.com/poiesic/termgraph/storage"
)

// TermRepository implements storage.TermRepository for BadgerDB.
type TermRepository struct {
	backend *Backend
}

var _ storage.TermRepository = (*TermRepository)(nil)

// NewTermRepository creates a new TermRepository.
func NewTermRepository(backend *Backend) (*TermRepository, error) {
	return &TermRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TermRepository has no resources to release.
func (r *TermRepository) Close() error {
	return nil
}

// GetTerm retrieves a term by ID.
func (r *TermRepository) GetTerm(ctx context.Context, id core.ID) (*core.Term, error) {
	var term *core.Term
	err := r.backend.View(func(tx *badger.Txn) error {
		var err error
		term, err = readValue(tx, makeTermKey(id), storage.UnmarshalTerm)
		return err
	})
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, fmt.Errorf("%w: term %d", storage.ErrNotFound, id)
	}
	return term, nil
}

// GetTerms retrieves multiple terms by their IDs, skipping missing ones.
func (r *TermRepository) GetTerms(ctx context.Context, ids ...core.ID) ([]*core.Term, error) {
	terms := make([]*core.Term, 0, len(ids))
	err := r.backend.View(func(tx *badger.Txn) error {
		for _, id := range ids {
			term, err := readValue(tx, makeTermKey(id), storage.UnmarshalTerm)
			if err != nil {
				return err
			}
			if term != nil {
				terms = append(terms, term)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// FindTerm looks a term up by its text within a corpus.
func (r *TermRepository) FindTerm(ctx context.Context, corpus, text string) (*core.Term, error) {
	term, err := r.GetTerm(ctx, core.TermID(corpus, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %q in corpus %q", err, text, corpus)
	}
	return term, nil
}

// ListTermIDs returns the IDs of every term of a corpus in key order.
func (r *TermRepository) ListTermIDs(ctx context.Context, corpus string) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.View(func(tx *badger.Txn) error {
		for _, key := range scanKeys(tx, makeIDKey(corpusTermPrefix, core.CorpusID(corpus))) {
			ids = append(ids, trailingID(key))
		}
		return nil
	})
	return ids, err
}

// CountDocumentFrequency counts the documents a term has edges to.
func (r *TermRepository) CountDocumentFrequency(ctx context.Context, id core.ID) (int, error) {
	count := 0
	err := r.backend.View(func(tx *badger.Txn) error {
		count = countKeys(tx, makeIDKey(termFrequencyPrefix, id))
		return nil
	})
	return count, err
}

// SetTermStatistics stores DocumentFrequency and IDF of existing terms.
func (r *TermRepository) SetTermStatistics(ctx context.Context, terms ...*core.Term) error {
	for _, term := range terms {
		if term.DocumentFrequency < 0 {
			return fmt.Errorf("%w: %w: document frequency %d", core.ErrInvalidTerm, core.ErrNegativeCount, term.DocumentFrequency)
		}
	}

	return r.backend.Update(func(tx *badger.Txn) error {
		now := timestamp()
		for _, term := range terms {
			key := makeTermKey(term.Id)
			stored, err := readValue(tx, key, storage.UnmarshalTerm)
			if err != nil {
				return err
			}
			if stored == nil {
				return fmt.Errorf("%w: term %d", storage.ErrNotFound, term.Id)
			}

			stored.DocumentFrequency = term.DocumentFrequency
			stored.IDF = term.IDF
			stored.UpdatedAt = now
			if err := tx.Set(key, storage.MarshalTerm(stored)); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateTFIDF sets TFIDF = TF * IDF on every edge of the given terms.
// Edges are rewritten through a write batch since a frequent term can have
// more edges than fit in one transaction.
func (r *TermRepository) UpdateTFIDF(ctx context.Context, ids ...core.ID) (int, error) {
	wb := r.backend.NewWriteBatch()
	defer wb.Cancel()

	updated := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		var edges []*core.TermFrequency
		err := r.backend.View(func(tx *badger.Txn) error {
			term, err := readValue(tx, makeTermKey(id), storage.UnmarshalTerm)
			if err != nil {
				return err
			}
			if term == nil {
				return fmt.Errorf("%w: term %d", storage.ErrNotFound, id)
			}
			edges, err = readEdges(tx, id)
			if err != nil {
				return err
			}
			for _, edge := range edges {
				edge.TFIDF = edge.TF * term.IDF
			}
			return nil
		})
		if err != nil {
			return updated, err
		}

		for _, edge := range edges {
			key := makeTermFrequencyKey(edge.TermId, edge.DocumentId)
			if err := wb.Set(key, storage.MarshalTermFrequency(edge)); err != nil {
				return updated, err
			}
		}
		updated += len(edges)
	}

	if err := wb.Flush(); err != nil {
		return 0, err
	}
	return updated, nil
}

// readEdges decodes every TermFrequency edge of a term.
func readEdges(tx *badger.Txn, termID core.ID) ([]*core.TermFrequency, error) {
	prefix := makeIDKey(termFrequencyPrefix, termID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var edges []*core.TermFrequency
	for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
		err := iter.Item().Value(func(val []byte) error {
			edge, err := storage.UnmarshalTermFrequency(val)
			if err != nil {
				return err
			}
			edges = append(edges, edge)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return edges, nil
}
