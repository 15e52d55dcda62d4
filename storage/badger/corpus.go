package badger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/termgraph/core"
	"github.com/poiesic/termgraph/storage"
)

// DefaultDeleteBatchSize is used by DeleteCorpus when batchSize is not positive.
const DefaultDeleteBatchSize = 10000

// CorpusRepository implements storage.CorpusRepository for BadgerDB.
type CorpusRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CorpusRepository = (*CorpusRepository)(nil)

// NewCorpusRepository creates a new CorpusRepository.
func NewCorpusRepository(backend *Backend) (*CorpusRepository, error) {
	return &CorpusRepository{
		backend: backend,
		logger:  backend.logger.With("component", "corpus-repository"),
	}, nil
}

// Close releases resources. CorpusRepository has no resources to release.
func (r *CorpusRepository) Close() error {
	return nil
}

// CreateCorpus creates the corpus node or merges into an existing one.
func (r *CorpusRepository) CreateCorpus(ctx context.Context, corpus *core.Corpus) (*core.Corpus, error) {
	if err := core.ValidateCorpus(corpus); err != nil {
		return nil, err
	}

	var stored *core.Corpus
	err := r.backend.Update(func(tx *badger.Txn) error {
		key := makeCorpusKey(corpus.Name)
		existing, err := readValue(tx, key, storage.UnmarshalCorpus)
		if err != nil {
			return err
		}

		now := timestamp()
		if existing == nil {
			stored = &core.Corpus{
				Id:          core.CorpusID(corpus.Name),
				Name:        corpus.Name,
				Description: corpus.Description,
				InsertedAt:  now,
				UpdatedAt:   now,
			}
		} else {
			stored = existing
			if corpus.Description != "" {
				stored.Description = corpus.Description
			}
			stored.UpdatedAt = now
		}
		return tx.Set(key, storage.MarshalCorpus(stored))
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetCorpus retrieves a corpus by name.
func (r *CorpusRepository) GetCorpus(ctx context.Context, name string) (*core.Corpus, error) {
	var corpus *core.Corpus
	err := r.backend.View(func(tx *badger.Txn) error {
		var err error
		corpus, err = readValue(tx, makeCorpusKey(name), storage.UnmarshalCorpus)
		return err
	})
	if err != nil {
		return nil, err
	}
	if corpus == nil {
		return nil, fmt.Errorf("%w: corpus %q", storage.ErrNotFound, name)
	}
	return corpus, nil
}

// DeleteCorpus removes the corpus node with all its documents, terms and edges.
// Keys are collected in one read transaction and then deleted through write
// batches of at most batchSize keys.
func (r *CorpusRepository) DeleteCorpus(ctx context.Context, name string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultDeleteBatchSize
	}
	corpusID := core.CorpusID(name)

	var keys [][]byte
	err := r.backend.View(func(tx *badger.Txn) error {
		for _, membership := range scanKeys(tx, makeIDKey(corpusDocumentPrefix, corpusID)) {
			docID := trailingID(membership)
			keys = append(keys, scanKeys(tx, makeIDKey(documentTermPrefix, docID))...)
			keys = append(keys, makeDocumentKey(docID), membership)
		}
		for _, membership := range scanKeys(tx, makeIDKey(corpusTermPrefix, corpusID)) {
			termID := trailingID(membership)
			keys = append(keys, scanKeys(tx, makeIDKey(termFrequencyPrefix, termID))...)
			keys = append(keys, makeTermKey(termID), membership)
		}
		keys = append(keys, scanKeys(tx, makeCheckpointCorpusPrefix(name))...)
		keys = append(keys, makeCorpusKey(name))
		return nil
	})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for start := 0; start < len(keys); start += batchSize {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		end := min(start+batchSize, len(keys))
		if err := r.deleteBatch(keys[start:end]); err != nil {
			return deleted, err
		}
		deleted = end
		r.logger.Info("deleted batch", "corpus", name, "deleted", deleted, "total", len(keys))
	}
	return deleted, nil
}

func (r *CorpusRepository) deleteBatch(keys [][]byte) error {
	wb := r.backend.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}
