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

// Package termgraph stores corpora as a graph of documents and terms and
// computes their TF-IDF statistics.
package termgraph

import (
	"log/slog"

	"github.com/poiesic/termgraph/storage"
	"github.com/poiesic/termgraph/storage/badger"
	"github.com/poiesic/termgraph/tfidf"
)

// Database is an open corpus graph.
type Database struct {
	repos  *badger.Repositories
	logger *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// WithInMemory keeps the graph in memory instead of under the database path.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens the graph stored under filePath, creating it if needed.
func Open(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithBackendLogger(options.logger))
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		repos:  repos,
		logger: options.logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) CorpusRepository() storage.CorpusRepository {
	return db.repos.Corpora
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.repos.Documents
}

func (db *Database) TermRepository() storage.TermRepository {
	return db.repos.Terms
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.repos.Checkpoints
}

// NewBuilder creates a TF-IDF builder for the named corpus of this database.
func (db *Database) NewBuilder(corpus string, opts ...tfidf.Option) (*tfidf.Builder, error) {
	opts = append([]tfidf.Option{tfidf.WithLogger(db.logger)}, opts...)
	return tfidf.NewBuilder(corpus, tfidf.Repositories{
		Corpora:     db.repos.Corpora,
		Documents:   db.repos.Documents,
		Terms:       db.repos.Terms,
		Checkpoints: db.repos.Checkpoints,
	}, opts...)
}
