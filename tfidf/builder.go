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

package tfidf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/poiesic/termgraph/core"
	"github.com/poiesic/termgraph/dispatch"
	"github.com/poiesic/termgraph/plan"
	"github.com/poiesic/termgraph/storage"
)

// Checkpoint stages.
const (
	StageIndexFiles        = "index-files"
	StageDocumentFrequency = "document-frequency"
	StageTFIDF             = "tfidf"
)

// Repositories groups the stores a Builder works on.
type Repositories struct {
	Corpora     storage.CorpusRepository
	Documents   storage.DocumentRepository
	Terms       storage.TermRepository
	Checkpoints storage.CheckpointRepository
}

// Builder builds the term statistics of one corpus.
type Builder struct {
	corpus         string
	repos          Repositories
	config         *Config
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithConfig replaces the default build configuration.
func WithConfig(config *Config) Option {
	return func(b *Builder) error {
		if config == nil {
			return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
		}
		b.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithProgress reports stage progress to w every interval items.
func WithProgress(w io.Writer, interval int) Option {
	return func(b *Builder) error {
		b.progress = w
		b.reportInterval = interval
		return nil
	}
}

// NewBuilder creates a Builder for the named corpus.
func NewBuilder(corpus string, repos Repositories, opts ...Option) (*Builder, error) {
	if corpus == "" {
		return nil, ErrCorpusNameRequired
	}
	if repos.Corpora == nil || repos.Documents == nil || repos.Terms == nil || repos.Checkpoints == nil {
		return nil, ErrRepositoryRequired
	}

	b := &Builder{
		corpus: corpus,
		repos:  repos,
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	b.logger = b.logger.With("component", "tfidf", "corpus", corpus)
	return b, nil
}

// Build runs every stage over files.
func (b *Builder) Build(ctx context.Context, description string, files []string) error {
	if _, err := b.EnsureCorpus(ctx, description); err != nil {
		return err
	}
	if err := b.IndexFiles(ctx, files); err != nil {
		return err
	}
	if err := b.ComputeDocumentFrequencies(ctx); err != nil {
		return err
	}
	return b.ComputeTFIDF(ctx)
}

// EnsureCorpus creates the corpus node or merges into the existing one.
func (b *Builder) EnsureCorpus(ctx context.Context, description string) (*core.Corpus, error) {
	corpus, err := b.repos.Corpora.CreateCorpus(ctx, &core.Corpus{Name: b.corpus, Description: description})
	if err != nil {
		return nil, fmt.Errorf("creating corpus: %w", err)
	}
	b.logger.Info("corpus ready", "inserted_at", corpus.InsertedAt)
	return corpus, nil
}

// DeleteGraph removes the corpus with all its nodes and edges.
func (b *Builder) DeleteGraph(ctx context.Context, batchSize int) (int, error) {
	deleted, err := b.repos.Corpora.DeleteCorpus(ctx, b.corpus, batchSize)
	if err != nil {
		return deleted, fmt.Errorf("deleting corpus graph: %w", err)
	}
	b.logger.Info("deleted corpus graph", "keys", deleted)
	return deleted, nil
}

// IDF returns ln(documents / df), or zero when either count is not positive.
func IDF(documents, df int) float64 {
	if documents <= 0 || df <= 0 {
		return 0
	}
	return math.Log(float64(documents) / float64(df))
}

// runStage executes p for a checkpointed stage, resuming after the last
// completed epoch when the configuration asks for it.
func (b *Builder) runStage(ctx context.Context, stage string, p *plan.Plan, fn dispatch.BlockFunc) error {
	logger := b.logger.With("stage", stage)

	start := 0
	if b.config.Resume {
		checkpoint, err := b.repos.Checkpoints.LoadCheckpoint(ctx, b.corpus, stage)
		if err != nil {
			return fmt.Errorf("loading %s checkpoint: %w", stage, err)
		}
		if checkpoint != nil {
			start = checkpoint.EpochsDone
			if start > len(p.Epochs) {
				logger.Warn("checkpoint does not match plan, starting over", "epochs_done", start, "epochs", len(p.Epochs))
				start = 0
			}
		}
	}

	opts := []dispatch.Option{dispatch.WithLogger(logger)}
	if b.progress != nil {
		opts = append(opts, dispatch.WithProgress(b.progress, b.reportInterval))
	}
	executor, err := dispatch.NewExecutor(opts...)
	if err != nil {
		return err
	}

	logger.Info("starting stage", "size", p.TotalSize(), "epochs", len(p.Epochs), "start_epoch", start)
	err = executor.Run(ctx, p, fn,
		dispatch.WithStartEpoch(start),
		dispatch.WithEpochDone(func(epoch int) error {
			return b.repos.Checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
				Stage:      stage,
				Corpus:     b.corpus,
				EpochsDone: epoch + 1,
			})
		}),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	if err := b.repos.Checkpoints.ClearCheckpoint(ctx, b.corpus, stage); err != nil {
		return fmt.Errorf("clearing %s checkpoint: %w", stage, err)
	}
	logger.Info("stage complete")
	return nil
}
