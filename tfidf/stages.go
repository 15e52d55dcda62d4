package tfidf

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/poiesic/termgraph/core"
	"github.com/poiesic/termgraph/corpus"
	"github.com/poiesic/termgraph/plan"
)

// IndexFiles stores one document node per file with the term frequency
// edges of its tokens.
func (b *Builder) IndexFiles(ctx context.Context, files []string) error {
	p, err := plan.Build(len(files), b.config.FileEpochs, b.config.FileProcesses, plan.WithLogger(b.logger))
	if err != nil {
		return err
	}

	return b.runStage(ctx, StageIndexFiles, p, func(ctx context.Context, epoch int, block plan.Range) error {
		for i := block.Start; i < block.End; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := b.indexFile(ctx, files[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Builder) indexFile(ctx context.Context, path string) error {
	text, err := corpus.LoadText(ctx, path)
	if err != nil {
		return err
	}
	counts := corpus.Tokenize(text)

	doc := &core.Document{
		Corpus: b.corpus,
		Name:   filepath.Base(path),
		Source: path,
		Length: corpus.Length(counts),
	}
	if _, err := b.repos.Documents.AddDocument(ctx, doc, counts); err != nil {
		return fmt.Errorf("indexing %s: %w", path, err)
	}
	b.logger.Debug("indexed document", "name", doc.Name, "length", doc.Length, "terms", len(counts))
	return nil
}

// ComputeDocumentFrequencies stores the document frequency and IDF of every
// term of the corpus.
func (b *Builder) ComputeDocumentFrequencies(ctx context.Context) error {
	documents, err := b.repos.Documents.CountDocuments(ctx, b.corpus)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}

	return b.runTermBatches(ctx, StageDocumentFrequency, func(ctx context.Context, ids []core.ID) error {
		terms := make([]*core.Term, 0, len(ids))
		for _, id := range ids {
			df, err := b.repos.Terms.CountDocumentFrequency(ctx, id)
			if err != nil {
				return err
			}
			terms = append(terms, &core.Term{
				Id:                id,
				DocumentFrequency: df,
				IDF:               IDF(documents, df),
			})
		}
		return b.repos.Terms.SetTermStatistics(ctx, terms...)
	})
}

// ComputeTFIDF writes tf * idf on every term frequency edge of the corpus.
func (b *Builder) ComputeTFIDF(ctx context.Context) error {
	return b.runTermBatches(ctx, StageTFIDF, func(ctx context.Context, ids []core.ID) error {
		_, err := b.repos.Terms.UpdateTFIDF(ctx, ids...)
		return err
	})
}

// runTermBatches splits the terms of the corpus into batches and runs fn
// once per batch. The plan is built over batches and traced by term count.
func (b *Builder) runTermBatches(ctx context.Context, stage string, fn func(ctx context.Context, ids []core.ID) error) error {
	ids, err := b.repos.Terms.ListTermIDs(ctx, b.corpus)
	if err != nil {
		return fmt.Errorf("listing terms: %w", err)
	}
	batches := batch(ids, b.config.DocumentFrequencyBatchSize)

	p, err := plan.Build(len(batches), b.config.DocumentFrequencyEpochs, b.config.DocumentFrequencyProcesses,
		plan.WithLogger(b.logger),
		plan.WithGroupedWork(plan.GroupSizes(batches)),
	)
	if err != nil {
		return err
	}

	return b.runStage(ctx, stage, p, func(ctx context.Context, epoch int, block plan.Range) error {
		for i := block.Start; i < block.End; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, batches[i]); err != nil {
				return fmt.Errorf("term batch %d: %w", i, err)
			}
		}
		return nil
	})
}

// batch splits items into consecutive slices of at most size elements.
func batch[T any](items []T, size int) [][]T {
	var batches [][]T
	for start := 0; start < len(items); start += size {
		batches = append(batches, items[start:min(start+size, len(items))])
	}
	return batches
}
