package tfidf

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/termgraph/core"
	"github.com/poiesic/termgraph/corpus"
	"github.com/poiesic/termgraph/storage"
)

// Score weighs the terms of text against the corpus statistics and returns
// them by descending TF-IDF, ties broken by term text. Terms the corpus has
// never seen get idf = ln(N + 1). A limit of zero or less returns every term.
func (b *Builder) Score(ctx context.Context, text string, limit int) ([]core.TermScore, error) {
	counts := corpus.Tokenize(text)
	length := corpus.Length(counts)
	if length == 0 {
		return nil, nil
	}

	documents, err := b.repos.Documents.CountDocuments(ctx, b.corpus)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	unseen := math.Log(float64(documents) + 1)

	scores := make([]core.TermScore, 0, len(counts))
	for token, count := range counts {
		idf := unseen
		term, err := b.repos.Terms.FindTerm(ctx, b.corpus, token)
		switch {
		case err == nil:
			idf = term.IDF
		case !errors.Is(err, storage.ErrNotFound):
			return nil, err
		}

		tf := float64(count) / float64(length)
		scores = append(scores, core.TermScore{
			Text:  token,
			Count: count,
			TF:    tf,
			IDF:   idf,
			TFIDF: tf * idf,
		})
	}

	slices.SortFunc(scores, func(x, y core.TermScore) int {
		if c := cmp.Compare(y.TFIDF, x.TFIDF); c != 0 {
			return c
		}
		return cmp.Compare(x.Text, y.Text)
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}
