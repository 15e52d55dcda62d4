package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	f := newFixture(t,
		"market rally market",
		"market bonds",
		"bonds fell",
	)
	b := f.builder(t, nil)
	ctx := context.Background()
	require.NoError(t, b.Build(ctx, "", f.files))

	scores, err := b.Score(ctx, "Market rally, unknown unknown!", 0)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	// unknown: tf 2/4, idf ln(4)
	assert.Equal(t, "unknown", scores[0].Text)
	assert.Equal(t, 2, scores[0].Count)
	assert.InDelta(t, 0.5*math.Log(4), scores[0].TFIDF, 1e-12)

	assert.Equal(t, "rally", scores[1].Text)
	assert.InDelta(t, math.Log(3), scores[1].IDF, 1e-12)
	assert.InDelta(t, 0.25*math.Log(3), scores[1].TFIDF, 1e-12)

	assert.Equal(t, "market", scores[2].Text)
	assert.InDelta(t, 0.25*math.Log(1.5), scores[2].TFIDF, 1e-12)

	limited, err := b.Score(ctx, "Market rally, unknown unknown!", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "unknown", limited[0].Text)
}

func TestScore_TiesOrderedByText(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t, nil)

	scores, err := b.Score(context.Background(), "zeta alpha", 0)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "alpha", scores[0].Text)
	assert.Equal(t, "zeta", scores[1].Text)
	assert.Zero(t, scores[0].TFIDF)
}

func TestScore_NoTokens(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t, nil)

	scores, err := b.Score(context.Background(), "... 42 a", 0)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
