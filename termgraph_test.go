package termgraph

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	corpusDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "a.txt"), []byte("market rally"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "b.txt"), []byte("market bonds"), 0644))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	db, err := Open(filepath.Join(dir, "graph"), WithLogger(logger))
	require.NoError(t, err)

	builder, err := db.NewBuilder("news")
	require.NoError(t, err)
	files := []string{filepath.Join(corpusDir, "a.txt"), filepath.Join(corpusDir, "b.txt")}
	require.NoError(t, builder.Build(ctx, "test corpus", files))
	require.NoError(t, db.Close())

	db, err = Open(filepath.Join(dir, "graph"), WithLogger(logger))
	require.NoError(t, err)
	defer db.Close()

	count, err := db.DocumentRepository().CountDocuments(ctx, "news")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	term, err := db.TermRepository().FindTerm(ctx, "news", "market")
	require.NoError(t, err)
	assert.Equal(t, 2, term.DocumentFrequency)
	assert.Zero(t, term.IDF)

	corpus, err := db.CorpusRepository().GetCorpus(ctx, "news")
	require.NoError(t, err)
	assert.Equal(t, "test corpus", corpus.Description)

	checkpoint, err := db.CheckpointRepository().LoadCheckpoint(ctx, "news", "index-files")
	require.NoError(t, err)
	assert.Nil(t, checkpoint)
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.NewBuilder("")
	assert.Error(t, err)
}

func TestOpen_InvalidPath(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

	db, err := Open(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, db)
}
