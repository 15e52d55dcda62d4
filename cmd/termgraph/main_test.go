package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.RunContext(context.Background(), append([]string{"termgraph", "--log-level", "error"}, args...))
	return out.String(), err
}

func findIntFlag(t *testing.T, cmd *cli.Command, name string) *cli.IntFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("flag %s not found", name)
	return nil
}

func TestBuildCommandFlags(t *testing.T) {
	app := newApp()
	var build *cli.Command
	for _, cmd := range app.Commands {
		if cmd.Name == "build" {
			build = cmd
		}
	}
	require.NotNil(t, build)

	t.Run("corpus-dir is required", func(t *testing.T) {
		_, err := runApp(t, "build", "--db", t.TempDir(), "--corpus-name", "news")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "corpus-dir")
	})

	t.Run("document frequency batch size defaults to 1000", func(t *testing.T) {
		assert.Equal(t, 1000, findIntFlag(t, build, "document-frequency-batch-size").Value)
	})

	t.Run("processes default to 4", func(t *testing.T) {
		assert.Equal(t, 4, findIntFlag(t, build, "n-processes-file-processing").Value)
		assert.Equal(t, 4, findIntFlag(t, build, "n-processes-document-frequency").Value)
	})
}

func TestPlanCommand(t *testing.T) {
	out, err := runApp(t, "plan", "--size", "20", "--epochs", "2", "--blocks", "2")
	require.NoError(t, err)
	assert.Equal(t, "epoch 0 [0, 10)\n  block [0, 5)\n  block [5, 10)\nepoch 1 [10, 20)\n  block [10, 15)\n  block [15, 20)\n", out)
}

func TestPlanCommand_GroupedWork(t *testing.T) {
	out, err := runApp(t, "plan", "--size", "3", "--blocks", "2", "--group-sizes", "1,2,1")
	require.NoError(t, err)
	assert.Equal(t, "epoch 0 [0, 3)\n  block [0, 1)\n  block [1, 4)\n", out)
}

func TestPlanCommand_InvalidCounts(t *testing.T) {
	_, err := runApp(t, "plan", "--size", "10", "--epochs", "0")
	assert.Error(t, err)

	_, err = runApp(t, "plan", "--size", "2", "--group-sizes", "1,2,3")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	app := newApp()
	app.ErrWriter = io.Discard
	err := app.Run([]string{"termgraph", "--log-level", "loud", "plan", "--size", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestBuildScoreDelete(t *testing.T) {
	corpusDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "a.txt"), []byte("market rally market"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "b.txt"), []byte("market bonds"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "c.txt"), []byte("bonds fell"), 0644))
	db := filepath.Join(t.TempDir(), "graph")

	_, err := runApp(t, "build",
		"--db", db,
		"--corpus-dir", corpusDir,
		"--corpus-name", "news",
		"--n-epochs-file-processing", "2",
		"--n-processes-file-processing", "2",
		"--document-frequency-batch-size", "2",
		"--report-interval", "0",
	)
	require.NoError(t, err)

	out, err := runApp(t, "score", "--db", db, "--corpus-name", "news", "--text", "rally rally market", "--limit", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "rally"), lines[0])

	_, err = runApp(t, "score", "--db", db, "--corpus-name", "news")
	assert.Error(t, err)

	out, err = runApp(t, "delete", "--db", db, "--corpus-name", "news")
	require.NoError(t, err)
	assert.Contains(t, out, "of corpus news")

	out, err = runApp(t, "score", "--db", db, "--corpus-name", "news", "--text", "market")
	require.NoError(t, err)
	assert.Contains(t, out, "idf=0.000000")
}

func TestSetupLogger_WritesCentralLog(t *testing.T) {
	logPath := t.TempDir()

	_, err := runApp(t, "--log-path", logPath, "plan", "--size", "4", "--blocks", "2")
	require.NoError(t, err)

	runs, err := os.ReadDir(logPath)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	_, err = time.Parse(runDirLayout, runs[0].Name())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(logPath, runs[0].Name(), centralLogName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "parallelization execution plan")
	assert.Contains(t, string(content), "run=")
}

func TestFanoutHandler_RespectsLevels(t *testing.T) {
	var debug, info bytes.Buffer
	handler := newFanoutHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	logger := slog.New(handler).With("component", "test")

	logger.Debug("detail")
	logger.Info("summary")

	assert.Contains(t, debug.String(), "detail")
	assert.Contains(t, debug.String(), "summary")
	assert.NotContains(t, info.String(), "detail")
	assert.Contains(t, info.String(), "component=test")
}
