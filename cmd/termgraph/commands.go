package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/termgraph"
	"github.com/poiesic/termgraph/contentapi"
	"github.com/poiesic/termgraph/corpus"
	"github.com/poiesic/termgraph/plan"
	"github.com/poiesic/termgraph/tfidf"
	"github.com/urfave/cli/v2"
)

func planCommand(c *cli.Context) error {
	opts := []plan.Option{plan.WithLogger(slog.Default())}
	var trace plan.Trace = plan.IndexTrace{}
	if sizes := c.IntSlice("group-sizes"); len(sizes) > 0 {
		grouped, err := plan.NewGroupedTrace(sizes)
		if err != nil {
			return err
		}
		trace = grouped
		opts = append(opts, plan.WithGroupedWork(sizes))
	}

	p, err := plan.Build(c.Int("size"), c.Int("epochs"), c.Int("blocks"), opts...)
	if err != nil {
		return err
	}
	epochs, err := p.Describe(trace)
	if err != nil {
		return err
	}

	for i, epoch := range epochs {
		fmt.Fprintf(c.App.Writer, "epoch %d %s\n", i, epoch.Epoch)
		for _, block := range epoch.Blocks {
			fmt.Fprintf(c.App.Writer, "  block %s\n", block)
		}
	}
	return nil
}

func buildCommand(c *cli.Context) error {
	files, err := corpus.ListFiles(c.String("corpus-dir"), c.Int("corpus-document-limit"))
	if err != nil {
		return err
	}
	slog.Info("found corpus files", "count", len(files), "dir", c.String("corpus-dir"))

	db, err := termgraph.Open(c.String("db"), termgraph.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	config := &tfidf.Config{
		FileEpochs:                 c.Int("n-epochs-file-processing"),
		FileProcesses:              c.Int("n-processes-file-processing"),
		DocumentFrequencyBatchSize: c.Int("document-frequency-batch-size"),
		DocumentFrequencyEpochs:    c.Int("n-epochs-document-frequency"),
		DocumentFrequencyProcesses: c.Int("n-processes-document-frequency"),
		Resume:                     c.Bool("resume"),
	}
	opts := []tfidf.Option{tfidf.WithConfig(config)}
	if interval := c.Int("report-interval"); interval > 0 {
		opts = append(opts, tfidf.WithProgress(c.App.ErrWriter, interval))
	}

	builder, err := db.NewBuilder(c.String("corpus-name"), opts...)
	if err != nil {
		return err
	}
	if err := builder.Build(c.Context, c.String("corpus-description"), files); err != nil {
		return err
	}
	slog.Info("build complete", "corpus", c.String("corpus-name"), "documents", len(files))
	return nil
}

func scoreCommand(c *cli.Context) error {
	text := c.String("text")
	if path := c.String("file"); path != "" {
		if text != "" {
			return errors.New("only one of --text and --file may be given")
		}
		loaded, err := corpus.LoadText(c.Context, path)
		if err != nil {
			return err
		}
		text = loaded
	}
	if text == "" {
		return errors.New("one of --text or --file is required")
	}

	db, err := termgraph.Open(c.String("db"), termgraph.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	builder, err := db.NewBuilder(c.String("corpus-name"))
	if err != nil {
		return err
	}
	scores, err := builder.Score(c.Context, text, c.Int("limit"))
	if err != nil {
		return err
	}

	for _, score := range scores {
		fmt.Fprintf(c.App.Writer, "%-24s count=%d tf=%.6f idf=%.6f tfidf=%.6f\n",
			score.Text, score.Count, score.TF, score.IDF, score.TFIDF)
	}
	return nil
}

func fetchCommand(c *cli.Context) error {
	cfg, err := contentapi.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	client, err := contentapi.NewClientFromConfig(cfg, contentapi.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	fetcher := contentapi.NewFetcher(client,
		contentapi.WithBatchSize(c.Int("batch-size")),
		contentapi.WithConcurrency(c.Int("concurrency")),
		contentapi.WithFetcherLogger(slog.Default()),
	)
	written, err := fetcher.Fetch(c.Context, c.String("api"), c.Int("n-document-ids"), c.String("corpus-dir"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %d documents to %s\n", written, c.String("corpus-dir"))
	return nil
}

func deleteCommand(c *cli.Context) error {
	if _, err := os.Stat(c.String("db")); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db, err := termgraph.Open(c.String("db"), termgraph.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	builder, err := db.NewBuilder(c.String("corpus-name"))
	if err != nil {
		return err
	}
	deleted, err := builder.DeleteGraph(c.Context, c.Int("batch-size"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %d keys of corpus %s\n", deleted, c.String("corpus-name"))
	return nil
}
