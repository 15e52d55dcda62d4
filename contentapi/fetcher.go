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

package contentapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// Fetcher downloads API documents into a corpus directory.
type Fetcher struct {
	client      *Client
	batchSize   int
	concurrency int
	logger      *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithBatchSize sets how many IDs are listed and queried per request.
// Default is 100.
func WithBatchSize(size int) FetcherOption {
	return func(f *Fetcher) {
		f.batchSize = max(size, 1)
	}
}

// WithConcurrency sets how many batches are queried at once.
// Default is 4.
func WithConcurrency(n int) FetcherOption {
	return func(f *Fetcher) {
		f.concurrency = max(n, 1)
	}
}

// WithFetcherLogger sets a custom logger.
// Default is slog.Default().
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher on top of client.
func NewFetcher(client *Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		batchSize:   100,
		concurrency: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With("component", "fetcher")
	return f
}

// Fetch writes up to limit documents of api into dir, one text file per
// document named after the API and the document ID. A limit of zero or
// less fetches every document. Returns the number of files written.
func (f *Fetcher) Fetch(ctx context.Context, api string, limit int, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	health, err := f.client.CheckHealth(ctx, api)
	if err != nil {
		return 0, err
	}
	f.logger.Info("api healthy", "api", api, "report", health)

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	pager := f.client.ListIDs(api, f.batchSize)
	remaining := limit
	for limit <= 0 || remaining > 0 {
		ids, err := pager.Next(gctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The group error, if any, caused the failure.
			if groupErr := g.Wait(); groupErr != nil {
				return int(written.Load()), groupErr
			}
			return int(written.Load()), err
		}
		if limit > 0 {
			ids = ids[:min(len(ids), remaining)]
			remaining -= len(ids)
		}

		g.Go(func() error {
			docs, err := f.client.QueryDocuments(gctx, api, ids)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				path := filepath.Join(dir, fileName(api, doc.ID))
				if err := os.WriteFile(path, []byte(doc.Content()), 0644); err != nil {
					return fmt.Errorf("writing document %s: %w", doc.ID, err)
				}
				written.Add(1)
			}
			f.logger.Debug("fetched batch", "api", api, "documents", len(docs))
			return nil
		})
	}

	err = g.Wait()
	f.logger.Info("fetch complete", "api", api, "documents", written.Load())
	return int(written.Load()), err
}

// fileName builds a file name for a document that is safe on any file system.
func fileName(api, id string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, api+"_"+id)
	return safe + ".txt"
}
