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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "termgraph",
		Usage: "Corpus term graph with parallel TF-IDF computation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-path",
				Usage: "Directory receiving a timestamped run directory with central.log",
			},
		},
		Before: setupLogger,
		After:  closeLogger,
		Commands: []*cli.Command{
			{
				Name:   "plan",
				Usage:  "Print the parallelization plan for a workload",
				Action: planCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "size",
						Usage:    "Number of work items",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "epochs",
						Usage: "Number of sequential epochs",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "blocks",
						Usage: "Number of parallel blocks per epoch",
						Value: 1,
					},
					&cli.IntSliceFlag{
						Name:  "group-sizes",
						Usage: "Size of each work item when items are groups; blocks are then reported as item offsets",
					},
				},
			},
			{
				Name:   "build",
				Usage:  "Index a corpus directory and compute its TF-IDF statistics",
				Action: buildCommand,
				Flags: []cli.Flag{
					dbFlag(),
					corpusNameFlag(),
					&cli.StringFlag{
						Name:     "corpus-dir",
						Usage:    "Directory of the local corpus files",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "corpus-description",
						Usage: "Description stored on the corpus node",
					},
					&cli.IntFlag{
						Name:  "corpus-document-limit",
						Usage: "Limit the number of documents processed (0 processes all)",
					},
					&cli.IntFlag{
						Name:  "n-epochs-file-processing",
						Usage: "Number of epochs for document processing",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "n-processes-file-processing",
						Usage: "Number of parallel blocks for document processing",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "document-frequency-batch-size",
						Usage: "Number of terms handled at once for document frequency calculations",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "n-epochs-document-frequency",
						Usage: "Number of epochs for document frequency calculations",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "n-processes-document-frequency",
						Usage: "Number of parallel blocks for document frequency calculations",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "resume",
						Usage: "Continue each stage after its last completed epoch",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items (0 disables progress)",
						Value: 100,
					},
				},
			},
			{
				Name:   "score",
				Usage:  "Rank the terms of a text by TF-IDF against a corpus",
				Action: scoreCommand,
				Flags: []cli.Flag{
					dbFlag(),
					corpusNameFlag(),
					&cli.StringFlag{
						Name:  "text",
						Usage: "Text to score",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "File whose text is scored",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of terms to print (0 prints all)",
						Value: 20,
					},
				},
			},
			{
				Name:   "fetch",
				Usage:  "Download documents from the content API into a corpus directory",
				Action: fetchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "api",
						Usage:    "Name of the API collection",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "n-document-ids",
						Usage: "Number of documents to retrieve (0 retrieves all)",
						Value: 100,
					},
					&cli.StringFlag{
						Name:     "corpus-dir",
						Usage:    "Directory the documents are written to",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of document IDs requested at once",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of batches fetched concurrently",
						Value: 4,
					},
					&cli.StringFlag{
						Name:  "env-file",
						Usage: "Dotenv file with the API settings",
						Value: ".env",
					},
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete a corpus with all its documents, terms and edges",
				Action: deleteCommand,
				Flags: []cli.Flag{
					dbFlag(),
					corpusNameFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of keys deleted per write batch",
						Value: 10000,
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func corpusNameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "corpus-name",
		Usage:    "Name and unique identifier of the corpus",
		Required: true,
	}
}
