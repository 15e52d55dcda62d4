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

// Package tfidf builds the term statistics of a corpus graph.
//
// A build runs in three stages, each split into epochs of parallel blocks
// by package plan and executed by package dispatch:
//
//  1. IndexFiles loads and tokenizes the corpus files and stores one
//     document node with its term frequency edges per file.
//  2. ComputeDocumentFrequencies counts the documents of every term and
//     stores its document frequency and IDF.
//  3. ComputeTFIDF multiplies the TF of every edge with the IDF of its term.
//
// The last completed epoch of a stage is checkpointed, so a build started
// with resume enabled continues where an interrupted one stopped.
//
// Weights use tf = count / document length and idf = ln(N / df), where N
// is the number of documents in the corpus.
package tfidf
