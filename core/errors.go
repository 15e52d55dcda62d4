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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidCorpus indicates a Corpus failed validation.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidTerm indicates a Term failed validation.
	ErrInvalidTerm = errors.New("invalid term")

	// ErrEmptyCorpusName indicates the corpus name is empty.
	ErrEmptyCorpusName = errors.New("corpus name cannot be empty")

	// ErrEmptyDocumentName indicates the document Name field is empty.
	ErrEmptyDocumentName = errors.New("document name cannot be empty")

	// ErrEmptyTermText indicates the term Text field is empty.
	ErrEmptyTermText = errors.New("term text cannot be empty")

	// ErrNegativeCount indicates a length or frequency below zero.
	ErrNegativeCount = errors.New("count cannot be negative")
)
