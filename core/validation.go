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

import "fmt"

// ValidateCorpus validates a Corpus according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - ID (derived from the name on insert)
//   - Description (optional)
func ValidateCorpus(corpus *Corpus) error {
	if corpus == nil {
		return fmt.Errorf("%w: corpus is nil", ErrInvalidCorpus)
	}

	if corpus.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCorpus, ErrEmptyCorpusName)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Corpus must not be empty
//   - Name must not be empty
//   - Length must not be negative
//
// A zero Length is valid: a document with no countable tokens still belongs
// to the corpus and counts towards N in the IDF.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Corpus == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyCorpusName)
	}

	if doc.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentName)
	}

	if doc.Length < 0 {
		return fmt.Errorf("%w: %w: length %d", ErrInvalidDocument, ErrNegativeCount, doc.Length)
	}

	return nil
}

// ValidateTerm validates a Term according to domain rules.
//
// Validation rules:
//   - Corpus must not be empty
//   - Text must not be empty
//   - DocumentFrequency must not be negative
func ValidateTerm(term *Term) error {
	if term == nil {
		return fmt.Errorf("%w: term is nil", ErrInvalidTerm)
	}

	if term.Corpus == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTerm, ErrEmptyCorpusName)
	}

	if term.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTerm, ErrEmptyTermText)
	}

	if term.DocumentFrequency < 0 {
		return fmt.Errorf("%w: %w: document frequency %d", ErrInvalidTerm, ErrNegativeCount, term.DocumentFrequency)
	}

	return nil
}
