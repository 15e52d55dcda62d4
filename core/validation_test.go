package core

import (
	"errors"
	"testing"
)

func TestValidateCorpus(t *testing.T) {
	tests := []struct {
		name    string
		corpus  *Corpus
		wantErr error
	}{
		{name: "valid corpus", corpus: &Corpus{Name: "pubmed"}},
		{name: "valid corpus with description", corpus: &Corpus{Name: "cnn", Description: "news articles"}},
		{name: "nil corpus", corpus: nil, wantErr: ErrInvalidCorpus},
		{name: "empty name", corpus: &Corpus{}, wantErr: ErrEmptyCorpusName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCorpus(tt.corpus)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCorpus() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCorpus() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc:  &Document{Corpus: "pubmed", Name: "123.txt", Length: 40},
		},
		{
			name: "valid document with zero length",
			doc:  &Document{Corpus: "pubmed", Name: "empty.txt"},
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "missing corpus",
			doc:     &Document{Name: "123.txt"},
			wantErr: ErrEmptyCorpusName,
		},
		{
			name:    "missing name",
			doc:     &Document{Corpus: "pubmed"},
			wantErr: ErrEmptyDocumentName,
		},
		{
			name:    "negative length",
			doc:     &Document{Corpus: "pubmed", Name: "123.txt", Length: -1},
			wantErr: ErrNegativeCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("ValidateDocument() error = %v should wrap ErrInvalidDocument", err)
			}
		})
	}
}

func TestValidateTerm(t *testing.T) {
	tests := []struct {
		name    string
		term    *Term
		wantErr error
	}{
		{name: "valid term", term: &Term{Corpus: "pubmed", Text: "protein"}},
		{name: "valid term with statistics", term: &Term{Corpus: "pubmed", Text: "protein", DocumentFrequency: 3, IDF: 1.2}},
		{name: "nil term", term: nil, wantErr: ErrInvalidTerm},
		{name: "missing corpus", term: &Term{Text: "protein"}, wantErr: ErrEmptyCorpusName},
		{name: "missing text", term: &Term{Corpus: "pubmed"}, wantErr: ErrEmptyTermText},
		{name: "negative frequency", term: &Term{Corpus: "pubmed", Text: "protein", DocumentFrequency: -2}, wantErr: ErrNegativeCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTerm(tt.term)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTerm() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTerm() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
