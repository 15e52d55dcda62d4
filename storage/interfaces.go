package storage

import (
	"context"

	"github.com/poiesic/termgraph/core"
)

// Repository provides operations shared by all repositories.
type Repository interface {
	// Close releases resources held by the repository.
	Close() error
}

// CorpusRepository provides operations on corpus nodes.
type CorpusRepository interface {
	Repository
	// CreateCorpus creates the corpus node or merges into an existing one.
	// An existing corpus keeps its InsertedAt; the description is replaced
	// when the new one is not empty.
	CreateCorpus(ctx context.Context, corpus *core.Corpus) (*core.Corpus, error)

	// GetCorpus retrieves a corpus by name.
	// Returns ErrNotFound if the corpus doesn't exist.
	GetCorpus(ctx context.Context, name string) (*core.Corpus, error)

	// DeleteCorpus removes the corpus node with all its documents, terms and
	// edges, deleting at most batchSize keys per write batch.
	// Returns the number of keys deleted.
	DeleteCorpus(ctx context.Context, name string, batchSize int) (int, error)
}

// DocumentRepository provides operations on document nodes and their edges.
type DocumentRepository interface {
	Repository
	// AddDocument stores a document node, creates any missing term nodes and
	// writes one TermFrequency edge per entry of counts, all atomically.
	// TF on each edge is count / doc.Length. Re-adding a document replaces
	// its edges.
	AddDocument(ctx context.Context, doc *core.Document, counts map[string]int) (*core.Document, error)

	// GetDocument retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// CountDocuments returns the number of documents in a corpus.
	CountDocuments(ctx context.Context, corpus string) (int, error)

	// TermFrequencies returns the edges of a document, ordered by term ID.
	TermFrequencies(ctx context.Context, documentID core.ID) ([]*core.TermFrequency, error)
}

// TermRepository provides operations on term nodes and their statistics.
type TermRepository interface {
	Repository
	// GetTerm retrieves a term by ID.
	// Returns ErrNotFound if the term doesn't exist.
	GetTerm(ctx context.Context, id core.ID) (*core.Term, error)

	// GetTerms retrieves multiple terms by their IDs.
	// Returns only the terms that exist (no error for missing terms).
	GetTerms(ctx context.Context, ids ...core.ID) ([]*core.Term, error)

	// FindTerm looks a term up by its text within a corpus.
	// Returns ErrNotFound if the corpus has no such term.
	FindTerm(ctx context.Context, corpus, text string) (*core.Term, error)

	// ListTermIDs returns the IDs of every term of a corpus in key order.
	ListTermIDs(ctx context.Context, corpus string) ([]core.ID, error)

	// CountDocumentFrequency counts the documents a term has edges to.
	CountDocumentFrequency(ctx context.Context, id core.ID) (int, error)

	// SetTermStatistics stores DocumentFrequency and IDF of existing terms.
	// Returns ErrNotFound if any term doesn't exist.
	SetTermStatistics(ctx context.Context, terms ...*core.Term) error

	// UpdateTFIDF sets TFIDF = TF * IDF on every edge of the given terms.
	// Returns the number of edges updated.
	UpdateTFIDF(ctx context.Context, ids ...core.ID) (int, error)
}

// CheckpointRepository persists stage progress so interrupted runs can resume.
type CheckpointRepository interface {
	// SaveCheckpoint stores the checkpoint for its corpus and stage.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint returns the checkpoint of a corpus and stage.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, corpus, stage string) (*core.Checkpoint, error)

	// ClearCheckpoint removes the checkpoint of a corpus and stage.
	ClearCheckpoint(ctx context.Context, corpus, stage string) error
}
