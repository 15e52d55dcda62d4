package tfidf

import "errors"

var (
	// ErrRepositoryRequired is returned when a builder is missing a repository.
	ErrRepositoryRequired = errors.New("repository is required")

	// ErrCorpusNameRequired is returned when a builder has no corpus name.
	ErrCorpusNameRequired = errors.New("corpus name is required")

	// ErrInvalidConfig is returned when the build configuration is invalid.
	ErrInvalidConfig = errors.New("invalid build configuration")
)
