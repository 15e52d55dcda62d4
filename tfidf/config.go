package tfidf

import "fmt"

// Config holds the parallelization settings of a build.
type Config struct {
	// FileEpochs and FileProcesses split the corpus files into epochs of
	// parallel blocks during indexing.
	FileEpochs    int
	FileProcesses int

	// DocumentFrequencyBatchSize is the number of terms handled as one unit
	// by the frequency and TF-IDF stages.
	DocumentFrequencyBatchSize int

	// DocumentFrequencyEpochs and DocumentFrequencyProcesses split the term
	// batches into epochs of parallel blocks.
	DocumentFrequencyEpochs    int
	DocumentFrequencyProcesses int

	// Resume continues every stage after its last checkpointed epoch.
	Resume bool
}

// DefaultConfig returns a Config that runs each stage in one epoch of four blocks.
func DefaultConfig() *Config {
	return &Config{
		FileEpochs:                 1,
		FileProcesses:              4,
		DocumentFrequencyBatchSize: 1000,
		DocumentFrequencyEpochs:    1,
		DocumentFrequencyProcesses: 4,
	}
}

// Validate checks that every count is positive.
func (c *Config) Validate() error {
	if c.FileEpochs < 1 {
		return fmt.Errorf("%w: file epochs must be positive, got %d", ErrInvalidConfig, c.FileEpochs)
	}
	if c.FileProcesses < 1 {
		return fmt.Errorf("%w: file processes must be positive, got %d", ErrInvalidConfig, c.FileProcesses)
	}
	if c.DocumentFrequencyBatchSize < 1 {
		return fmt.Errorf("%w: document frequency batch size must be positive, got %d", ErrInvalidConfig, c.DocumentFrequencyBatchSize)
	}
	if c.DocumentFrequencyEpochs < 1 {
		return fmt.Errorf("%w: document frequency epochs must be positive, got %d", ErrInvalidConfig, c.DocumentFrequencyEpochs)
	}
	if c.DocumentFrequencyProcesses < 1 {
		return fmt.Errorf("%w: document frequency processes must be positive, got %d", ErrInvalidConfig, c.DocumentFrequencyProcesses)
	}
	return nil
}
