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

package badger

// Repositories bundles the repositories sharing one backend.
type Repositories struct {
	Backend     *Backend
	Corpora     *CorpusRepository
	Documents   *DocumentRepository
	Terms       *TermRepository
	Checkpoints *CheckpointRepository
}

// NewRepositories creates every repository on top of backend.
func NewRepositories(backend *Backend) (*Repositories, error) {
	corpora, err := NewCorpusRepository(backend)
	if err != nil {
		return nil, err
	}
	documents, err := NewDocumentRepository(backend)
	if err != nil {
		return nil, err
	}
	terms, err := NewTermRepository(backend)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Backend:     backend,
		Corpora:     corpora,
		Documents:   documents,
		Terms:       terms,
		Checkpoints: NewCheckpointRepository(backend),
	}, nil
}

// Close closes every repository and then the backend.
func (r *Repositories) Close() error {
	r.Terms.Close()
	r.Documents.Close()
	r.Corpora.Close()
	return r.Backend.Close()
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close the result when done.
func NewMemoryRepositories() (*Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	repos, err := NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return repos, nil
}
