// internal/adapters/storage/local.go

// Package storage implements the ArtifactStore port on the local
// filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"ssdeepx/internal/core/domain"
	"ssdeepx/internal/platform/logx"
)

// LocalStore allocates artifacts as uuid-named files under a single
// output directory.
type LocalStore struct {
	dir    string
	logger logx.Logger
}

// NewLocalStore creates a store rooted at dir.
func NewLocalStore(dir string, logger logx.Logger) *LocalStore {
	if dir == "" {
		dir = "."
	}
	return &LocalStore{
		dir:    dir,
		logger: logger.With("store", "local"),
	}
}

// Create allocates a new artifact location. The file itself is created
// on first Write.
func (s *LocalStore) Create(displayName, extension, dataType string) (*domain.OutputArtifact, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	id := uuid.New().String()
	filename := id
	if extension != "" {
		filename = id + "." + extension
	}

	artifact := &domain.OutputArtifact{
		UUID:        id,
		Path:        filepath.Join(s.dir, filename),
		DisplayName: displayName,
		Extension:   extension,
		DataType:    dataType,
	}

	s.logger.Debug("allocated artifact",
		"uuid", artifact.UUID,
		"path", artifact.Path,
		"display_name", artifact.DisplayName,
	)

	return artifact, nil
}

// Write stores one line plus a trailing newline into the artifact's
// assigned path. The file handle does not outlive the call.
func (s *LocalStore) Write(artifact *domain.OutputArtifact, line string) error {
	f, err := os.Create(artifact.Path)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write artifact content: %w", err)
	}

	return nil
}
