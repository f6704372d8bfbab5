// internal/core/ports/storage.go
package ports

import "ssdeepx/internal/core/domain"

// ArtifactStore is the port for the output-storage collaborator. It
// allocates artifact locations and performs the per-artifact write; the
// hashing core never holds a file handle itself.
type ArtifactStore interface {
	// Create allocates a new artifact with a storage-assigned path.
	Create(displayName, extension, dataType string) (*domain.OutputArtifact, error)

	// Write stores the rendered line plus a trailing newline into the
	// artifact's assigned location. The underlying handle is scoped
	// strictly to this call.
	Write(artifact *domain.OutputArtifact, line string) error
}
