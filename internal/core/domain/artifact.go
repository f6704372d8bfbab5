// internal/core/domain/artifact.go
package domain

// Artifact extension and content type shared by every output file.
const (
	ArtifactExtension = "ssdeep"
	ArtifactDataType  = "text/plain"
)

// OutputArtifact describes one output file produced for one processed
// input. The store assigns UUID and Path; the hashing core owns the
// content (a single rendered outcome line).
type OutputArtifact struct {
	// UUID identifies the artifact in the surrounding system.
	UUID string `json:"uuid"`

	// Path is the storage-assigned filesystem location.
	Path string `json:"path"`

	// DisplayName is the human-readable label, derived from the input
	// as "SSDeep hash for {display_name}".
	DisplayName string `json:"display_name"`

	// Extension marks the artifact format (always "ssdeep").
	Extension string `json:"extension"`

	// DataType is the content type (always "text/plain").
	DataType string `json:"data_type"`
}

// ArtifactDisplayName derives the artifact label for an input.
func ArtifactDisplayName(input InputFile) string {
	return "SSDeep hash for " + input.Label()
}
