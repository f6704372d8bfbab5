// internal/core/domain/input.go
package domain

const fallbackDisplayName = "input_file"

// InputFile references one file to be hashed. Instances are constructed
// upstream (pipe envelope or CLI) and are read-only to the hashing core.
type InputFile struct {
	// Path is the filesystem location of the file. An empty path is a
	// skip condition, not a fatal error.
	Path string `json:"path"`

	// DisplayName is the human-readable label assigned upstream.
	DisplayName string `json:"display_name,omitempty"`

	// Filename is the raw filename, used as a display fallback.
	Filename string `json:"filename,omitempty"`

	// UUID is an opaque identifier carried through from upstream.
	UUID string `json:"uuid,omitempty"`
}

// Label returns the name used to describe this input in artifacts and
// logs: DisplayName, falling back to Filename, falling back to a
// generic placeholder.
func (f InputFile) Label() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	if f.Filename != "" {
		return f.Filename
	}
	return fallbackDisplayName
}

// HasPath reports whether the input can be processed at all.
func (f InputFile) HasPath() bool {
	return f.Path != ""
}
