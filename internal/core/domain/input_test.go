// internal/core/domain/input_test.go
package domain

import (
	"testing"

	"ssdeepx/internal/testutil"
)

func TestInputFile_LabelFallbacks(t *testing.T) {
	cases := []struct {
		name  string
		input InputFile
		want  string
	}{
		{"display name wins", InputFile{DisplayName: "report.pdf", Filename: "raw.pdf"}, "report.pdf"},
		{"filename fallback", InputFile{Filename: "raw.pdf"}, "raw.pdf"},
		{"generic placeholder", InputFile{}, "input_file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertEqual(t, tc.input.Label(), tc.want, "label")
		})
	}
}

func TestInputFile_HasPath(t *testing.T) {
	testutil.AssertTrue(t, InputFile{Path: "/data/a.txt"}.HasPath(), "path present")
	testutil.AssertTrue(t, !InputFile{DisplayName: "x"}.HasPath(), "path absent")
}

func TestArtifactDisplayName(t *testing.T) {
	input := InputFile{Path: "/data/a.txt", DisplayName: "a.txt"}
	testutil.AssertEqual(t, ArtifactDisplayName(input), "SSDeep hash for a.txt", "artifact display name")
}
