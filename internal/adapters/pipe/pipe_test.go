// internal/adapters/pipe/pipe_test.go
package pipe

import (
	"encoding/base64"
	"errors"
	"testing"

	"ssdeepx/internal/core/domain"
	"ssdeepx/internal/testutil"
)

func TestDecodeInputFiles_Empty(t *testing.T) {
	inputs, err := DecodeInputFiles("")

	testutil.AssertNoError(t, err, "empty envelope is valid")
	testutil.AssertEqual(t, len(inputs), 0, "no inputs")
}

func TestDecodeInputFiles_PriorStageOutputs(t *testing.T) {
	raw := `{"output_files":[{"path":"/data/a.txt","display_name":"a.txt","uuid":"u-1"},{"path":"/data/b.txt"}],"workflow_id":"wf-1","command":"strings"}`
	encoded := base64.StdEncoding.EncodeToString([]byte(raw))

	inputs, err := DecodeInputFiles(encoded)

	testutil.AssertNoError(t, err, "decode should succeed")
	testutil.AssertEqual(t, len(inputs), 2, "input count")
	testutil.AssertEqual(t, inputs[0].Path, "/data/a.txt", "first path")
	testutil.AssertEqual(t, inputs[0].DisplayName, "a.txt", "first display name")
	testutil.AssertEqual(t, inputs[0].UUID, "u-1", "first uuid")
	testutil.AssertEqual(t, inputs[1].Path, "/data/b.txt", "second path")
}

func TestDecodeInputFiles_BadBase64(t *testing.T) {
	_, err := DecodeInputFiles("not-base64!!!")

	testutil.AssertError(t, err, "invalid base64 fails")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrEnvelopeDecodeFailed), "wrapped sentinel")
}

func TestDecodeInputFiles_BadJSON(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("{nope"))

	_, err := DecodeInputFiles(encoded)

	testutil.AssertError(t, err, "invalid JSON fails")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrEnvelopeDecodeFailed), "wrapped sentinel")
}

func TestEncodeResult_RoundTrip(t *testing.T) {
	result := domain.NewBatchResult("wf-1", "ssdeep -s -b")
	result.AddOutputFile(domain.OutputArtifact{
		UUID:        "u-1",
		Path:        "/out/u-1.ssdeep",
		DisplayName: "SSDeep hash for a.txt",
		Extension:   "ssdeep",
		DataType:    "text/plain",
	})

	encoded, err := EncodeResult(result)
	testutil.AssertNoError(t, err, "encode should succeed")

	// The next stage consumes our output files as its inputs.
	inputs, err := DecodeInputFiles(encoded)
	testutil.AssertNoError(t, err, "decode should succeed")
	testutil.AssertEqual(t, len(inputs), 1, "input count")
	testutil.AssertEqual(t, inputs[0].Path, "/out/u-1.ssdeep", "path carried through")
	testutil.AssertEqual(t, inputs[0].DisplayName, "SSDeep hash for a.txt", "display name carried through")
}
