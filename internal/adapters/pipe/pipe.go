// internal/adapters/pipe/pipe.go

// Package pipe encodes and decodes the base64(JSON) task envelope used
// to chain pipeline stages. A prior stage's output files become this
// stage's input files.
package pipe

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"ssdeepx/internal/core/domain"
)

// envelope is the wire form of a task result. Only the fields this
// stage consumes are modeled; unknown fields are ignored on decode.
type envelope struct {
	OutputFiles []domain.InputFile `json:"output_files"`
	WorkflowID  string             `json:"workflow_id,omitempty"`
	Command     string             `json:"command,omitempty"`
	Meta        map[string]string  `json:"meta,omitempty"`
}

// DecodeInputFiles turns an upstream-encoded result into the input
// sequence for this stage. An empty string decodes to no inputs.
func DecodeInputFiles(pipeResult string) ([]domain.InputFile, error) {
	if pipeResult == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(pipeResult)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEnvelopeDecodeFailed, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEnvelopeDecodeFailed, err)
	}

	return env.OutputFiles, nil
}

// EncodeResult serializes a batch result into the envelope consumed by
// the next stage or the result collector.
func EncodeResult(result *domain.BatchResult) (string, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEnvelopeEncodeFailed, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
