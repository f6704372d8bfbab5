// internal/core/domain/result.go
package domain

import "fmt"

// BatchResult is the task-level record for one batch invocation.
type BatchResult struct {
	// OutputFiles lists the produced artifacts, in input order.
	// Possibly empty.
	OutputFiles []OutputArtifact `json:"output_files"`

	// WorkflowID identifies the surrounding workflow, if any.
	WorkflowID string `json:"workflow_id,omitempty"`

	// Command is the fixed invocation signature used for reporting.
	// It documents the invocation contract, not a replay log.
	Command string `json:"command"`

	// Meta carries optional batch-level metadata, e.g. an explanatory
	// message when there were no inputs at all.
	Meta map[string]string `json:"meta"`
}

// NewBatchResult creates an empty result for a workflow.
func NewBatchResult(workflowID, command string) *BatchResult {
	return &BatchResult{
		OutputFiles: []OutputArtifact{},
		WorkflowID:  workflowID,
		Command:     command,
		Meta:        map[string]string{},
	}
}

// AddOutputFile appends an artifact descriptor, preserving input order.
func (r *BatchResult) AddOutputFile(artifact OutputArtifact) {
	r.OutputFiles = append(r.OutputFiles, artifact)
}

// SetMessage records an explanatory batch-level note.
func (r *BatchResult) SetMessage(msg string) {
	r.Meta["message"] = msg
}

// TotalOutputFiles returns the number of produced artifacts.
func (r *BatchResult) TotalOutputFiles() int {
	return len(r.OutputFiles)
}

// Summary returns a readable one-line form for logs.
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("BatchResult{workflow=%s, outputs=%d, command=%q}",
		r.WorkflowID, len(r.OutputFiles), r.Command)
}
