// internal/core/usecases/batch.go

// Package usecases contains the batch hashing workflow: resolve the
// effective input set, invoke and classify the external tool per file,
// and aggregate per-file outcomes into a single batch result.
package usecases

import (
	"context"
	"fmt"

	"ssdeepx/internal/core/domain"
	"ssdeepx/internal/core/ports"
	"ssdeepx/internal/platform/logx"
)

// noInputsMessage is the batch-level note when there is nothing to do.
const noInputsMessage = "No input files provided to calculate SSDeep hash."

// BatchHasher processes one ordered batch of input files. Files are
// processed strictly sequentially: each input is invoked, classified
// and written before the next begins, so artifact order always matches
// input order.
type BatchHasher struct {
	runner ports.Runner
	store  ports.ArtifactStore
	logger logx.Logger
}

// BatchHasherOptions configures a BatchHasher.
type BatchHasherOptions struct {
	Runner ports.Runner
	Store  ports.ArtifactStore
	Logger logx.Logger
}

// NewBatchHasher creates a BatchHasher from options.
func NewBatchHasher(opts BatchHasherOptions) *BatchHasher {
	logger := opts.Logger
	if logger == nil {
		logger = logx.New()
	}

	return &BatchHasher{
		runner: opts.Runner,
		store:  opts.Store,
		logger: logger.With("component", "batch_hasher"),
	}
}

// ResolveInputs determines the effective input sequence. A piped
// sequence from a prior stage takes precedence; otherwise the explicit
// list is used verbatim (nil is treated as empty). Order is preserved
// and nothing is filtered or deduplicated here.
func ResolveInputs(piped, explicit []domain.InputFile) []domain.InputFile {
	if len(piped) > 0 {
		return piped
	}
	if explicit == nil {
		return []domain.InputFile{}
	}
	return explicit
}

// Run processes the batch and returns its result. Per-file tool
// failures are converted into artifact content and never abort the
// batch; the returned error is reserved for collaborator faults
// (artifact creation or writing).
func (b *BatchHasher) Run(ctx context.Context, inputs []domain.InputFile, workflowID string) (*domain.BatchResult, error) {
	result := domain.NewBatchResult(workflowID, b.runner.Command())

	if len(inputs) == 0 {
		b.logger.Info("no input files in batch", "workflow_id", workflowID)
		result.SetMessage(noInputsMessage)
		return result, nil
	}

	b.logger.Info("starting batch",
		"workflow_id", workflowID,
		"inputs", len(inputs),
		"command", result.Command,
	)

	for _, input := range inputs {
		if !input.HasPath() {
			b.logger.Warn("skipping file entry with no path",
				"display_name", input.Label(),
				"uuid", input.UUID,
			)
			continue
		}

		outcome := b.hashOne(ctx, input)

		artifact, err := b.emit(input, outcome)
		if err != nil {
			return nil, err
		}
		result.AddOutputFile(*artifact)
	}

	if result.TotalOutputFiles() == 0 {
		b.logger.Warn("batch processed input files but produced no artifacts",
			"workflow_id", workflowID,
			"inputs", len(inputs),
		)
	}

	b.logger.Info("batch completed",
		"workflow_id", workflowID,
		"artifacts", result.TotalOutputFiles(),
	)

	return result, nil
}

// hashOne invokes the tool on a single path and classifies the result.
// An invocation-layer failure (e.g. the binary missing entirely) is
// folded into the same classification path as a failing exit status.
func (b *BatchHasher) hashOne(ctx context.Context, input domain.InputFile) domain.HashOutcome {
	inv, err := b.runner.Invoke(ctx, input.Path)
	if err != nil {
		inv = ports.Invocation{ExitCode: -1, Stderr: err.Error()}
	}

	outcome := domain.Classify(inv.ExitCode, inv.Stdout, inv.Stderr)
	if outcome.IsError() {
		b.logger.Warn("ssdeep failed for input file",
			"path", input.Path,
			"message", outcome.Message,
		)
	}

	return outcome
}

// emit renders the outcome into a freshly created artifact.
func (b *BatchHasher) emit(input domain.InputFile, outcome domain.HashOutcome) (*domain.OutputArtifact, error) {
	artifact, err := b.store.Create(
		domain.ArtifactDisplayName(input),
		domain.ArtifactExtension,
		domain.ArtifactDataType,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactCreateFailed, err)
	}

	if err := b.store.Write(artifact, outcome.Render()); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactWriteFailed, err)
	}

	return artifact, nil
}
