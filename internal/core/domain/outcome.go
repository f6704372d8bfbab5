// internal/core/domain/outcome.go
package domain

import (
	"fmt"
	"strings"
)

// OutcomeKind tags the classification of one ssdeep invocation.
type OutcomeKind string

const (
	// OutcomeSuccess means ssdeep produced a parseable digest.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeNotice means ssdeep exited cleanly but printed a remark
	// instead of a digest (e.g. file too small to hash).
	OutcomeNotice OutcomeKind = "notice"

	// OutcomeError means ssdeep reported a non-zero exit status.
	OutcomeError OutcomeKind = "error"
)

// digestMarker separates the digest from the quoted filename in
// ssdeep's canonical `HASH,"FILENAME"` output line.
const digestMarker = `,"`

// HashOutcome is the classification of a single invocation. Exactly one
// of Digest, Notice or Message is populated, selected by Kind.
type HashOutcome struct {
	Kind OutcomeKind

	// Digest holds the fuzzy hash value (Kind == OutcomeSuccess).
	Digest string

	// Notice holds the tool's raw remark (Kind == OutcomeNotice).
	Notice string

	// Message holds the formatted error text (Kind == OutcomeError).
	Message string
}

// Classify maps the observable result of one ssdeep invocation to a
// HashOutcome. It is a pure function of (exit code, stdout, stderr):
// a non-zero exit wins over any digest marker that may appear on
// stdout; otherwise the presence of the `,"` marker decides between a
// digest and a notice.
func Classify(exitCode int, stdout, stderr string) HashOutcome {
	out := strings.TrimSpace(stdout)

	if exitCode != 0 {
		details := strings.TrimSpace(stderr)
		if details == "" {
			details = out
		}
		return HashOutcome{
			Kind:    OutcomeError,
			Message: fmt.Sprintf("Error running ssdeep (code %d): %s", exitCode, details),
		}
	}

	if idx := strings.Index(out, digestMarker); idx >= 0 {
		return HashOutcome{
			Kind:   OutcomeSuccess,
			Digest: out[:idx],
		}
	}

	return HashOutcome{
		Kind:   OutcomeNotice,
		Notice: out,
	}
}

// Render returns the single artifact line for this outcome, without the
// trailing newline (the store appends it on write).
func (o HashOutcome) Render() string {
	switch o.Kind {
	case OutcomeSuccess:
		return o.Digest
	case OutcomeNotice:
		return "SSDeep notice: " + o.Notice
	case OutcomeError:
		return o.Message
	default:
		return ""
	}
}

// IsError reports whether the invocation failed at the tool level.
func (o HashOutcome) IsError() bool {
	return o.Kind == OutcomeError
}

// String returns a short readable form for logs.
func (o HashOutcome) String() string {
	return fmt.Sprintf("[%s] %s", o.Kind, o.Render())
}
