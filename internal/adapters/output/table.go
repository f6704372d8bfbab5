// internal/adapters/output/table.go

// Package output renders batch results for the terminal.
package output

import (
	"fmt"

	"github.com/pterm/pterm"

	"ssdeepx/internal/core/domain"
)

// PrintSummary prints a readable batch summary: one row per produced
// artifact plus batch-level totals and metadata notes.
func PrintSummary(result *domain.BatchResult) error {
	pterm.DefaultSection.Println("SSDeep Batch Result")

	pterm.Info.Printf("Command: %s\n", result.Command)
	if result.WorkflowID != "" {
		pterm.Info.Printf("Workflow: %s\n", result.WorkflowID)
	}

	if len(result.OutputFiles) == 0 {
		pterm.Warning.Println("No artifacts produced.")
	} else {
		rows := pterm.TableData{
			{"ARTIFACT", "UUID", "PATH"},
		}
		for _, a := range result.OutputFiles {
			rows = append(rows, []string{a.DisplayName, a.UUID, a.Path})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return fmt.Errorf("failed to render summary table: %w", err)
		}
	}

	if msg, ok := result.Meta["message"]; ok && msg != "" {
		pterm.Warning.Println(msg)
	}

	pterm.Info.Printf("Artifacts: %d\n", result.TotalOutputFiles())
	return nil
}
