// Package orchestrator coordinates the rename workflow for dashify.
package orchestrator

import (
	"fmt"
	"io"
	"time"

	"dashify/internal/output"
	"dashify/internal/planner"
	"dashify/internal/renamer"
	"dashify/internal/scanner"
)

// Options configures a rename pass.
type Options struct {
	Output *output.Output // Reporting destination; nil silences all reporting
}

// Summary represents the overall results of one rename pass.
type Summary struct {
	Directory string
	Scanned   int              // Entries found in the directory
	Renamed   int              // Renames applied
	Unchanged int              // Entries left untouched
	Renames   []planner.Rename // Applied renames, in listing order
	Duration  time.Duration
}

// PrintSummary returns a formatted summary string.
func (s *Summary) PrintSummary() string {
	return fmt.Sprintf("Processed %d entries: %d renamed, %d unchanged",
		s.Scanned, s.Renamed, s.Unchanged)
}

// Run executes one rename pass over the given directory: list the
// entries, plan the renames, validate the plan, then apply it in
// listing order.
//
// A plan that would collide, either because two names normalize to the
// same target or because a target name is already taken, aborts the
// pass before any entry is touched. A rename that fails mid-pass stops
// the pass immediately; the returned summary covers what was applied
// up to that point.
func Run(directory string, opts Options) (*Summary, error) {
	start := time.Now()

	out := opts.Output
	if out == nil {
		out = output.New(output.Config{Writer: io.Discard, ErrWriter: io.Discard})
	}

	entries, err := scanner.List(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", directory, err)
	}

	summary := &Summary{
		Directory: directory,
		Scanned:   len(entries),
	}
	out.Verbose("Scanned %d entries in %s", len(entries), directory)

	plan := planner.Build(directory, entries)
	if len(plan.Renames) == 0 {
		summary.Unchanged = summary.Scanned
		summary.Duration = time.Since(start)
		out.Verbose("Nothing to rename")
		return summary, nil
	}

	if err := plan.Validate(entries); err != nil {
		return nil, fmt.Errorf("failed to validate rename plan: %w", err)
	}

	out.StartProgress(len(plan.Renames))
	for i, rename := range plan.Renames {
		out.UpdateProgress(i + 1)
		if err := renamer.Move(rename.SourcePath, rename.TargetPath); err != nil {
			out.EndProgress()
			summary.Unchanged = summary.Scanned - summary.Renamed
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("failed to rename %s: %w", rename.Source, err)
		}
		summary.Renamed++
		summary.Renames = append(summary.Renames, rename)
		out.Verbose("Renamed %s -> %s", rename.Source, rename.Target)
	}
	out.EndProgress()

	summary.Unchanged = summary.Scanned - summary.Renamed
	summary.Duration = time.Since(start)
	return summary, nil
}
