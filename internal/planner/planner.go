// Package planner builds and validates rename plans for dashify.
package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"dashify/internal/normalizer"
	"dashify/internal/scanner"
)

// ConflictType represents the type of naming conflict found during
// plan validation.
type ConflictType string

const (
	// DuplicateTarget indicates two or more entries normalize to the
	// same name.
	DuplicateTarget ConflictType = "DUPLICATE_TARGET"
	// TargetExists indicates the normalized name is already taken by
	// an entry that is not being renamed.
	TargetExists ConflictType = "TARGET_EXISTS"
)

// Conflict describes a single naming conflict.
type Conflict struct {
	Type    ConflictType
	Target  string   // The contested name
	Sources []string // Entry names that normalize to Target
}

func (c Conflict) String() string {
	switch c.Type {
	case DuplicateTarget:
		return fmt.Sprintf("%s: %s claimed by %s", c.Type, c.Target, strings.Join(c.Sources, ", "))
	case TargetExists:
		return fmt.Sprintf("%s: %s already taken, wanted by %s", c.Type, c.Target, strings.Join(c.Sources, ", "))
	default:
		return fmt.Sprintf("%s: %s", c.Type, c.Target)
	}
}

// ValidationError reports every naming conflict a plan would cause.
// No rename is performed when validation fails.
type ValidationError struct {
	Directory string
	Conflicts []Conflict
}

func (e *ValidationError) Error() string {
	details := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		details[i] = c.String()
	}
	return fmt.Sprintf("%d naming conflict(s) in %s: %s",
		len(e.Conflicts), e.Directory, strings.Join(details, "; "))
}

// Rename is a single planned rename within the directory.
type Rename struct {
	Source     string // Original entry name
	Target     string // Normalized entry name
	SourcePath string
	TargetPath string
}

// Plan is the full set of renames for one directory, in the order the
// entries were listed.
type Plan struct {
	Directory string
	Renames   []Rename
}

// Build derives a rename plan from a directory listing. Only entries
// whose names contain an underscore appear in the plan; the listing
// order is preserved.
func Build(directory string, entries []scanner.Entry) Plan {
	plan := Plan{Directory: directory}
	for _, entry := range entries {
		if !normalizer.NeedsRename(entry.Name) {
			continue
		}
		target := normalizer.Hyphenate(entry.Name)
		plan.Renames = append(plan.Renames, Rename{
			Source:     entry.Name,
			Target:     target,
			SourcePath: entry.Path,
			TargetPath: filepath.Join(directory, target),
		})
	}
	return plan
}

// Validate checks the plan against the listing it was built from and
// returns a ValidationError describing every conflict the plan would
// cause. Normalized names never contain underscores, so an existing
// entry occupying a target name cannot itself be renamed out of the
// way; any occupied target is a hard conflict.
func (p *Plan) Validate(entries []scanner.Entry) error {
	taken := make(map[string]bool, len(entries))
	for _, entry := range entries {
		taken[entry.Name] = true
	}

	sourcesByTarget := make(map[string][]string, len(p.Renames))
	targetOrder := make([]string, 0, len(p.Renames))
	for _, rename := range p.Renames {
		if _, seen := sourcesByTarget[rename.Target]; !seen {
			targetOrder = append(targetOrder, rename.Target)
		}
		sourcesByTarget[rename.Target] = append(sourcesByTarget[rename.Target], rename.Source)
	}

	var conflicts []Conflict
	for _, target := range targetOrder {
		sources := sourcesByTarget[target]
		if len(sources) > 1 {
			conflicts = append(conflicts, Conflict{
				Type:    DuplicateTarget,
				Target:  target,
				Sources: sources,
			})
		}
		if taken[target] {
			conflicts = append(conflicts, Conflict{
				Type:    TargetExists,
				Target:  target,
				Sources: sources,
			})
		}
	}

	if len(conflicts) > 0 {
		return &ValidationError{
			Directory: p.Directory,
			Conflicts: conflicts,
		}
	}
	return nil
}
