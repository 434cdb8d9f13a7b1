package planner

import (
	"errors"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"dashify/internal/scanner"
)

func listing(directory string, names ...string) []scanner.Entry {
	entries := make([]scanner.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, scanner.Entry{
			Name: name,
			Path: filepath.Join(directory, name),
		})
	}
	return entries
}

func TestBuild(t *testing.T) {
	dir := filepath.Join("/data", "incoming")

	tests := []struct {
		name    string
		entries []string
		want    []Rename
	}{
		{
			name:    "mixed names",
			entries: []string{"README", "data_set_2.bin", "image_01.raw"},
			want: []Rename{
				{Source: "data_set_2.bin", Target: "data-set-2.bin"},
				{Source: "image_01.raw", Target: "image-01.raw"},
			},
		},
		{
			name:    "nothing to rename",
			entries: []string{"README", "image-01.raw"},
			want:    nil,
		},
		{
			name:    "empty listing",
			entries: nil,
			want:    nil,
		},
		{
			name:    "listing order preserved",
			entries: []string{"a_1", "b_2", "c_3"},
			want: []Rename{
				{Source: "a_1", Target: "a-1"},
				{Source: "b_2", Target: "b-2"},
				{Source: "c_3", Target: "c-3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Build(dir, listing(dir, tt.entries...))

			if plan.Directory != dir {
				t.Errorf("Plan directory = %s, want %s", plan.Directory, dir)
			}
			if len(plan.Renames) != len(tt.want) {
				t.Fatalf("Expected %d renames, got %d", len(tt.want), len(plan.Renames))
			}
			for i, want := range tt.want {
				got := plan.Renames[i]
				if got.Source != want.Source || got.Target != want.Target {
					t.Errorf("Rename %d = %s -> %s, want %s -> %s",
						i, got.Source, got.Target, want.Source, want.Target)
				}
				if got.SourcePath != filepath.Join(dir, want.Source) {
					t.Errorf("SourcePath = %s, want %s", got.SourcePath, filepath.Join(dir, want.Source))
				}
				if got.TargetPath != filepath.Join(dir, want.Target) {
					t.Errorf("TargetPath = %s, want %s", got.TargetPath, filepath.Join(dir, want.Target))
				}
			}
		})
	}
}

func TestBuildIncludesDirectories(t *testing.T) {
	dir := "/data"
	entries := []scanner.Entry{
		{Name: "old_archive", Path: filepath.Join(dir, "old_archive"), IsDir: true},
		{Name: "notes_file.txt", Path: filepath.Join(dir, "notes_file.txt")},
	}

	plan := Build(dir, entries)
	if len(plan.Renames) != 2 {
		t.Fatalf("Expected 2 renames, got %d", len(plan.Renames))
	}
	if plan.Renames[0].Target != "old-archive" {
		t.Errorf("Directory rename target = %s, want old-archive", plan.Renames[0].Target)
	}
}

func TestValidateCleanPlan(t *testing.T) {
	dir := "/data"
	entries := listing(dir, "README", "data_set_2.bin", "image_01.raw")
	plan := Build(dir, entries)

	if err := plan.Validate(entries); err != nil {
		t.Errorf("Expected clean validation, got %v", err)
	}
}

func TestValidateTargetExists(t *testing.T) {
	dir := "/data"
	entries := listing(dir, "a-b", "a_b")
	plan := Build(dir, entries)

	err := plan.Validate(entries)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if len(validationErr.Conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d", len(validationErr.Conflicts))
	}

	conflict := validationErr.Conflicts[0]
	if conflict.Type != TargetExists {
		t.Errorf("Conflict type = %s, want %s", conflict.Type, TargetExists)
	}
	if conflict.Target != "a-b" {
		t.Errorf("Conflict target = %s, want a-b", conflict.Target)
	}
	if len(conflict.Sources) != 1 || conflict.Sources[0] != "a_b" {
		t.Errorf("Conflict sources = %v, want [a_b]", conflict.Sources)
	}
}

func TestValidateDuplicateTarget(t *testing.T) {
	dir := "/data"
	entries := listing(dir, "a-b_c", "a_b-c")
	plan := Build(dir, entries)

	err := plan.Validate(entries)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if len(validationErr.Conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d", len(validationErr.Conflicts))
	}

	conflict := validationErr.Conflicts[0]
	if conflict.Type != DuplicateTarget {
		t.Errorf("Conflict type = %s, want %s", conflict.Type, DuplicateTarget)
	}
	if conflict.Target != "a-b-c" {
		t.Errorf("Conflict target = %s, want a-b-c", conflict.Target)
	}
	if len(conflict.Sources) != 2 {
		t.Errorf("Expected 2 sources, got %v", conflict.Sources)
	}
}

func TestValidateReportsEveryConflict(t *testing.T) {
	dir := "/data"
	entries := listing(dir, "a-b-c", "a-b_c", "a_b-c", "x-y", "x_y")
	plan := Build(dir, entries)

	err := plan.Validate(entries)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}

	// a-b-c is both duplicated and already taken; x-y is taken.
	if len(validationErr.Conflicts) != 3 {
		t.Fatalf("Expected 3 conflicts, got %d: %v", len(validationErr.Conflicts), validationErr.Conflicts)
	}

	msg := validationErr.Error()
	if !strings.Contains(msg, "3 naming conflict(s)") {
		t.Errorf("Error message missing conflict count: %s", msg)
	}
	if !strings.Contains(msg, string(DuplicateTarget)) || !strings.Contains(msg, string(TargetExists)) {
		t.Errorf("Error message missing conflict types: %s", msg)
	}
}

// namePair couples an underscore-free target with a source that
// normalizes to it.
type namePair struct {
	Source string
	Target string
}

// genNamePairs generates distinct rename pairs built from alpha segments.
func genNamePairs() gopter.Gen {
	segment := gen.IntRange(1, 8).FlatMap(func(length interface{}) gopter.Gen {
		return gen.SliceOfN(length.(int), gen.AlphaLowerChar())
	}, reflect.TypeOf([]rune{})).Map(func(chars []rune) string {
		return string(chars)
	})

	pair := gopter.CombineGens(segment, segment).Map(func(vals []interface{}) namePair {
		prefix := vals[0].(string)
		suffix := vals[1].(string)
		return namePair{
			Source: prefix + "_" + suffix,
			Target: prefix + "-" + suffix,
		}
	})

	return gen.SliceOfN(6, pair).Map(func(pairs []namePair) []namePair {
		seen := make(map[string]bool)
		unique := []namePair{}
		for _, p := range pairs {
			if !seen[p.Target] {
				seen[p.Target] = true
				unique = append(unique, p)
			}
		}
		return unique
	})
}

func TestPlanProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	dir := "/data"

	properties.Property("plan targets never contain underscores", prop.ForAll(
		func(pairs []namePair) bool {
			names := make([]string, 0, len(pairs))
			for _, p := range pairs {
				names = append(names, p.Source)
			}
			plan := Build(dir, listing(dir, names...))
			for _, rename := range plan.Renames {
				if strings.Contains(rename.Target, "_") {
					t.Logf("Target %s contains underscore", rename.Target)
					return false
				}
			}
			return true
		},
		genNamePairs(),
	))

	properties.Property("collision-free listings validate cleanly", prop.ForAll(
		func(pairs []namePair) bool {
			names := make([]string, 0, len(pairs)+2)
			for _, p := range pairs {
				names = append(names, p.Source)
			}
			// Bystanders without underscores or hyphens never collide
			// with pair targets, which always contain a hyphen.
			for i := 0; i < 2; i++ {
				names = append(names, "bystander"+strconv.Itoa(i))
			}

			entries := listing(dir, names...)
			plan := Build(dir, entries)

			if len(plan.Renames) != len(pairs) {
				t.Logf("Expected %d renames, got %d", len(pairs), len(plan.Renames))
				return false
			}
			if err := plan.Validate(entries); err != nil {
				t.Logf("Unexpected validation error: %v", err)
				return false
			}
			return true
		},
		genNamePairs(),
	))

	properties.Property("occupied targets always fail validation", prop.ForAll(
		func(pairs []namePair) bool {
			if len(pairs) == 0 {
				return true
			}
			names := make([]string, 0, len(pairs)+1)
			for _, p := range pairs {
				names = append(names, p.Source)
			}
			names = append(names, pairs[0].Target)

			entries := listing(dir, names...)
			plan := Build(dir, entries)

			err := plan.Validate(entries)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Logf("Expected ValidationError, got %v", err)
				return false
			}
			for _, conflict := range validationErr.Conflicts {
				if conflict.Type == TargetExists && conflict.Target == pairs[0].Target {
					return true
				}
			}
			t.Logf("TargetExists conflict for %s not reported", pairs[0].Target)
			return false
		},
		genNamePairs(),
	))

	properties.Property("colliding sources always fail validation", prop.ForAll(
		func(pairs []namePair) bool {
			if len(pairs) == 0 {
				return true
			}
			// Two distinct sources for the same doubled target.
			first := pairs[0]
			doubled := namePair{
				Source: first.Source + "-" + first.Source,
				Target: first.Target + "-" + first.Target,
			}
			other := first.Source + "-" + strings.ReplaceAll(first.Source, "_", "-")

			entries := listing(dir, doubled.Source, other)
			plan := Build(dir, entries)

			err := plan.Validate(entries)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Logf("Expected ValidationError, got %v", err)
				return false
			}
			for _, conflict := range validationErr.Conflicts {
				if conflict.Type == DuplicateTarget && conflict.Target == doubled.Target {
					return len(conflict.Sources) == 2
				}
			}
			t.Logf("DuplicateTarget conflict for %s not reported", doubled.Target)
			return false
		},
		genNamePairs(),
	))

	properties.TestingRun(t)
}
