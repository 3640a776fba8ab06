// Package refdata holds the static course → branch reference table that the
// registration validator consults for the branch-given-course rule.
//
// The table is loaded exactly once at process start (from a file named in the
// config, or from the copy embedded in the binary) and is never mutated
// afterwards. Because nothing writes to it after Parse returns, any number of
// goroutines may read from it concurrently without locking.
package refdata

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/qri-io/jsonschema"
	"gopkg.in/yaml.v3"
)

// ErrUnavailable is returned when the reference data cannot be read or is
// malformed. The service must not start without a usable table.
var ErrUnavailable = errors.New("reference data unavailable")

//go:embed courses.json
var embeddedCourses []byte

// tableSchema describes the only accepted file shape: an object whose values
// are non-empty arrays of unique, non-empty strings.
const tableSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {
		"type": "array",
		"minItems": 1,
		"uniqueItems": true,
		"items": {"type": "string", "minLength": 1}
	}
}`

// Table maps a course name to its ordered list of branch names.
type Table struct {
	courses  []string
	branches map[string][]string
}

// Default returns the table embedded in the binary.
func Default() (*Table, error) {
	return Parse(embeddedCourses)
}

// Load reads the table from path. An empty path selects the embedded table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML or JSON document of the form
//
//	course: [branch, branch, ...]
//
// The document is checked against tableSchema first so that a typo in the
// file surfaces as one clear startup error instead of a half-loaded table.
// Course order from the file is preserved.
func Parse(data []byte) (*Table, error) {
	// yaml.v3 accepts JSON as well, so both file formats share one path.
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	raw, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: re-encode: %v", ErrUnavailable, err)
	}

	if err := checkShape(raw); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	// After checkShape the root is guaranteed to be a mapping of sequences.
	root := doc.Content[0]
	t := &Table{
		courses:  make([]string, 0, len(root.Content)/2),
		branches: make(map[string][]string, len(root.Content)/2),
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		course := strings.TrimSpace(root.Content[i].Value)
		if course == "" {
			return nil, fmt.Errorf("%w: empty course name", ErrUnavailable)
		}
		if _, dup := t.branches[course]; dup {
			return nil, fmt.Errorf("%w: duplicate course %q", ErrUnavailable, course)
		}

		var list []string
		if err := root.Content[i+1].Decode(&list); err != nil {
			return nil, fmt.Errorf("%w: course %q: %v", ErrUnavailable, course, err)
		}

		t.courses = append(t.courses, course)
		t.branches[course] = list
	}

	return t, nil
}

func checkShape(raw []byte) error {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(tableSchema), rs); err != nil {
		return fmt.Errorf("%w: compile schema: %v", ErrUnavailable, err)
	}

	keyErrs, err := rs.ValidateBytes(context.Background(), raw)
	if err != nil {
		return fmt.Errorf("%w: validate: %v", ErrUnavailable, err)
	}
	if len(keyErrs) == 0 {
		return nil
	}

	var b bytes.Buffer
	for i, ke := range keyErrs {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", ke.PropertyPath, ke.Message)
	}

	return fmt.Errorf("%w: %s", ErrUnavailable, b.String())
}

// BranchesFor returns the branches offered for course, in file order.
// It returns an empty (non-nil) slice when the course is unknown.
// The returned slice is a copy; callers may modify it freely.
func (t *Table) BranchesFor(course string) []string {
	list, ok := t.branches[course]
	if !ok {
		return []string{}
	}

	out := make([]string, len(list))
	copy(out, list)
	return out
}

// HasCourse reports whether course is a key of the table.
func (t *Table) HasCourse(course string) bool {
	_, ok := t.branches[course]
	return ok
}

// HasBranch reports whether branch is offered for course.
func (t *Table) HasBranch(course, branch string) bool {
	for _, b := range t.branches[course] {
		if b == branch {
			return true
		}
	}
	return false
}

// Courses returns every course name in file order.
func (t *Table) Courses() []string {
	out := make([]string, len(t.courses))
	copy(out, t.courses)
	return out
}

// Entry is one course with its branches, used when the table is served to
// clients that populate course/branch selectors.
type Entry struct {
	Course   string   `json:"course"`
	Branches []string `json:"branches"`
}

// Entries returns the whole table as an ordered list.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.courses))
	for _, c := range t.courses {
		out = append(out, Entry{Course: c, Branches: t.BranchesFor(c)})
	}
	return out
}
