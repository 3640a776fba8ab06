// Package validation checks raw, decoded JSON payloads against declarative
// entity schemas and turns them into normalized records.
//
// HOW A CALL WORKS:
//
//  1. Structural pass. The schema tree is walked depth-first in declaration
//     order. Every leaf is checked for presence, type and its constraints;
//     objects and lists are only descended into when present.
//  2. Cross-field pass. Rules with declared dependencies (branch given
//     course) run only when the field and its dependencies passed pass 1.
//     A broken course therefore yields one course violation, not two.
//
// All violations are collected; nothing is fail-fast. The result is either a
// normalized value tree or an ordered Violations list, never both.
//
// A Validator holds no mutable state. One instance is shared by every
// request goroutine.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-profiles-api/internal/refdata"
)

// Validator validates payloads against schemas.
type Validator struct {
	ref    *refdata.Table
	format *validator.Validate
	now    func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used for date-relative bounds.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New returns a Validator bound to the given reference table.
func New(ref *refdata.Table, opts ...Option) *Validator {
	v := &Validator{
		ref:    ref,
		format: validator.New(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Ref returns the reference table the validator consults.
func (v *Validator) Ref() *refdata.Table {
	return v.ref
}

// Validate checks raw against s. On success it returns the normalized tree:
// map[string]any for objects, []any for lists, and string, int, float64,
// bool, time.Time or nil for leaves. Absent optional scalars and objects are
// nil; absent optional lists are empty.
func (v *Validator) Validate(s *Schema, raw map[string]any) (map[string]any, Violations) {
	w := &walk{
		v:      v,
		now:    v.now(),
		pos:    make(map[string]int),
		failed: make(map[string]bool),
		values: make(map[string]any),
	}

	var root any
	if raw != nil {
		root = raw
	}

	out, _ := w.visit(s.Root, "", root)
	w.crossField(s.Rules)

	if len(w.violations) > 0 {
		w.violations.sortByPosition()
		return nil, w.violations
	}

	m, _ := out.(map[string]any)
	return m, nil
}

type walk struct {
	v          *Validator
	now        time.Time
	seq        int
	pos        map[string]int
	failed     map[string]bool
	values     map[string]any
	violations Violations
}

func (w *walk) report(path string, kind Kind, msg string) {
	w.failed[path] = true
	w.violations = append(w.violations, Violation{
		Field:   path,
		Kind:    kind,
		Message: msg,
		pos:     w.pos[path],
	})
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// visit validates one node and returns its normalized value.
// ok is false when the node or anything below it was reported.
func (w *walk) visit(n *Node, path string, raw any) (any, bool) {
	w.pos[path] = w.seq
	w.seq++

	if s, isStr := raw.(string); isStr && n.Type != TypeObject && n.Type != TypeList {
		if strings.TrimSpace(s) == "" {
			raw = nil
		}
	}

	if raw == nil {
		if n.Required {
			w.report(path, KindRequired, requiredMessage(n))
			return nil, false
		}
		if n.Type == TypeList {
			return []any{}, true
		}
		return nil, true
	}

	switch n.Type {
	case TypeObject:
		return w.visitObject(n, path, raw)
	case TypeList:
		return w.visitList(n, path, raw)
	default:
		val, ok := w.coerce(n, path, raw)
		if !ok {
			return nil, false
		}
		if !w.check(n, path, val) {
			return nil, false
		}
		w.values[path] = val
		return val, true
	}
}

func (w *walk) visitObject(n *Node, path string, raw any) (any, bool) {
	m, isMap := raw.(map[string]any)
	if !isMap {
		w.report(path, KindType, fmt.Sprintf("%s must be %s.", n.Label, n.Type))
		return nil, false
	}

	out := make(map[string]any, len(n.Fields))
	ok := true
	for _, f := range n.Fields {
		val, fieldOK := w.visit(f, joinPath(path, f.Name), m[f.Name])
		out[f.Name] = val
		ok = ok && fieldOK
	}
	return out, ok
}

func (w *walk) visitList(n *Node, path string, raw any) (any, bool) {
	items, isList := raw.([]any)
	if !isList {
		w.report(path, KindType, fmt.Sprintf("%s must be %s.", n.Label, n.Type))
		return nil, false
	}

	// A list over its cap is reported once; its entries are not inspected.
	for _, c := range n.Constraints {
		if c.Kind == ConstraintMaxItems && len(items) > c.Max {
			msg := c.Message
			if msg == "" {
				msg = fmt.Sprintf("You can add a maximum of %d %s.", c.Max, strings.ToLower(n.Label))
			}
			w.report(path, KindMaxItems, msg)
			return nil, false
		}
	}

	out := make([]any, 0, len(items))
	ok := true
	for i, item := range items {
		val, itemOK := w.visit(n.Elem, fmt.Sprintf("%s[%d]", path, i), item)
		out = append(out, val)
		ok = ok && itemOK
	}
	return out, ok
}

// check runs the leaf constraints in order and stops at the first failure,
// so a leaf yields at most one violation.
func (w *walk) check(n *Node, path string, val any) bool {
	for _, c := range n.Constraints {
		if kind, msg, ok := w.apply(n, c, val); !ok {
			w.report(path, kind, msg)
			return false
		}
	}
	return true
}

func (w *walk) apply(n *Node, c Constraint, val any) (Kind, string, bool) {
	switch c.Kind {
	case ConstraintLength:
		s := val.(string)
		l := len([]rune(s))
		if l < c.Min {
			return KindMinLength, pick(c.Message,
				fmt.Sprintf("%s must be at least %d characters long", n.Label, c.Min)), false
		}
		if c.Max > 0 && l > c.Max {
			return KindMaxLength, pick(c.MessageHigh,
				fmt.Sprintf("%s must not exceed %d characters", n.Label, c.Max)), false
		}

	case ConstraintRange:
		f := toFloat(val)
		lo, hi := c.Bounds(w.now)
		if f < lo {
			return KindRange, pick(c.Message,
				fmt.Sprintf("%s cannot be less than %s", n.Label, trimFloat(lo))), false
		}
		if f > hi {
			return KindRange, pick(c.MessageHigh,
				fmt.Sprintf("%s cannot exceed %s", n.Label, trimFloat(hi))), false
		}

	case ConstraintPattern:
		// Patterns are anchored in the schema; MatchString on an anchored
		// expression is a whole-field match.
		if !c.Pattern.MatchString(val.(string)) {
			return KindPattern, pick(c.Message, fmt.Sprintf("%s is not in a valid format.", n.Label)), false
		}

	case ConstraintEnum:
		// Handled in coerce so the canonical spelling reaches the record.

	case ConstraintLiteral:
		if val.(string) != c.Literal {
			return KindLiteralMismatch, pick(c.Message,
				fmt.Sprintf("%s must be %q.", n.Label, c.Literal)), false
		}

	case ConstraintFormat:
		if err := w.v.format.Var(val, c.Format); err != nil {
			return KindFormat, pick(c.Message, fmt.Sprintf("%s must be a valid %s.", n.Label, c.Format)), false
		}

	case ConstraintReference:
		if w.v.ref == nil || !w.v.ref.HasCourse(val.(string)) {
			return KindUnknownCourse, pick(c.Message, "Invalid course"), false
		}
	}

	return "", "", true
}

// crossField runs the second pass. Rules whose field or dependencies did not
// produce a valid value are skipped; their failure is already reported.
func (w *walk) crossField(rules []Rule) {
	env := RuleEnv{values: w.values, Ref: w.v.ref}

	for _, r := range rules {
		if !w.ready(r.Field) {
			continue
		}
		skip := false
		for _, dep := range r.DependsOn {
			if !w.ready(dep) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		if ok, msg := r.Check(env); !ok {
			w.report(r.Field, r.Kind, msg)
		}
	}
}

func (w *walk) ready(path string) bool {
	if w.failed[path] {
		return false
	}
	_, has := w.values[path]
	return has
}

func requiredMessage(n *Node) string {
	return n.Label + " is required."
}

func pick(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
