package validation

import (
	"regexp"
	"time"

	"github.com/aanand-mishra/student-profiles-api/internal/refdata"
)

// Type is the semantic type of a schema node.
type Type int

const (
	TypeObject Type = iota
	TypeList
	TypeString
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDate
)

func (t Type) String() string {
	switch t {
	case TypeObject:
		return "an object"
	case TypeList:
		return "a list"
	case TypeString:
		return "a string"
	case TypeInteger:
		return "a whole number"
	case TypeFloat:
		return "a number"
	case TypeBoolean:
		return "true or false"
	case TypeDate:
		return "a date in YYYY-MM-DD format"
	default:
		return "unknown"
	}
}

// Node is one element of an entity schema tree. Objects list their fields in
// declaration order, which is also the order violations are reported in.
type Node struct {
	Name        string
	Label       string
	Type        Type
	Required    bool
	Fields      []*Node
	Elem        *Node
	Constraints []Constraint
}

// ConstraintKind is the closed set of leaf constraints the dispatcher knows.
type ConstraintKind int

const (
	ConstraintLength ConstraintKind = iota
	ConstraintRange
	ConstraintPattern
	ConstraintEnum
	ConstraintLiteral
	ConstraintFormat
	ConstraintMaxItems
	ConstraintReference
)

// Constraint is a tagged variant; only the fields relevant to Kind are set.
type Constraint struct {
	Kind ConstraintKind

	// Length (characters) and MaxItems (entries).
	Min, Max int

	// Range. Bounds is evaluated per call so that limits tied to the
	// current date move with the clock.
	Bounds func(now time.Time) (lo, hi float64)

	Pattern *regexp.Regexp

	// Enum holds canonical spellings; input matches case-insensitively.
	Values []string

	Literal string

	// Format is a go-playground/validator tag such as "email" or "http_url".
	Format string

	// Message replaces the generated message. For Length and Range,
	// MessageHigh is used when the upper bound is broken.
	Message     string
	MessageHigh string
}

// Rule is a cross-field rule evaluated in the second pass. It runs only if
// Field and every DependsOn path passed the first pass with a value.
type Rule struct {
	Field     string
	DependsOn []string
	Kind      Kind
	Check     func(env RuleEnv) (ok bool, message string)
}

// RuleEnv exposes first-pass results and reference data to a Rule.
type RuleEnv struct {
	values map[string]any
	Ref    *refdata.Table
}

// String returns the normalized string at path, or "" when it has none.
func (e RuleEnv) String(path string) string {
	s, _ := e.values[path].(string)
	return s
}

// Schema is a named root node plus its cross-field rules.
type Schema struct {
	Name  string
	Root  *Node
	Rules []Rule
}

// ── node builders ───────────────────────────────────────────────────────────

func newNode(t Type, name, label string) *Node {
	return &Node{Name: name, Label: label, Type: t}
}

// String declares a text field; values are trimmed and blank means absent.
func String(name, label string) *Node { return newNode(TypeString, name, label) }

// Integer declares a whole-number field. Numeric strings are accepted.
func Integer(name, label string) *Node { return newNode(TypeInteger, name, label) }

// Float declares a numeric field. Numeric strings are accepted.
func Float(name, label string) *Node { return newNode(TypeFloat, name, label) }

// Boolean declares a true/false field.
func Boolean(name, label string) *Node { return newNode(TypeBoolean, name, label) }

// Date declares a YYYY-MM-DD or RFC 3339 field, stored as UTC midnight.
func Date(name, label string) *Node { return newNode(TypeDate, name, label) }

// Object declares a nested section whose fields are visited in order.
func Object(name, label string, fields ...*Node) *Node {
	n := newNode(TypeObject, name, label)
	n.Fields = fields
	return n
}

// List declares a repeatable field; every entry is checked against elem.
func List(name, label string, elem *Node) *Node {
	n := newNode(TypeList, name, label)
	n.Elem = elem
	return n
}

// Require marks the node as mandatory.
func (n *Node) Require() *Node {
	n.Required = true
	return n
}

// With appends constraints, evaluated in the given order.
func (n *Node) With(cs ...Constraint) *Node {
	n.Constraints = append(n.Constraints, cs...)
	return n
}

// ── constraint builders ────────────────────────────────────────────────────

// Length bounds a string to [min, max] characters. max 0 means no upper bound.
func Length(min, max int) Constraint {
	return Constraint{Kind: ConstraintLength, Min: min, Max: max}
}

// Range bounds a number to [lo, hi].
func Range(lo, hi float64) Constraint {
	return Constraint{
		Kind:   ConstraintRange,
		Bounds: func(time.Time) (float64, float64) { return lo, hi },
	}
}

// YearRange bounds a year to [from, currentYear+ahead].
func YearRange(from, ahead int) Constraint {
	return Constraint{
		Kind: ConstraintRange,
		Bounds: func(now time.Time) (float64, float64) {
			return float64(from), float64(now.Year() + ahead)
		},
	}
}

// Pattern requires a string to match expr, which must be anchored.
func Pattern(expr string) Constraint {
	return Constraint{Kind: ConstraintPattern, Pattern: regexp.MustCompile(expr)}
}

// OneOf accepts any of values case-insensitively and stores the listed spelling.
func OneOf(values ...string) Constraint {
	return Constraint{Kind: ConstraintEnum, Values: values}
}

// Literal requires exactly value.
func Literal(value string) Constraint {
	return Constraint{Kind: ConstraintLiteral, Literal: value}
}

// Format checks a string with a validator/v10 tag such as "email" or "url".
func Format(tag string) Constraint {
	return Constraint{Kind: ConstraintFormat, Format: tag}
}

// MaxItems caps the number of entries in a list.
func MaxItems(n int) Constraint {
	return Constraint{Kind: ConstraintMaxItems, Max: n}
}

// CourseKey requires the value to be a course in the reference table.
func CourseKey() Constraint {
	return Constraint{Kind: ConstraintReference}
}

// Msg sets the message used for a violation of c.
func (c Constraint) Msg(msg string) Constraint {
	c.Message = msg
	return c
}

// MsgHigh sets the message used when the upper bound of c is broken.
func (c Constraint) MsgHigh(msg string) Constraint {
	c.MessageHigh = msg
	return c
}
