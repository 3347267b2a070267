// Package filter matches decoded utmp entries against field
// conditions, the selection layer behind the CLI's --match and --user
// flags.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vardr/utmp/pkg/codec"
)

// Predicate reports whether an entry matches.
type Predicate func(e codec.Entry) bool

// Condition is a single field comparison, e.g. {user, =, alice}.
type Condition struct {
	Field string // user, line, host, id, type, pid, time
	Op    string // =, !=, and for pid/time also >, >=, <, <=
	Value string
}

// operator tokens, longest first so ParseCondition never splits ">="
// into ">" and a value starting with "=".
var operators = []string{">=", "<=", "!=", "=", ">", "<"}

var stringFields = map[string]bool{
	"user": true, "line": true, "host": true, "id": true, "type": true,
}

// ParseCondition parses a "field<op>value" expression such as
// "user=alice", "pid!=0" or "time>=2026-01-02T15:04:05Z".
func ParseCondition(s string) (Condition, error) {
	at, opAt := -1, ""
	for _, op := range operators {
		if i := strings.Index(s, op); i >= 0 && (at < 0 || i < at) {
			at, opAt = i, op
		}
	}
	if at <= 0 {
		return Condition{}, fmt.Errorf("condition %q: expected field<op>value", s)
	}
	return Condition{
		Field: strings.TrimSpace(s[:at]),
		Op:    opAt,
		Value: strings.TrimSpace(s[at+len(opAt):]),
	}, nil
}

// Validate checks that the field exists, the operator applies to it,
// and the value parses for typed fields.
func (c Condition) Validate() error {
	switch {
	case stringFields[c.Field]:
		if c.Op != "=" && c.Op != "!=" {
			return fmt.Errorf("field %q supports = and != only, not %q", c.Field, c.Op)
		}
	case c.Field == "pid":
		if _, err := strconv.ParseInt(c.Value, 10, 32); err != nil {
			return fmt.Errorf("pid value %q is not an integer", c.Value)
		}
	case c.Field == "time":
		if _, err := time.Parse(time.RFC3339, c.Value); err != nil {
			return fmt.Errorf("time value %q is not RFC 3339", c.Value)
		}
	default:
		return fmt.Errorf("unknown field %q", c.Field)
	}
	return nil
}

// Compile validates every condition and returns a predicate matching
// entries that satisfy all of them. With no conditions everything
// matches.
func Compile(conditions []Condition) (Predicate, error) {
	preds := make([]Predicate, 0, len(conditions))
	for _, c := range conditions {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		p, err := c.predicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return func(e codec.Entry) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}, nil
}

// Apply returns the entries matching p, in their original order.
func Apply(entries []codec.Entry, p Predicate) []codec.Entry {
	var out []codec.Entry
	for _, e := range entries {
		if p(e) {
			out = append(out, e)
		}
	}
	return out
}

func (c Condition) predicate() (Predicate, error) {
	switch c.Field {
	case "user", "line", "host", "id":
		get := stringAccessor(c.Field)
		want, negate := c.Value, c.Op == "!="
		return func(e codec.Entry) bool { return (get(e) == want) != negate }, nil
	case "type":
		want, negate := c.Value, c.Op == "!="
		return func(e codec.Entry) bool {
			return strings.EqualFold(e.Type.String(), want) != negate
		}, nil
	case "pid":
		want, err := strconv.ParseInt(c.Value, 10, 32)
		if err != nil {
			return nil, err
		}
		cmp, err := comparator(c.Op)
		if err != nil {
			return nil, err
		}
		return func(e codec.Entry) bool { return cmp(int64(e.Pid), want) }, nil
	case "time":
		want, err := time.Parse(time.RFC3339, c.Value)
		if err != nil {
			return nil, err
		}
		cmp, err := comparator(c.Op)
		if err != nil {
			return nil, err
		}
		return func(e codec.Entry) bool {
			return cmp(e.Time().UnixMicro(), want.UnixMicro())
		}, nil
	}
	return nil, fmt.Errorf("unknown field %q", c.Field)
}

func stringAccessor(field string) func(codec.Entry) string {
	switch field {
	case "user":
		return func(e codec.Entry) string { return e.UserString() }
	case "line":
		return func(e codec.Entry) string { return e.LineString() }
	case "host":
		return func(e codec.Entry) string { return e.HostString() }
	default:
		return func(e codec.Entry) string { return e.IDString() }
	}
}

func comparator(op string) (func(a, b int64) bool, error) {
	switch op {
	case "=":
		return func(a, b int64) bool { return a == b }, nil
	case "!=":
		return func(a, b int64) bool { return a != b }, nil
	case ">":
		return func(a, b int64) bool { return a > b }, nil
	case ">=":
		return func(a, b int64) bool { return a >= b }, nil
	case "<":
		return func(a, b int64) bool { return a < b }, nil
	case "<=":
		return func(a, b int64) bool { return a <= b }, nil
	}
	return nil, fmt.Errorf("invalid operator %q", op)
}
