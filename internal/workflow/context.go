// Package workflow adapts the party operations to the workflow engine's
// request and output contexts and resolves operations by name.
package workflow

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Input is the read-only request context of one invocation. Values arrive
// from JSON, so numbers may be float64 or json.Number and flags may be strings.
type Input map[string]any

// String returns the value for key as a string. Absent and null values are empty.
func (in Input) String(key string) string {
	switch v := in[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// maxExactFloatInt is the largest magnitude at which every integer is exactly
// representable as a float64.
const maxExactFloatInt = 1 << 53

// Int returns the value for key as an int and whether it was present and
// integral. Fractional, infinite and out-of-range numbers are not integral.
func (in Input) Int(key string) (int, bool) {
	switch v := in[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxExactFloatInt {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

// Bool returns the value for key as a bool and whether it was present and boolean.
func (in Input) Bool(key string) (bool, bool) {
	switch v := in[key].(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	default:
		return false, false
	}
}

// BoolOr returns the value for key, or def when absent or not boolean.
func (in Input) BoolOr(key string, def bool) bool {
	if b, ok := in.Bool(key); ok {
		return b
	}
	return def
}

// Output is the fresh output context of one invocation.
type Output map[string]any

// MessageLog collects user-facing errors and informational messages in order.
// It is owned by a single invocation.
type MessageLog struct {
	Errors   []string `json:"errors"`
	Messages []string `json:"messages"`
}

// NewMessageLog returns an empty log whose lists encode as [] rather than null.
func NewMessageLog() *MessageLog {
	return &MessageLog{Errors: []string{}, Messages: []string{}}
}

func (l *MessageLog) AddError(message string) {
	l.Errors = append(l.Errors, message)
}

func (l *MessageLog) AddMessage(message string) {
	l.Messages = append(l.Messages, message)
}
