package mcpserver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// RequiredParam returns the argument p of type T. It fails when the argument
// is absent, has another type, or holds the zero value.
func RequiredParam[T comparable](r mcp.CallToolRequest, p string) (T, error) {
	var zero T

	v, ok := r.GetArguments()[p]
	if !ok || v == nil {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, v)
	}

	if t == zero {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}
	return t, nil
}

// OptionalParam returns the argument p of type T, or the zero value when the
// argument is absent.
func OptionalParam[T any](r mcp.CallToolRequest, p string) (T, error) {
	var zero T

	v, ok := r.GetArguments()[p]
	if !ok || v == nil {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, v)
	}
	return t, nil
}

// OptionalStringPtr returns nil when the string argument p is absent or empty,
// so the value never reaches the query string. Whitespace is sent as given.
func OptionalStringPtr(r mcp.CallToolRequest, p string) (*string, error) {
	s, err := OptionalParam[string](r, p)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

// RequiredInt returns the numeric argument p as an int.
func RequiredInt(r mcp.CallToolRequest, p string) (int, error) {
	v, ok := r.GetArguments()[p]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required parameter: %s", p)
	}
	return toInt(p, v)
}

// OptionalIntParamWithDefault returns the numeric argument p as an int, or d
// when it is absent.
func OptionalIntParamWithDefault(r mcp.CallToolRequest, p string, d int) (int, error) {
	v, ok := r.GetArguments()[p]
	if !ok || v == nil {
		return d, nil
	}
	return toInt(p, v)
}

// toInt coerces JSON numbers (float64) and numeric strings to int.
func toInt(p string, v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, fmt.Errorf("parameter %s must be an integer, got %v", p, n)
		}
		// float64(math.MaxInt) rounds up to 2^63, which does not fit
		if n >= math.MaxInt || n < math.MinInt {
			return 0, fmt.Errorf("parameter %s is out of range", p)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("parameter %s must be an integer, got %q", p, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("parameter %s is not a number, is %T", p, v)
	}
}

// ToBoolPtr returns a pointer to b
func ToBoolPtr(b bool) *bool {
	return &b
}
