package testgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/calltape/calltape/internal/record"
)

// valueLiteral renders a stored value as Go source constructing the same
// record.Value. Every Value type has a faithful literal form; an unknown
// type aborts rendering, and generation with it.
func valueLiteral(v record.Value) (string, error) {
	switch val := v.(type) {
	case record.Null:
		return "record.Null{}", nil
	case record.String:
		return fmt.Sprintf("record.String(%s)", strconv.Quote(string(val))), nil
	case record.Int:
		return fmt.Sprintf("record.Int(%d)", int64(val)), nil
	case record.Float:
		return fmt.Sprintf("record.Float(%s)", strconv.FormatFloat(float64(val), 'g', -1, 64)), nil
	case record.Bool:
		return fmt.Sprintf("record.Bool(%t)", bool(val)), nil
	case record.Array:
		elems := make([]string, len(val))
		for i, elem := range val {
			lit, err := valueLiteral(elem)
			if err != nil {
				return "", fmt.Errorf("array[%d]: %w", i, err)
			}
			elems[i] = lit
		}
		return "record.Array{" + strings.Join(elems, ", ") + "}", nil
	case record.Object:
		keys := sortedKeys(val)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			lit, err := valueLiteral(val[k])
			if err != nil {
				return "", fmt.Errorf("object[%q]: %w", k, err)
			}
			pairs[i] = strconv.Quote(k) + ": " + lit
		}
		return "record.Object{" + strings.Join(pairs, ", ") + "}", nil
	default:
		return "", fmt.Errorf("no literal form for %T", v)
	}
}

// argsLiteral renders positional args and kwargs as an intercept.Args
// composite literal.
func argsLiteral(args []record.Value, kwargs record.Object) (string, error) {
	var parts []string

	if len(args) > 0 {
		elems := make([]string, len(args))
		for i, arg := range args {
			lit, err := valueLiteral(arg)
			if err != nil {
				return "", fmt.Errorf("positional arg %d: %w", i, err)
			}
			elems[i] = lit
		}
		parts = append(parts, "Positional: []record.Value{"+strings.Join(elems, ", ")+"}")
	}

	if len(kwargs) > 0 {
		lit, err := valueLiteral(kwargs)
		if err != nil {
			return "", fmt.Errorf("keyword args: %w", err)
		}
		parts = append(parts, "Keyword: "+lit)
	}

	return "intercept.Args{" + strings.Join(parts, ", ") + "}", nil
}

// invocation builds the human-readable call expression embedded in the
// generated test: each positional argument, then each keyword argument as
// name: value, in sorted key order, comma-joined.
func invocation(functionName string, args []record.Value, kwargs record.Object) (string, error) {
	var rendered []string

	for i, arg := range args {
		data, err := record.MarshalCanonical(arg)
		if err != nil {
			return "", fmt.Errorf("positional arg %d: %w", i, err)
		}
		rendered = append(rendered, string(data))
	}

	for _, k := range sortedKeys(kwargs) {
		data, err := record.MarshalCanonical(kwargs[k])
		if err != nil {
			return "", fmt.Errorf("keyword arg %q: %w", k, err)
		}
		rendered = append(rendered, k+": "+string(data))
	}

	return functionName + "(" + strings.Join(rendered, ", ") + ")", nil
}

func sortedKeys(obj record.Object) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
