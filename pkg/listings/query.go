package listings

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// QueryError is returned by adapters for ids or queries they cannot encode.
type QueryError struct {
	Value  any
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("listings: invalid query %v: %s", e.Value, e.Reason)
}

// EncodeQuery turns the opaque query handed to FetchCollection into URL
// parameters. Accepted shapes are nil, url.Values, map[string]string and
// map[string]any; slice values are joined with commas, so
// {"product_ids": []int{1, 2, 3}} becomes product_ids=1,2,3.
func EncodeQuery(query any) (url.Values, error) {
	switch q := query.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return q, nil
	case map[string]string:
		values := make(url.Values, len(q))
		for k, v := range q {
			values.Set(k, v)
		}
		return values, nil
	case map[string]any:
		values := make(url.Values, len(q))
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s, err := formatValue(q[k])
			if err != nil {
				return nil, &QueryError{Value: query, Reason: fmt.Sprintf("parameter %q: %v", k, err)}
			}
			values.Set(k, s)
		}
		return values, nil
	default:
		return nil, &QueryError{Value: query, Reason: fmt.Sprintf("unsupported query type %T", query)}
	}
}

func formatValue(v any) (string, error) {
	if v == nil {
		return "", fmt.Errorf("nil value")
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), nil
	}

	rv := reflect.ValueOf(v)
	if s, ok := formatKey(rv); ok {
		return s, nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), nil
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			s, err := formatValue(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// formatKey formats the kinds usable both as ids and as query values: strings
// and integers, named types included.
func formatKey(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	default:
		return "", false
	}
}
