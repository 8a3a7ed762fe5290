package http

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Compact returns a copy of params without the keys whose value is absent:
// nil, or a nil pointer, slice, map, interface or func. Explicit zero values
// ("" , 0, false) are kept.
func Compact(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}

	out := make(map[string]interface{}, len(params))

	for key, value := range params {
		if isAbsent(value) {
			continue
		}

		out[key] = value
	}

	return out
}

func isAbsent(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// encodeQuery converts compacted params into url.Values.
func encodeQuery(params map[string]interface{}) url.Values {
	values := url.Values{}

	for key, value := range Compact(params) {
		rv := reflect.Indirect(reflect.ValueOf(value))

		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				values.Add(key, formatScalar(rv.Index(i)))
			}

			continue
		}

		values.Set(key, formatScalar(rv))
	}

	return values
}

func formatScalar(rv reflect.Value) string {
	rv = reflect.Indirect(rv)
	if rv.Kind() == reflect.Interface {
		rv = reflect.Indirect(rv.Elem())
	}

	if !rv.IsValid() {
		return ""
	}

	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	default:
		return fmt.Sprint(rv.Interface())
	}
}
