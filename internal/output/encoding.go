package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// DeterministicEncode marshals v to JSON with sorted keys, six-decimal
// floats and empty fields omitted. Relies on json.Marshal sorting map
// keys after values were normalized into maps.
func DeterministicEncode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalizeValue(v)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DeterministicEncodeIndented is DeterministicEncode with indentation,
// used for human-facing JSON.
func DeterministicEncodeIndented(v interface{}, indent string) ([]byte, error) {
	return json.MarshalIndent(normalizeValue(v), "", indent)
}

// normalizeValue recursively rewrites v into maps, slices and rounded
// scalars so the encoder's output is fully determined by the data.
func normalizeValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Map:
		return normalizeMap(val)
	case reflect.Slice, reflect.Array:
		return normalizeSlice(val)
	case reflect.Struct:
		return normalizeStruct(val)
	case reflect.Float32, reflect.Float64:
		return RoundFloat(val.Float())
	case reflect.Interface:
		if val.IsNil() {
			return nil
		}
		return normalizeValue(val.Interface())
	default:
		return v
	}
}

func normalizeMap(val reflect.Value) interface{} {
	if val.IsNil() || val.Len() == 0 {
		return nil
	}
	result := make(map[string]interface{}, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		if value := normalizeValue(iter.Value().Interface()); value != nil {
			result[iter.Key().String()] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normalizeSlice(val reflect.Value) interface{} {
	if val.Kind() == reflect.Slice && val.IsNil() {
		return nil
	}
	if val.Len() == 0 {
		return nil
	}
	result := make([]interface{}, val.Len())
	for i := range result {
		result[i] = normalizeValue(val.Index(i).Interface())
	}
	return result
}

func normalizeStruct(val reflect.Value) interface{} {
	result := make(map[string]interface{})
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty := parseJSONTag(field.Tag.Get("json"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		normalized := normalizeValue(val.Field(i).Interface())
		if normalized == nil {
			continue
		}
		if omitEmpty && isZeroValue(normalized) {
			continue
		}
		result[name] = normalized
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

func isZeroValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case string:
		return val == ""
	default:
		return false
	}
}
