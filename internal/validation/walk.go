package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/sumire/notifyschema/internal/domain"
	"github.com/sumire/notifyschema/internal/schema"
)

const expectedColor = "AndroidColor or hex color #RRGGBB / #AARRGGBB"

// walker performs the per-field checks over a raw instance. It returns a
// cleaned copy holding only values that passed, with defaults filled in,
// so cross-field rules can still run on the remainder.
type walker struct {
	registry      *schema.Registry
	rules         *validator.Validate
	ignoreUnknown bool

	fieldErrs domain.ValidationErrors
	shapeErrs domain.ValidationErrors
}

func (w *walker) violations() domain.ValidationErrors {
	out := make(domain.ValidationErrors, 0, len(w.fieldErrs)+len(w.shapeErrs))
	out = append(out, w.fieldErrs...)
	return append(out, w.shapeErrs...)
}

func (w *walker) fail(code domain.ErrorCode, path, expected string, actual any, msg string) {
	w.fieldErrs = append(w.fieldErrs, &domain.ValidationError{
		Code:     code,
		Field:    path,
		Expected: expected,
		Actual:   describe(actual),
		Message:  msg,
	})
}

func (w *walker) mismatch(path, expected string, actual any) {
	w.fail(domain.CodeTypeMismatch, path, expected, actual,
		fmt.Sprintf("expected %s, got %s", expected, typeName(actual)))
}

func (w *walker) constraint(path, rule, expected string, actual any) {
	w.shapeErrs = append(w.shapeErrs, &domain.ValidationError{
		Code:     domain.CodeConstraintViolation,
		Field:    path,
		Rule:     rule,
		Expected: expected,
		Actual:   describe(actual),
		Message:  fmt.Sprintf("violates %s: expected %s", rule, expected),
	})
}

func (w *walker) object(path string, table *schema.FieldTable, raw map[string]any) (map[string]any, bool) {
	if table.IsUnion() {
		return w.union(path, table, raw)
	}

	if !w.ignoreUnknown {
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, ok := table.Lookup(k); !ok {
				w.fail(domain.CodeUnknownField, join(path, k), "", nil,
					fmt.Sprintf("field is not part of %s", table.Kind()))
			}
		}
	}

	clean := make(map[string]any, len(raw))
	for _, f := range table.Fields() {
		val, present := raw[f.Name]
		if !present || val == nil {
			switch {
			case f.Required:
				w.fail(domain.CodeMissingField, join(path, f.Name), f.Type.String(), nil, "required field is missing")
			case f.Default != nil:
				clean[f.Name] = f.Default
			}
			continue
		}
		if v, ok := w.value(join(path, f.Name), f, val); ok {
			clean[f.Name] = v
		}
	}
	return clean, true
}

func (w *walker) union(path string, table *schema.FieldTable, raw map[string]any) (map[string]any, bool) {
	disc := table.Discriminator()
	expected := disc
	if f, ok := table.Lookup(disc); ok && f.Enum != nil {
		expected = f.Enum.Expected()
	}

	tag, present := raw[disc]
	if !present || tag == nil {
		w.fail(domain.CodeUnknownStyleVariant, join(path, disc), expected, nil, "variant discriminant is missing")
		return nil, false
	}
	n, ok := asInteger(tag)
	var variant schema.Kind
	if ok {
		variant, ok = table.Variant(n)
	}
	if !ok {
		w.fail(domain.CodeUnknownStyleVariant, join(path, disc), expected, tag, "unknown variant")
		return nil, false
	}

	vt, err := w.registry.Describe(variant)
	if err != nil {
		w.fail(domain.CodeUnknownStyleVariant, join(path, disc), expected, tag, err.Error())
		return nil, false
	}
	return w.object(path, vt, raw)
}

func (w *walker) value(path string, f schema.Field, val any) (any, bool) {
	switch f.Type {
	case schema.TypeString:
		s, ok := val.(string)
		if !ok {
			w.mismatch(path, "string", val)
		}
		return s, ok

	case schema.TypeBool:
		b, ok := val.(bool)
		if !ok {
			w.mismatch(path, "boolean", val)
		}
		return b, ok

	case schema.TypeInteger:
		n, ok := asInteger(val)
		if !ok {
			w.mismatch(path, "integer", val)
		}
		return n, ok

	case schema.TypeEnum:
		return w.enumValue(path, f.Enum, val)

	case schema.TypeColor:
		return w.color(path, val)

	case schema.TypeSmallIcon:
		return w.smallIcon(path, val)

	case schema.TypeLights:
		return w.lights(path, val)

	case schema.TypeObject:
		table, ok := w.nested(path, f)
		if !ok {
			return nil, false
		}
		m, ok := asObject(val)
		if !ok {
			w.mismatch(path, "object", val)
			return nil, false
		}
		return w.object(path, table, m)

	case schema.TypeObjectList:
		table, ok := w.nested(path, f)
		if !ok {
			return nil, false
		}
		items, ok := asList(val)
		if !ok {
			w.mismatch(path, "array of objects", val)
			return nil, false
		}
		out := make([]any, 0, len(items))
		for i, item := range items {
			m, ok := asObject(item)
			if !ok {
				w.mismatch(index(path, i), "object", item)
				continue
			}
			if cm, ok := w.object(index(path, i), table, m); ok {
				out = append(out, cm)
			}
		}
		return out, true

	case schema.TypeIntegerList:
		items, ok := asList(val)
		if !ok {
			w.mismatch(path, "array of integers", val)
			return nil, false
		}
		out := make([]any, len(items))
		valid := true
		for i, item := range items {
			n, ok := asInteger(item)
			if !ok {
				w.mismatch(index(path, i), "integer", item)
				valid = false
			}
			out[i] = n
		}
		return out, valid

	case schema.TypeStringList:
		items, ok := asList(val)
		if !ok {
			w.mismatch(path, "array of strings", val)
			return nil, false
		}
		out := make([]any, len(items))
		valid := true
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				w.mismatch(index(path, i), "string", item)
				valid = false
			}
			out[i] = s
		}
		return out, valid

	case schema.TypeAny:
		return plain(val), true
	}

	w.mismatch(path, f.Type.String(), val)
	return nil, false
}

func (w *walker) nested(path string, f schema.Field) (*schema.FieldTable, bool) {
	table, err := w.registry.Describe(f.Kind)
	if err != nil {
		w.fail(domain.CodeTypeMismatch, path, string(f.Kind), nil, err.Error())
		return nil, false
	}
	return table, true
}

// enumValue rejects every non-member, whatever its runtime type, as an invalid enum value.
func (w *walker) enumValue(path string, e *schema.Enum, val any) (any, bool) {
	if e.IsString() {
		if s, ok := val.(string); ok && e.Contains(s) {
			return s, true
		}
	} else if n, ok := asInteger(val); ok && e.Contains(n) {
		return n, true
	}
	w.fail(domain.CodeInvalidEnumValue, path, e.Expected(), val,
		fmt.Sprintf("value is not a member of %s", e.Name))
	return nil, false
}

func (w *walker) color(path string, val any) (any, bool) {
	s, ok := val.(string)
	if !ok {
		w.mismatch(path, "string", val)
		return nil, false
	}
	if schema.EnumColor.Contains(s) || w.rules.Var(s, "android_color") == nil {
		return s, true
	}
	w.fail(domain.CodeInvalidEnumValue, path, expectedColor, s, "value is neither a named color nor a hex color")
	return nil, false
}

func (w *walker) smallIcon(path string, val any) (any, bool) {
	if s, ok := val.(string); ok {
		return s, true
	}
	items, ok := asList(val)
	if !ok {
		w.mismatch(path, "string or [string, integer]", val)
		return nil, false
	}
	if len(items) != 2 {
		w.constraint(path, RuleSmallIconArity, "[name, level]", fmt.Sprintf("%d elements", len(items)))
		return nil, false
	}

	name, nameOK := items[0].(string)
	if !nameOK {
		w.mismatch(index(path, 0), "string", items[0])
	}
	level, levelOK := asInteger(items[1])
	if !levelOK {
		w.mismatch(index(path, 1), "integer", items[1])
	}
	if !nameOK || !levelOK {
		return nil, false
	}
	return []any{name, level}, true
}

func (w *walker) lights(path string, val any) (any, bool) {
	items, ok := asList(val)
	if !ok {
		w.mismatch(path, "[color, onMs, offMs]", val)
		return nil, false
	}
	if len(items) != 3 {
		w.constraint(path, RuleLightsArity, "[color, onMs, offMs]", fmt.Sprintf("%d elements", len(items)))
		return nil, false
	}

	color, colorOK := w.color(index(path, 0), items[0])
	on, onOK := asInteger(items[1])
	if !onOK {
		w.mismatch(index(path, 1), "integer", items[1])
	}
	off, offOK := asInteger(items[2])
	if !offOK {
		w.mismatch(index(path, 2), "integer", items[2])
	}
	if !colorOK || !onOK || !offOK {
		return nil, false
	}
	return []any{color, on, off}, true
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// asInteger accepts any integral number, including whole floats from JSON.
func asInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

func uintToInt(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func asList(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

// plain rewrites YAML-style map[any]any values, at any depth, into
// map[string]any so passthrough fields stay JSON-encodable. Non-string keys
// are formatted with fmt.Sprint.
func plain(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = plain(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	}
	return v
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any, map[any]any:
		return "object"
	}
	if _, ok := asInteger(v); ok {
		return "integer"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

func describe(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}
