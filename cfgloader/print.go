package cfgloader

import (
	"log/slog"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

const redactedValue = "******"

func printConfig(config any) {
	out, err := yaml.Marshal(Redacted(config))
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info("[cfgloader]: loaded config\n" + string(out))
}

// Redacted returns config as a yaml-keyed tree that is safe to log.
// Non-empty fields tagged `mask:"true"` are replaced with a fixed placeholder,
// so neither the secret nor its length is revealed.
func Redacted(config any) any {
	return redact(reflect.ValueOf(config))
}

func redact(v reflect.Value) any {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() { //nolint:exhaustive // scalars fall through to their value
	case reflect.Struct:
		return redactStruct(v)
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[yamlKey(iter.Key())] = redact(iter.Value())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = redact(v.Index(i))
		}
		return out
	case reflect.Invalid:
		return nil
	default:
		if !v.CanInterface() {
			return nil
		}
		return v.Interface()
	}
}

func redactStruct(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		fv := v.Field(i)
		if field.Tag.Get("mask") == "true" {
			if fv.IsZero() {
				out[name] = ""
			} else {
				out[name] = redactedValue
			}
			continue
		}
		out[name] = redact(fv)
	}
	return out
}

func yamlKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	out, _ := yaml.Marshal(k.Interface())
	return strings.TrimSpace(string(out))
}
