package module

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ember-ml/ember/internal/tensor"
)

// Derive builds a Def by scanning the exported fields of a struct, in
// declaration order. It is the reflective alternative to Define for
// structures whose field list should not be written out by hand.
//
// Every exported field must satisfy Module[B]; a non-conforming field makes
// derivation fail so that shape errors surface when the structure is built,
// not during training. Fields tagged `module:"-"` are skipped (for
// configuration values and the like); a `module:"name"` tag overrides the
// default state key, which is the field name with its first rune lowered.
// Unexported fields are ignored.
func Derive[B tensor.Backend](name string, v any) (*Def[B], error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("module: cannot derive %s from a nil pointer", name)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("module: cannot derive %s from %s, need a struct", name, rv.Kind())
	}

	rt := rv.Type()
	var fields []Field[B]
	seen := make(map[string]struct{})

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		key := sf.Tag.Get("module")
		if key == "-" {
			continue
		}
		if key == "" {
			key = lowerFirst(sf.Name)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("module: %s declares field key %q twice", name, key)
		}
		seen[key] = struct{}{}

		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			return nil, fmt.Errorf("module: %s field %s is nil", name, sf.Name)
		}
		m, ok := fv.Interface().(Module[B])
		if !ok {
			return nil, fmt.Errorf("module: %s field %s (%s) does not implement Module", name, sf.Name, sf.Type)
		}

		fields = append(fields, Field[B]{Name: key, Module: m})
	}

	return Define(name, fields...), nil
}

// lowerFirst lowers the first rune of a Go field name to form a state key.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
