package argvester

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// converter turns one raw command line token into a typed scalar value.
// Converters are pure and built once at schema build time.
type converter func(s string) (reflect.Value, error)

// converterFor returns the converter for a scalar type. Supported scalars
// are string-kinded types (plain strings, filesystem paths, named string
// types), int and int32, float64 and bool. A non-empty enum restricts a
// string-kinded type to an exact, case-sensitive set of values.
func converterFor(t reflect.Type, enum []string) (converter, error) {
	if len(enum) > 0 {
		if t.Kind() != reflect.String {
			return nil, fmt.Errorf("enum values require a string-kinded type, got %s", t)
		}
		return func(s string) (reflect.Value, error) {
			for _, variant := range enum {
				if s == variant {
					return reflect.ValueOf(s).Convert(t), nil
				}
			}
			return reflect.Value{}, fmt.Errorf("%q is not one of %s", s, strings.Join(enum, "|"))
		}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return func(s string) (reflect.Value, error) {
			return reflect.ValueOf(s).Convert(t), nil
		}, nil

	case reflect.Int, reflect.Int32:
		return func(s string) (reflect.Value, error) {
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(n).Convert(t), nil
		}, nil

	case reflect.Float64:
		return func(s string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(f).Convert(t), nil
		}, nil

	case reflect.Bool:
		// Exactly "true" or "false". A flag given an inline value goes
		// through here too, so --verbose:yes is a conversion error rather
		// than silently false.
		return func(s string) (reflect.Value, error) {
			switch s {
			case "true":
				return reflect.ValueOf(true).Convert(t), nil
			case "false":
				return reflect.ValueOf(false).Convert(t), nil
			}
			return reflect.Value{}, fmt.Errorf(`%q is not "true" or "false"`, s)
		}, nil
	}

	return nil, fmt.Errorf("no known conversion from string to %s", t)
}
