package argvester

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/amterp/color"
)

// Parse scans the raw argument vector left to right and returns the
// populated schema value.
//
// A token starting with "-" is an option token. It may carry its value
// inline after a ':' or '=' delimiter (compact form); otherwise the next
// token is consumed as the value, except for flags which take none.
// Any other token fills the next positional slot, or is appended to the
// variadic accumulator once all positionals are filled.
//
// Positional and optional arguments may be freely interleaved: only the
// encounter order of non-option tokens matters for positional matching.
//
// Any failure aborts the whole parse and returns one of the typed errors of
// this package, each unwrapping to ErrParse. Every call allocates its own
// scan state, so an ArgVester may serve concurrent Parse calls.
func (v *ArgVester[R]) Parse(args []string) (R, error) {
	var zero R
	out := reflect.New(v.typ).Elem()

	var variadic []reflect.Value
	seen := make(map[string]bool)
	positionalIdx := 0

	for i := 0; i < len(args); i++ {
		tok := args[i]

		if strings.HasPrefix(tok, "-") {
			key, inline, compact := splitCompact(tok)
			opt := v.options[key]
			if opt == nil {
				return zero, &UnknownOptionError{Token: tok}
			}
			var raw string
			switch {
			case compact:
				raw = inline
			case opt.kind == KindFlag:
				raw = "true"
			default:
				i++
				if i == len(args) {
					return zero, &MissingValueError{Token: tok}
				}
				raw = args[i]
			}
			if seen[opt.info.name] && !opt.repeat {
				return zero, &DuplicateOptionError{Token: tok, Field: opt.info.name}
			}
			seen[opt.info.name] = true

			val, err := opt.conv(raw)
			if err != nil {
				return zero, &ConversionError{Field: opt.info.name, Value: raw, Err: err}
			}
			field := out.Field(opt.field)
			if opt.repeat {
				field.Set(reflect.Append(field, val))
			} else {
				p := reflect.New(field.Type().Elem())
				p.Elem().Set(val)
				field.Set(p)
			}
			continue
		}

		if positionalIdx < len(v.positional) {
			pos := v.positional[positionalIdx]
			val, err := pos.conv(tok)
			if err != nil {
				return zero, &ConversionError{Field: pos.info.name, Value: tok, Err: err}
			}
			out.Field(pos.field).Set(val)
			positionalIdx++
			continue
		}

		if v.variadic != nil {
			val, err := v.variadic.conv(tok)
			if err != nil {
				return zero, &ConversionError{Field: v.variadic.info.name, Value: tok, Err: err}
			}
			variadic = append(variadic, val)
			continue
		}

		return zero, &UnexpectedArgumentError{Token: tok}
	}

	if positionalIdx < len(v.positional) {
		missing := make([]string, 0, len(v.positional)-positionalIdx)
		for _, pos := range v.positional[positionalIdx:] {
			missing = append(missing, pos.info.name)
		}
		return zero, &MissingRequiredArgumentError{Missing: missing}
	}

	if v.variadic != nil {
		field := out.Field(v.variadic.field)
		field.Set(collect(v.variadic, field.Type(), variadic))
	}

	return out.Interface().(R), nil
}

// splitCompact splits an option token carrying an inline value, delimited
// by ':' or '='. The first occurrence of either delimiter wins.
func splitCompact(tok string) (key, value string, ok bool) {
	if i := strings.IndexAny(tok, ":="); i >= 0 {
		return tok[:i], tok[i+1:], true
	}
	return tok, "", false
}

// collect finalizes the variadic accumulator per the declared collection
// semantics. The slot is always populated, empty but non-nil when no
// trailing tokens arrived.
func collect(a *arg, t reflect.Type, vals []reflect.Value) reflect.Value {
	if a.collect == collectSet {
		m := reflect.MakeMapWithSize(t, len(vals))
		for _, val := range vals {
			m.SetMapIndex(val, setElem(t.Elem()))
		}
		return m
	}
	return reflect.Append(reflect.MakeSlice(t, 0, len(vals)), vals...)
}

func setElem(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Bool {
		return reflect.ValueOf(true).Convert(t)
	}
	return reflect.Zero(t)
}

// ParseOrExit parses args and returns the populated schema value. On any
// parse error it prints the error and the help text to the stderr writer
// and exits with code 1 through the configured exit function.
func (v *ArgVester[R]) ParseOrExit(appName string, args []string) R {
	res, err := v.Parse(args)
	if err != nil {
		initColorFromEnv()
		fmt.Fprintln(stderrWriter, errorS("%s", err))
		fmt.Fprintln(stderrWriter)
		fmt.Fprint(stderrWriter, v.ToHelp(appName))
		osExit(1)
	}
	return res
}

func initColorFromEnv() {
	colorValue := strings.ToLower(strings.TrimSpace(os.Getenv("ARGVESTER_COLOR")))
	switch colorValue {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	case "", "auto":
		// let amterp/color decide based on tty
	default:
		// invalid value - treat as auto
	}
}
