// Package argvester harvests command line arguments into a caller-declared
// struct.
//
// An ArgVester is created from a struct type whose fields, in declaration
// order, describe the shape of the expected command line. It then parses raw
// argument vectors into populated values of that struct, and renders a help
// text from the same metadata.
//
// A command line is made of three kinds of arguments:
//
//  1. positional arguments, required, matched in order
//  2. optional arguments, a name prefixed by "-" or "--" followed by a value
//     (a boolean option is a flag and takes no value)
//  3. a variadic argument, grouping all the remaining arguments
//
// Inside the schema struct the fields must be declared in that same order:
// first the positional arguments, then the optional arguments and at the end
// optionally a variadic argument.
//
// The kind of each field is inferred from its type: a plain scalar is
// positional, a pointer to a scalar is optional (a *bool is a flag), and a
// trailing slice or set-like map collects the variadic arguments. Struct tags
// refine the metadata:
//
//	type Options struct {
//		// positional argument
//		ConfigFile string `help:"the configuration file"`
//
//		// optional argument, short or long form, e.g. -b 10.0.0.1,
//		// --bind-address=10.0.0.1 or --bind-address:10.0.0.1
//		BindAddress *string `value:"address" help:"bind address of the service"`
//
//		// restrict the accepted values with enum
//		LogLevel *string `arg:"enum=error|warning" value:"level" help:"logger level"`
//
//		// flag argument, -v or --verbose
//		Verbose *bool `help:"logged data verbose mode"`
//
//		// variadic argument, use a slice or a map[T]struct{}
//		Filenames []string `help:"file names exposed as services"`
//	}
package argvester

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Kind classifies how a schema field is matched on the command line.
type Kind int

const (
	KindPositional Kind = iota
	KindOptional
	KindFlag
	KindVariadic
)

func (k Kind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindOptional:
		return "optional"
	case KindFlag:
		return "flag"
	case KindVariadic:
		return "variadic"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type collectKind int

const (
	collectList collectKind = iota // ordered, keeps duplicates
	collectSet                     // unordered, de-duplicates on insertion
)

type info struct {
	name      string
	abbrev    string
	help      string
	valueHelp string
}

// arg is the immutable descriptor of one schema field.
type arg struct {
	info    info
	kind    Kind
	field   int // index into the schema struct
	conv    converter
	repeat  bool        // slice-backed option, its token may appear several times
	collect collectKind // variadic only
}

// ArgVester parses command line arguments following the meta description
// given by the schema struct R. It is immutable once built and safe to share
// between concurrent Parse calls.
type ArgVester[R any] struct {
	typ        reflect.Type
	positional []*arg
	options    map[string]*arg // "-abbrev" and "--name" map to the same descriptor
	variadic   *arg
}

// New builds an ArgVester from the meta description of the schema struct R.
// It returns a *SchemaError if the field kinds are not declared in
// positional, optional, variadic order, if the type of a field has no known
// conversion, or if a variadic field is not the last one.
func New[R any]() (*ArgVester[R], error) {
	typ := reflect.TypeFor[R]()
	if typ.Kind() != reflect.Struct {
		return nil, &SchemaError{Reason: fmt.Sprintf("schema must be a struct, got %s", typ)}
	}

	v := &ArgVester[R]{
		typ:     typ,
		options: make(map[string]*arg),
	}

	var visible []int
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		visible = append(visible, i)
	}

	const (
		phasePositional = iota
		phaseOptional
	)
	phase := phasePositional

	for j, idx := range visible {
		f := typ.Field(idx)
		last := j == len(visible)-1

		a, err := classify(f, idx)
		if err != nil {
			return nil, err
		}

		switch a.kind {
		case KindVariadic:
			if !last {
				return nil, &SchemaError{Field: f.Name, Reason: "variadic field must be declared last"}
			}
			v.variadic = a

		case KindPositional:
			if phase != phasePositional {
				return nil, &SchemaError{Field: f.Name, Reason: "positional field declared after optional fields"}
			}
			v.positional = append(v.positional, a)

		case KindOptional, KindFlag:
			phase = phaseOptional
			// Abbrev collisions are not checked: the last registration
			// silently wins, like the original meta description scan.
			v.options["-"+a.info.abbrev] = a
			v.options["--"+a.info.name] = a
		}
	}

	return v, nil
}

// classify builds the descriptor for one schema field, inferring its kind
// from the field type unless the tag forces one.
func classify(f reflect.StructField, idx int) (*arg, error) {
	tag, err := parseTag(f.Tag)
	if err != nil {
		return nil, &SchemaError{Field: f.Name, Reason: err.Error()}
	}

	a := &arg{field: idx}
	a.info = deriveInfo(f, tag)

	t := f.Type
	var natural Kind
	var scalar reflect.Type
	switch t.Kind() {
	case reflect.Ptr:
		scalar = t.Elem()
		natural = KindOptional
		if scalar.Kind() == reflect.Bool {
			natural = KindFlag
		}
	case reflect.Slice:
		scalar = t.Elem()
		natural = KindVariadic
		a.collect = collectList
	case reflect.Map:
		scalar = t.Key()
		natural = KindVariadic
		a.collect = collectSet
		switch elem := t.Elem(); {
		case elem.Kind() == reflect.Bool:
		case elem.Kind() == reflect.Struct && elem.NumField() == 0:
		default:
			return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("set-like variadic must be a map[T]struct{} or map[T]bool, got %s", t)}
		}
	default:
		scalar = t
		natural = KindPositional
	}

	a.conv, err = converterFor(scalar, tag.enum)
	if err != nil {
		return nil, &SchemaError{Field: f.Name, Reason: err.Error()}
	}

	a.kind = natural
	if tag.kind != nil {
		forced := *tag.kind
		switch forced {
		case KindPositional:
			if natural != KindPositional {
				return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("kind=positional requires a scalar type, got %s", t)}
			}
		case KindFlag:
			if natural != KindFlag {
				return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("kind=flag requires a *bool, got %s", t)}
			}
		case KindOptional:
			switch t.Kind() {
			case reflect.Ptr:
				// A boolean option never takes a value token, so forcing
				// a *bool to optional still yields a flag.
				forced = natural
			case reflect.Slice:
				a.repeat = true
			default:
				return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("kind=optional requires a pointer or slice type, got %s", t)}
			}
		case KindVariadic:
			if natural != KindVariadic {
				return nil, &SchemaError{Field: f.Name, Reason: fmt.Sprintf("kind=variadic requires a slice or set-like map type, got %s", t)}
			}
		}
		a.kind = forced
	}

	return a, nil
}

func deriveInfo(f reflect.StructField, tag optTag) info {
	name := tag.name
	if name == "" {
		name = kebab(f.Name)
	}
	abbrev := tag.abbrev
	if abbrev == "" {
		abbrev = string([]rune(name)[:1])
	}
	valueHelp := tag.valueHelp
	if valueHelp == "" {
		valueHelp = name
	}
	return info{name: name, abbrev: abbrev, help: tag.help, valueHelp: valueHelp}
}

// kebab converts a Go field identifier to its external argument name,
// e.g. BindAddress or bind_address become bind-address.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
