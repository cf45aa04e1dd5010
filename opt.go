package argvester

import (
	"fmt"
	"reflect"
	"strings"
)

// optTag holds the per-field metadata read from struct tags.
//
// The arg tag carries comma-separated key=value pairs:
//
//	`arg:"name=bind-address,abbrev=b,kind=optional,enum=error|warning"`
//
// Help and value-help texts live in their own tags so they can contain
// commas:
//
//	`help:"bind address of the service" value:"address"`
type optTag struct {
	name      string
	abbrev    string
	help      string
	valueHelp string
	kind      *Kind
	enum      []string
}

func parseTag(tag reflect.StructTag) (optTag, error) {
	t := optTag{
		help:      tag.Get("help"),
		valueHelp: tag.Get("value"),
	}
	raw := tag.Get("arg")
	if raw == "" {
		return t, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return t, fmt.Errorf("malformed arg tag entry %q, want key=value", part)
		}
		switch key {
		case "name":
			if val == "" {
				return t, fmt.Errorf("arg tag name must not be empty")
			}
			t.name = val
		case "abbrev":
			if len([]rune(val)) != 1 {
				return t, fmt.Errorf("arg tag abbrev %q must be a single character", val)
			}
			t.abbrev = val
		case "kind":
			k, err := parseKind(val)
			if err != nil {
				return t, err
			}
			t.kind = &k
		case "enum":
			t.enum = strings.Split(val, "|")
		default:
			return t, fmt.Errorf("unknown arg tag key %q", key)
		}
	}
	return t, nil
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "positional":
		return KindPositional, nil
	case "optional":
		return KindOptional, nil
	case "flag":
		return KindFlag, nil
	case "variadic":
		return KindVariadic, nil
	}
	return 0, fmt.Errorf("unknown arg kind %q", s)
}
