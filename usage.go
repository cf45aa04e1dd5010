package argvester

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amterp/color"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	errorS     = errorColor.SprintfFunc()
)

// ToHelp renders a help message from the meta description. It is a pure
// function of the model: repeated calls produce byte-identical output.
//
// For the Options schema of the package example, ToHelp("netapp") returns
//
//	netapp <config-file> [options] <filenames...>
//	  with:
//	    config-file: the configuration file
//	    filenames: file names exposed as services
//
//	  options:
//	    bind-address: bind address of the service
//	      -b address or --bind-address address
//	    log-level: logger level
//	      -l level or --log-level level
//	    verbose: logged data verbose mode
//	      -v or --verbose
func (v *ArgVester[R]) ToHelp(appName string) string {
	var sb strings.Builder

	parts := make([]string, 0, len(v.positional)+3)
	parts = append(parts, appName)
	for _, pos := range v.positional {
		parts = append(parts, "<"+pos.info.name+">")
	}
	if len(v.options) > 0 {
		parts = append(parts, "[options]")
	}
	if v.variadic != nil {
		parts = append(parts, "<"+v.variadic.info.name+"...>")
	}
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteByte('\n')

	if len(v.positional) > 0 || v.variadic != nil {
		sb.WriteString("  with:\n")
		for _, pos := range v.positional {
			sb.WriteString("    " + pos.info.description() + "\n")
		}
		if v.variadic != nil {
			sb.WriteString("    " + v.variadic.info.description() + "\n")
		}
	}

	if len(v.options) > 0 {
		sb.WriteString("\n  options:\n")
		for _, opt := range v.sortedOptions() {
			sb.WriteString("    " + opt.info.description() + "\n")
			sb.WriteString("      " + strings.Join(optionForms(opt, v.options), " or ") + "\n")
		}
	}

	return sb.String()
}

// PrintHelp writes the help text to the stdout writer. Help explicitly
// requested by the user goes to stdout; ParseOrExit reports errors on
// stderr.
func (v *ArgVester[R]) PrintHelp(appName string) {
	fmt.Fprint(stdoutWriter, v.ToHelp(appName))
}

func (in info) description() string {
	return in.name + ": " + in.help
}

// sortedOptions returns the unique option descriptors sorted by name.
// Both forms of an option collapse to one entry.
func (v *ArgVester[R]) sortedOptions() []*arg {
	seen := make(map[*arg]bool, len(v.options))
	opts := make([]*arg, 0, len(v.options))
	for _, opt := range v.options {
		if !seen[opt] {
			seen[opt] = true
			opts = append(opts, opt)
		}
	}
	sort.Slice(opts, func(i, j int) bool {
		if opts[i].info.name != opts[j].info.name {
			return opts[i].info.name < opts[j].info.name
		}
		return opts[i].info.abbrev < opts[j].info.abbrev
	})
	return opts
}

// optionForms renders the token forms still registered for a descriptor,
// short form first. A silently overridden abbrev leaves only the long form.
func optionForms(opt *arg, options map[string]*arg) []string {
	forms := make([]string, 0, 2)
	for _, tok := range []string{"-" + opt.info.abbrev, "--" + opt.info.name} {
		if options[tok] != opt {
			continue
		}
		if opt.kind == KindFlag {
			forms = append(forms, tok)
		} else {
			forms = append(forms, tok+" "+opt.info.valueHelp)
		}
	}
	return forms
}
