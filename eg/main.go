package main

import (
	"fmt"
	"os"

	"github.com/forax/argvester"
)

// Options is the meta description of the command line we want to accept,
// e.g. netapp app.conf --bind-address 192.168.0.10 --log-level:warning -v a.txt b.txt
type Options struct {
	// positional argument
	ConfigFile string `help:"the configuration file"`

	// optional argument, short or long form, with ' ', '=' or ':' delimiters
	BindAddress *string `value:"address" help:"bind address of the service"`

	// restrict the accepted values with enum
	LogLevel *string `arg:"enum=error|warning" value:"level" help:"logger level"`

	// flag argument, -v or --verbose
	Verbose *bool `help:"logged data verbose mode"`

	// variadic argument
	Filenames []string `help:"file names exposed as services"`
}

func main() {
	av, err := argvester.New[Options]()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := av.ParseOrExit("netapp", os.Args[1:])

	fmt.Printf("config file: %s\n", opts.ConfigFile)
	if opts.BindAddress != nil {
		fmt.Printf("bind address: %s\n", *opts.BindAddress)
	}
	if opts.LogLevel != nil {
		fmt.Printf("log level: %s\n", *opts.LogLevel)
	}
	fmt.Printf("verbose: %v\n", opts.Verbose != nil && *opts.Verbose)
	fmt.Printf("filenames: %v\n", opts.Filenames)
}
