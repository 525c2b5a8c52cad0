// Package flagx lets several independent flag sets share os.Args: each caller
// filters the arguments down to the flags it owns before parsing them.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in valueFlags and boolFlags.
//
// Value flags are accepted as "-f value" or "-f=value"; bool flags as "-f" or
// "-f=true". A bool flag never consumes the following argument.
func FilterArgs(args []string, valueFlags []string, boolFlags []string) []string {
	known := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		known[f] = true
	}
	for _, f := range boolFlags {
		known[f] = false
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, found := known[name]; found {
				out = append(out, arg)
			}
			continue
		}

		takesValue, found := known[arg]
		if !found {
			continue
		}
		out = append(out, arg)
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFile returns the value of -c / -config from os.Args, or "".
func ConfigFile() string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"}, nil))

	return path
}
