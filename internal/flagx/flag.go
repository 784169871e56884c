// Package flagx holds small helpers for sharing os.Args between several
// independent flag sets (config file lookup, dotenv lookup, runtime flags).
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed, together with their
// values. Both "-f value" and "-f=value" forms are understood. A token that
// starts with '-' is never consumed as a value.
//
// The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := known[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// Files describes the configuration files named on the command line.
type Files struct {
	// JSON is the value of -c / -config.
	JSON string
	// Env is the value of -e / -env (a dotenv file).
	Env string
}

// ConfigFiles extracts -c/-config and -e/-env from os.Args, ignoring every
// other argument. The last occurrence of a flag wins.
func ConfigFiles() Files {
	var f Files

	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "-e", "-env"})

	fs := flag.NewFlagSet("files", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.JSON, "config", "", "path to JSON config file")
	fs.StringVar(&f.JSON, "c", "", "path to JSON config file (short)")
	fs.StringVar(&f.Env, "env", "", "path to dotenv file")
	fs.StringVar(&f.Env, "e", "", "path to dotenv file (short)")
	_ = fs.Parse(args)

	return f
}
