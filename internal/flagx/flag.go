// Package flagx lets several loaders share os.Args: each one picks out only
// the flags it owns and parses them with its own FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the given flags.
//
// valued flags consume the following token as their value unless it starts
// with "-"; switches never consume a value. Both "-f value" and "-f=value"
// forms are recognised. Order is preserved.
func FilterArgs(args []string, valued []string, switches ...string) []string {
	takesValue := make(map[string]bool, len(valued)+len(switches))
	for _, f := range valued {
		takesValue[f] = true
	}
	for _, f := range switches {
		takesValue[f] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := takesValue[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		v, ok := takesValue[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if v && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag returns the path given with -c or -config, or "" when
// neither is present. Other arguments are ignored.
func ConfigFileFlag() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
