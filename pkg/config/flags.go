package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ApplyValues sets the values known to viper (config file, environment) for all flags
// not given on the command line. The flags are not marked as changed, so a later call
// picks up new values of a reloaded config file.
func ApplyValues(flags *pflag.FlagSet, v *viper.Viper) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		var err error
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = sv.Replace(v.GetStringSlice(f.Name))
		} else {
			err = f.Value.Set(fmt.Sprintf("%v", v.Get(f.Name)))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not set flag value for %s: %v\n", f.Name, err)
		}
	})
}
