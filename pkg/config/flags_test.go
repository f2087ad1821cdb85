package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyValues(t *testing.T) {
	var (
		rule   string
		series []string
		year   int
	)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&rule, "scoring-rule", "simple", "")
	flags.StringSliceVar(&series, "series", []string{"cup"}, "")
	flags.IntVar(&year, "year", 2023, "")
	require.NoError(t, flags.Parse([]string{"--year", "2022"}))

	v := viper.New()
	v.Set("scoring-rule", "graduated")
	v.Set("series", []string{"xfinity", "truck"})
	v.Set("year", 2021)

	ApplyValues(flags, v)
	assert.Equal(t, "graduated", rule)
	assert.Equal(t, []string{"xfinity", "truck"}, series)
	assert.Equal(t, 2022, year, "command line wins")

	// reloaded config file
	v.Set("scoring-rule", "simple")
	v.Set("series", []string{"cup"})
	ApplyValues(flags, v)
	assert.Equal(t, "simple", rule)
	assert.Equal(t, []string{"cup"}, series)
}
