/*
	Copyright 2023 Markus Papenbrock
*/

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	serverCmd "github.com/mpapenbr/nascar-mfg-standings/pkg/cmd/server"
	standingsCmd "github.com/mpapenbr/nascar-mfg-standings/pkg/cmd/standings"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/config"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/provider"
	"github.com/mpapenbr/nascar-mfg-standings/version"
)

const envPrefix = "NMS"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "nms",
	Short:   "Manufacturer standings for the NASCAR national series",
	Long:    ``,
	Version: version.FullVersion,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

//nolint:funlen // by design
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.nms.yml)")

	rootCmd.PersistentFlags().StringVar(&config.BaseURL, "base-url",
		provider.DefaultBaseURL,
		"Base URL of the statistics feed")
	rootCmd.PersistentFlags().IntVar(&config.Year, "year",
		time.Now().Year(),
		"Season to process")
	rootCmd.PersistentFlags().StringSliceVar(&config.Series, "series",
		[]string{"cup", "xfinity", "truck"},
		"Series to process (cup, xfinity, truck)")
	rootCmd.PersistentFlags().StringVar(&config.ScoringRule, "scoring-rule",
		"simple",
		"Manufacturer points per race (simple: 41-pos, graduated: 40 for a win, else 36-pos)")
	rootCmd.PersistentFlags().StringVar(&config.TiePolicy, "tie-policy",
		"lowest-driver-id",
		"Handling of tied best entries of a manufacturer (lowest-driver-id, keep-all)")
	rootCmd.PersistentFlags().StringVar(&config.SeriesFilter, "series-filter",
		"all",
		"Series scope of the displayed standings (all, cup, xfinity, truck)")
	rootCmd.PersistentFlags().StringVar(&config.RequestTimeout, "request-timeout",
		"20s",
		"Timeout for a single request to the feed")
	rootCmd.PersistentFlags().IntVar(&config.Retries, "retries",
		2,
		"Number of retries for a failed request (client errors are not retried)")
	rootCmd.PersistentFlags().StringVar(&config.TimeZone, "time-zone",
		"",
		"Zone of the race dates delivered by the feed (default: local zone)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter, "log-filter",
		"",
		"zapfilter rules, for example \"debug+:provider warn+:*\"")
	rootCmd.PersistentFlags().BoolVar(&config.EnableTelemetry, "enable-telemetry",
		false,
		"enables telemetry")
	rootCmd.PersistentFlags().StringVar(&config.TelemetryEndpoint, "telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data (stdout writes to stdout)")

	// add commands here
	rootCmd.AddCommand(standingsCmd.NewStandingsCmd())
	rootCmd.AddCommand(serverCmd.NewServerCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "prints the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.FullVersion)
		},
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".nms" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".nms")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to NMS_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
	})
	// Apply the viper config value to the flag when the flag is not set and viper
	// has a value
	config.ApplyValues(cmd.Flags(), v)
}
