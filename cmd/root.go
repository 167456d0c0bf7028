/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/parser"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/testpoint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	isTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Color helpers
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	white  = color.New(color.FgWhite, color.Bold).SprintFunc()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ets",
	Short: "Test point resolution for OGC API Features conformance testing",
	Long: `ets resolves the endpoints a conformance test run has to request
from the OpenAPI document of an OGC API Features instance.

It reads the API description, applies the server declarations of the
operations, paths and document, and expands enumerated path parameters into
concrete test points.

Configuration is read from ./config.toml and ETS_* environment variables,
flags take precedence over both.`,
}

func Execute() {
	cobra.OnInitialize(initConfig)
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("ETS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Error reading config file: %v", err)
		}
	}
}

// newLogger builds the diagnostics logger; user facing output goes to stdout
func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newEngine() *testpoint.Engine {
	return testpoint.New(
		testpoint.WithCeiling(viper.GetInt("ceiling")),
		testpoint.WithMethods(methodList(viper.GetStringSlice("methods"))...),
		testpoint.WithLogger(newLogger()),
	)
}

// methodList splits comma separated entries, as ETS_METHODS=get,head arrives
// as a single value
func methodList(values []string) []string {
	var methods []string
	for _, v := range values {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				methods = append(methods, m)
			}
		}
	}
	return methods
}

// instanceRoot returns the validated URL of the instance under test
func instanceRoot() (string, error) {
	iut := viper.GetString("iut")
	if iut == "" {
		return "", fmt.Errorf("instance under test is required (--iut or ETS_IUT)")
	}
	u, err := url.Parse(iut)
	if err != nil {
		return "", fmt.Errorf("invalid instance under test %q: %w", iut, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("instance under test %q must be an absolute URL", iut)
	}
	return iut, nil
}

// loadDocument parses the OpenAPI document, showing a spinner on a terminal
func loadDocument(specFile string) (*parser.Parser, error) {
	if isTTY {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Parsing " + specFile
		s.Start()
		defer s.Stop()
	}
	return parser.ParseFile(specFile)
}

func loadDescription(specFile string) (*models.APIDescription, error) {
	p, err := loadDocument(specFile)
	if err != nil {
		return nil, err
	}
	return p.Description()
}

// fail reports err on stderr and exits
func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", red("Error:"), msg, err)
	os.Exit(1)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./config.toml)")
	pf.String("iut", "", "URL of the instance under test")
	pf.Int("ceiling", testpoint.DefaultCeiling, "Maximum number of item listing test points when no count is given")
	pf.StringSlice("methods", []string{"get"}, "HTTP methods to resolve test points for")
	pf.String("log-level", "warn", "Diagnostics level: debug, info, warn, error")

	for _, name := range []string{"iut", "ceiling", "methods", "log-level"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			log.Fatalf("Error binding flag %s: %v", name, err)
		}
	}
}
