package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/emeklilik/sgkcalc/internal/config"
	"github.com/emeklilik/sgkcalc/internal/eligibility"
	"github.com/emeklilik/sgkcalc/internal/logging"
	"github.com/emeklilik/sgkcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sgkcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

var rootCmd = &cobra.Command{
	Use:   "sgkcalc",
	Short: "SGK retirement eligibility calculator",
	Long: "Extracts retirement rules from the SGK condition tables and checks a person's\n" +
		"full and partial retirement eligibility against them.",
}

// loadConfig reads the --config file (or SGKCALC_CONFIG), falling back to
// defaults when neither is set.
func loadConfig(cmd *cobra.Command) (*config.Config, *config.InputParser) {
	parser := config.NewInputParser()
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" && fileExists("sgkcalc.yaml") {
		configFile = "sgkcalc.yaml"
	}
	cfg, err := parser.LoadOrDefault(parser.ConfigPath(configFile))
	if err != nil {
		log.Fatal(err)
	}
	return cfg, parser
}

// newLogger returns a debug logger with --debug and a logger at the
// configured level otherwise.
func newLogger(cmd *cobra.Command, cfg *config.Config) logging.Logger {
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		return logging.NewStdLogger(os.Stderr, logging.LevelDebug)
	}
	return logging.NewStdLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
}

// loadEngine builds an engine over the --rules table (or the configured one).
func loadEngine(cmd *cobra.Command, cfg *config.Config, parser *config.InputParser) *eligibility.Engine {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" {
		rulesFile = cfg.RulesPath
	}
	table, err := parser.LoadRowTable(rulesFile)
	if err != nil {
		log.Fatal(err)
	}

	engine := eligibility.NewEngine(table)
	engine.SetLogger(newLogger(cmd, cfg))

	referenceYear := cfg.ReferenceYear
	if cmd.Flags().Changed("reference-year") {
		referenceYear, _ = cmd.Flags().GetInt("reference-year")
	}
	engine.SetReferenceYear(referenceYear)
	return engine
}

func formatterFor(cmd *cobra.Command) output.Formatter {
	name, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(name)
	if f == nil {
		log.Fatalf("unknown format %q (available: %v, aliases: %v)", name, output.AvailableFormats(), output.AvailableFormatAliases())
	}
	return f
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the sgkcalc YAML config (default: sgkcalc.yaml if it exists)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(phrasesCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
