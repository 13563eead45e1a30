package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/emeklilik/sgkcalc/internal/config"
	"github.com/emeklilik/sgkcalc/internal/conversation"
	"github.com/emeklilik/sgkcalc/internal/eligibility"
	"github.com/emeklilik/sgkcalc/internal/message"
	"github.com/emeklilik/sgkcalc/internal/session"
	"github.com/emeklilik/sgkcalc/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "sgkcalc-tui",
	Short: "Interactive SGK retirement eligibility form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := parser.LoadOrDefault(parser.ConfigPath(configFile))
		if err != nil {
			return err
		}

		rulesFile, _ := cmd.Flags().GetString("rules")
		if rulesFile == "" {
			rulesFile = cfg.RulesPath
		}
		if _, err := os.Stat(rulesFile); os.IsNotExist(err) {
			return fmt.Errorf("rule table not found: %s", rulesFile)
		}
		table, err := parser.LoadRowTable(rulesFile)
		if err != nil {
			return err
		}

		engine := eligibility.NewEngine(table)
		referenceYear := cfg.ReferenceYear
		if cmd.Flags().Changed("reference-year") {
			referenceYear, _ = cmd.Flags().GetInt("reference-year")
		}
		engine.SetReferenceYear(referenceYear)

		catalog, err := message.NewCatalog()
		if err != nil {
			return err
		}
		language, _ := cmd.Flags().GetString("lang")
		if language == "" {
			language = cfg.Language
		}

		flow := conversation.NewFlow(session.NewMemoryStore(), engine, catalog, cfg.MaxContributionDays)
		model := tui.NewModel(flow, catalog, language)

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().String("config", "", "Path to the sgkcalc YAML config")
	rootCmd.Flags().String("rules", "", "Path to the converted rule table JSON (default: rules_path from config)")
	rootCmd.Flags().Int("reference-year", 0, "Year ages are computed for (default: config or current year)")
	rootCmd.Flags().String("lang", "", "Interface language: tr or en (default: language from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
