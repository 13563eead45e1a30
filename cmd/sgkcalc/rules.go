package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/emeklilik/sgkcalc/internal/config"
	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/eligibility"
	"github.com/emeklilik/sgkcalc/internal/output"
)

// statusesFor returns the --status value, or every status in the table.
func statusesFor(cmd *cobra.Command, engine *eligibility.Engine) []domain.StatusCode {
	raw, _ := cmd.Flags().GetString("status")
	if raw == "" {
		return engine.Statuses()
	}
	status, err := domain.ParseStatus(raw)
	if err != nil {
		log.Fatal(err)
	}
	return []domain.StatusCode{status}
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules extracted from a status table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, parser := loadConfig(cmd)
		formatter := formatterFor(cmd)
		engine := loadEngine(cmd, cfg, parser)

		for _, status := range statusesFor(cmd, engine) {
			data, err := formatter.FormatRules(status, engine.Rules(status))
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		}
	},
}

var phrasesCmd = &cobra.Command{
	Use:   "phrases",
	Short: "List the date phrases recognized in a status table",
	Long: "Lists every cell the date range grammar recognized. With --against, compares\n" +
		"the phrases of two rule tables and prints only the differences.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, parser := loadConfig(cmd)
		engine := loadEngine(cmd, cfg, parser)
		statuses := statusesFor(cmd, engine)

		against, _ := cmd.Flags().GetString("against")
		if against != "" {
			printPhraseDiff(cmd, parser, engine, statuses, against)
			return
		}

		formatter := formatterFor(cmd)
		for _, status := range statuses {
			data, err := formatter.FormatPhrases(status, engine.Phrases(status))
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		}
	},
}

func printPhraseDiff(cmd *cobra.Command, parser *config.InputParser, engine *eligibility.Engine, statuses []domain.StatusCode, against string) {
	table, err := parser.LoadRowTable(against)
	if err != nil {
		log.Fatal(err)
	}
	other := eligibility.NewEngine(table)

	out := cmd.OutOrStdout()
	changed := false
	for _, status := range statuses {
		diff := output.PhraseDiff(engine.Phrases(status), other.Phrases(status))
		if diff == "" {
			continue
		}
		changed = true
		fmt.Fprintf(out, "%s:\n%s", status, diff)
	}
	if !changed {
		fmt.Fprintln(out, "No phrase changes.")
	}
}

func init() {
	for _, c := range []*cobra.Command{rulesCmd, phrasesCmd} {
		c.Flags().String("rules", "", "Path to the converted rule table JSON (default: rules_path from config)")
		c.Flags().String("status", "", "Insurance status: 4A, 4B or 4C (default: all)")
		c.Flags().StringP("format", "f", "table", "Output format (table, json, json-compact, csv, yaml)")
	}
	phrasesCmd.Flags().String("against", "", "Second rule table to compare phrases with")
}
