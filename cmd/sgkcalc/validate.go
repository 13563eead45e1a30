package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/emeklilik/sgkcalc/internal/config"
	"github.com/emeklilik/sgkcalc/internal/eligibility"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a configuration file and the rule table it points to",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration file %s is valid\n", inputFile)

		if !fileExists(cfg.RulesPath) {
			fmt.Fprintf(out, "Rule table %s not found; run 'sgkcalc convert' first\n", cfg.RulesPath)
			return
		}
		table, err := parser.LoadRowTable(cfg.RulesPath)
		if err != nil {
			log.Fatal(err)
		}
		engine := eligibility.NewEngine(table)
		for _, status := range engine.Statuses() {
			fmt.Fprintf(out, "  %s: %d rules\n", status, len(engine.Rules(status)))
		}
	},
}
