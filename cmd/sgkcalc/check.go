package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/emeklilik/sgkcalc/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check full and partial retirement eligibility for one person",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, parser := loadConfig(cmd)

		status, _ := cmd.Flags().GetString("status")
		gender, _ := cmd.Flags().GetString("gender")
		birth, _ := cmd.Flags().GetString("birth")
		entry, _ := cmd.Flags().GetString("entry")
		days, _ := cmd.Flags().GetInt("days")

		profile, err := config.ParseProfile(status, gender, birth, entry, days)
		if err != nil {
			log.Fatal(err)
		}
		if err := config.ValidateProfile(profile, cfg.MaxContributionDays); err != nil {
			log.Fatal(err)
		}

		formatter := formatterFor(cmd)
		engine := loadEngine(cmd, cfg, parser)
		report, err := engine.Check(profile)
		if err != nil {
			log.Fatal(err)
		}

		data, err := formatter.FormatReport(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

func init() {
	checkCmd.Flags().String("rules", "", "Path to the converted rule table JSON (default: rules_path from config)")
	checkCmd.Flags().String("status", "", "Insurance status: 4A, 4B or 4C (required)")
	checkCmd.Flags().String("gender", "", "Gender: kadin/female or erkek/male (required)")
	checkCmd.Flags().String("birth", "", "Birth date, day.month.year (required)")
	checkCmd.Flags().String("entry", "", "First insurance entry date, day.month.year (required)")
	checkCmd.Flags().Int("days", 0, "Total contribution days")
	checkCmd.Flags().Int("reference-year", 0, "Year ages are computed for (default: config or current year)")
	checkCmd.Flags().StringP("format", "f", "console", "Output format (console, json, json-compact, csv, yaml)")
	for _, name := range []string{"status", "gender", "birth", "entry"} {
		_ = checkCmd.MarkFlagRequired(name)
	}
}
