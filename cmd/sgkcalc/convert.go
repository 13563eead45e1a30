package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/ingest"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the per-status CSV exports into a rule table JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sources := make(map[domain.StatusCode]string)
		for _, status := range domain.AllStatuses {
			path, _ := cmd.Flags().GetString(flagForStatus(status))
			if path != "" {
				sources[status] = path
			}
		}
		if len(sources) == 0 {
			log.Fatal("at least one of --4a, --4b, --4c is required")
		}

		table, err := ingest.Convert(sources)
		if err != nil {
			log.Fatal(err)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "-" {
			if err := ingest.WriteJSON(os.Stdout, table); err != nil {
				log.Fatal(err)
			}
			return
		}
		if err := ingest.WriteJSONFile(outputFile, table); err != nil {
			log.Fatal(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Wrote %s\n", outputFile)
		for _, status := range domain.AllStatuses {
			fmt.Fprintf(out, "  %s: %d rows\n", status, len(table[status]))
		}
	},
}

func flagForStatus(status domain.StatusCode) string {
	switch status {
	case domain.Status4A:
		return "4a"
	case domain.Status4B:
		return "4b"
	default:
		return "4c"
	}
}

func init() {
	convertCmd.Flags().String("4a", "", "CSV export of the 4A (SSK) table")
	convertCmd.Flags().String("4b", "", "CSV export of the 4B (Bag-Kur) table")
	convertCmd.Flags().String("4c", "", "CSV export of the 4C (Emekli Sandigi) table")
	convertCmd.Flags().StringP("output", "o", "sgk_rules.json", "Output file, or - for stdout")
}
