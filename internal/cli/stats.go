package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/viant/semsearch/store"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the corpus composition",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

type corpusStats struct {
	Documents  int                   `json:"documents"`
	Dimension  int                   `json:"dimension"`
	Categories []store.CategoryCount `json:"categories"`
	Years      []store.YearCount     `json:"years"`
}

func runStats(cmd *cobra.Command, args []string) error {
	snap, err := openSnapshot(cmd)
	if err != nil {
		return err
	}
	stats := corpusStats{
		Documents:  snap.Len(),
		Dimension:  snap.Dim(),
		Categories: snap.CategoryCounts(),
		Years:      snap.YearCounts(),
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%d documents, %d dimensions\n", stats.Documents, stats.Dimension)
	if len(stats.Categories) > 0 {
		cmd.Println("\nCategories:")
		for _, c := range stats.Categories {
			cmd.Printf("  %-16s %d\n", c.Name, c.Count)
		}
	}
	if len(stats.Years) > 0 {
		cmd.Println("\nYears:")
		for _, y := range stats.Years {
			cmd.Printf("  %d  %d\n", y.Year, y.Count)
		}
	}
	return nil
}
