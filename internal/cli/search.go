package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/semsearch/search"
	"github.com/viant/semsearch/store"
)

var (
	searchK          int
	searchThreshold  float64
	searchVectorFile string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [vector]",
	Short: "Rank the corpus against a query embedding",
	Long: `Ranks the corpus against an already-embedded query vector, given either
inline as a JSON array ("[0.1, 0.2, ...]") or through --vector-file.
Results below the similarity threshold are dropped; when nothing
survives, a single no-match entry reports the best score seen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "top", "k", 0, "maximum number of results (defaults to search.k)")
	searchCmd.Flags().Float64VarP(&searchThreshold, "threshold", "t", -1, "minimum similarity score (defaults to search.threshold)")
	searchCmd.Flags().StringVar(&searchVectorFile, "vector-file", "", "JSON file holding the query vector")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func queryVector(args []string) ([]float32, error) {
	var raw []byte
	switch {
	case searchVectorFile != "":
		data, err := os.ReadFile(searchVectorFile)
		if err != nil {
			return nil, fmt.Errorf("read vector file: %w", err)
		}
		raw = data
	case len(args) == 1:
		raw = []byte(args[0])
	default:
		return nil, fmt.Errorf("provide a query vector inline or via --vector-file")
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, fmt.Errorf("parse query vector: %w", err)
	}
	return vec, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	vec, err := queryVector(args)
	if err != nil {
		return err
	}

	snap, err := openSnapshot(cmd)
	if err != nil {
		return err
	}
	handle, err := store.NewHandle(snap)
	if err != nil {
		return err
	}
	eng, err := search.New(handle, nil)
	if err != nil {
		return err
	}

	k := searchK
	if k <= 0 {
		k = cfg.Search.K
	}
	threshold := searchThreshold
	if threshold < 0 {
		threshold = *cfg.Search.Threshold
	}

	results, err := eng.SearchVector(vec, k, threshold)
	if err != nil {
		return err
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}
	return printResults(cmd, results)
}

func printResults(cmd *cobra.Command, results []search.Result) error {
	if len(results) == 0 {
		cmd.Println("Empty corpus.")
		return nil
	}
	if results[0].NoMatch {
		cmd.Printf("%s (best score %.3f)\n", results[0].Message, results[0].Score)
		return nil
	}
	for i, r := range results {
		title := ""
		if r.Metadata != nil {
			title = r.Metadata.Title
		}
		if title == "" {
			title = fmt.Sprintf("document %d", r.Index)
		}
		cmd.Printf("  [%d] %s\n", i+1, title)
		cmd.Printf("      score %.4f (%.1f%%, %s)\n", r.Score, r.Percentage, r.Quality)
		if r.Metadata != nil && len(r.Metadata.Categories) > 0 {
			cmd.Printf("      categories: %s\n", strings.Join([]string(r.Metadata.Categories), ", "))
		}
	}
	stats := search.Summarize(results)
	cmd.Printf("\n%d results, scores %.3f..%.3f (mean %.3f)\n", stats.Total, stats.Min, stats.Max, stats.Mean)
	return nil
}
