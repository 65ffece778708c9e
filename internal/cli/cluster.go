package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/semsearch/cluster"
)

var (
	clusterK      int
	clusterFindK  bool
	clusterMaxK   int
	clusterJSON   bool
	clusterLabels bool
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster the corpus and profile the resulting groups",
	Long: `Groups the corpus into k clusters (reducing dimensionality first when the
embeddings are wider than the configured target) and prints one profile
per cluster: its size, dominant categories, recurring title keywords,
and a few sample titles. With --find-k the cluster count is chosen by a
silhouette sweep instead of taken from the config.`,
	RunE: runCluster,
}

func init() {
	clusterCmd.Flags().IntVarP(&clusterK, "clusters", "k", 0, "number of clusters (defaults to cluster.clusters)")
	clusterCmd.Flags().BoolVar(&clusterFindK, "find-k", false, "pick k by silhouette sweep")
	clusterCmd.Flags().IntVar(&clusterMaxK, "max-k", 0, "sweep upper bound (defaults to cluster.max_k)")
	clusterCmd.Flags().BoolVar(&clusterJSON, "json", false, "output profiles as JSON")
	clusterCmd.Flags().BoolVar(&clusterLabels, "labels", false, "include per-document labels in JSON output")
	rootCmd.AddCommand(clusterCmd)
}

// clusterReport is the JSON shape of a clustering run.
type clusterReport struct {
	K        int                     `json:"k"`
	Inertia  float64                 `json:"inertia"`
	Sweep    *cluster.OptimalKResult `json:"sweep,omitempty"`
	Profiles []cluster.Profile       `json:"profiles"`
	Labels   []int                   `json:"labels,omitempty"`
}

func runCluster(cmd *cobra.Command, args []string) error {
	snap, err := openSnapshot(cmd)
	if err != nil {
		return err
	}
	if snap.Len() == 0 {
		return fmt.Errorf("corpus is empty")
	}

	analyzer := cluster.NewAnalyzer(cfg.ClusterSettings())
	ctx := cmd.Context()

	k := clusterK
	if k <= 0 {
		k = cfg.Cluster.Clusters
	}
	var sweep *cluster.OptimalKResult
	if clusterFindK {
		maxK := clusterMaxK
		if maxK <= 0 {
			maxK = cfg.Cluster.MaxK
		}
		if sweep, err = analyzer.OptimalK(ctx, snap, maxK); err != nil {
			return err
		}
		if sweep.BestK > 0 {
			k = sweep.BestK
		}
	}

	assignment, err := analyzer.Analyze(ctx, snap, k)
	if err != nil {
		return err
	}
	profiles, err := cluster.Profiles(snap, assignment)
	if err != nil {
		return err
	}

	if clusterJSON {
		report := clusterReport{K: assignment.K, Inertia: assignment.Inertia, Sweep: sweep, Profiles: profiles}
		if clusterLabels {
			report.Labels = assignment.Labels
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}
	return printProfiles(cmd, sweep, assignment, profiles)
}

func printProfiles(cmd *cobra.Command, sweep *cluster.OptimalKResult, assignment *cluster.Assignment, profiles []cluster.Profile) error {
	if sweep != nil {
		if sweep.BestK > 0 {
			cmd.Printf("Silhouette sweep picked k=%d (score %.4f)\n\n", sweep.BestK, sweep.Scores[sweep.BestK])
		} else {
			cmd.Printf("Silhouette sweep produced no valid score; using k=%d\n\n", assignment.K)
		}
	}
	cmd.Printf("%d clusters, inertia %.3f\n", assignment.K, assignment.Inertia)
	for _, p := range profiles {
		cmd.Printf("\nCluster %d: %d documents (%.1f%%)\n", p.Cluster, p.Size, p.Percent)
		if len(p.TopCategories) > 0 {
			cmd.Print("  categories:")
			for _, c := range p.TopCategories {
				cmd.Printf(" %s(%d)", c.Token, c.Count)
			}
			cmd.Println()
		}
		if len(p.TopKeywords) > 0 {
			cmd.Print("  keywords:")
			for _, kw := range p.TopKeywords {
				cmd.Printf(" %s(%d)", kw.Token, kw.Count)
			}
			cmd.Println()
		}
		for _, title := range p.SampleTitles {
			cmd.Printf("  - %s\n", title)
		}
	}
	return nil
}
