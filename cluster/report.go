package cluster

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/semsearch/store"
)

const (
	// memberSampleCap bounds how many member documents are examined per
	// cluster when profiling, so huge clusters stay cheap to summarize.
	memberSampleCap = 100
	topCategories   = 5
	topKeywords     = 10
	sampleTitleCap  = 5
	minKeywordLen   = 3
)

var keywordPattern = regexp.MustCompile(`[a-z]{3,}`)

// TokenCount is one ranked token bucket in a cluster profile.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Profile summarizes one cluster's contents for human consumption: how big
// it is, which categories dominate it, which title keywords recur, and a
// few verbatim sample titles.
type Profile struct {
	Cluster       int          `json:"cluster"`
	Size          int          `json:"size"`
	Percent       float64      `json:"percent"`
	TopCategories []TokenCount `json:"top_categories"`
	TopKeywords   []TokenCount `json:"top_keywords"`
	SampleTitles  []string     `json:"sample_titles"`
}

// Profiles builds one Profile per cluster id present in the assignment and
// returns them sorted by descending size (ties by ascending cluster id).
// Labels must be index-aligned with the snapshot. Clusters larger than the
// sample cap are profiled from a seeded random member draw, so profiles
// stay deterministic without favoring the head of the corpus. Documents
// without metadata still count toward sizes; they just contribute no
// categories, keywords, or titles.
func Profiles(s *store.Store, assignment *Assignment) ([]Profile, error) {
	if assignment == nil {
		return nil, fmt.Errorf("cluster: nil assignment")
	}
	if len(assignment.Labels) != s.Len() {
		return nil, fmt.Errorf("cluster: %d labels for %d documents", len(assignment.Labels), s.Len())
	}
	members := map[int][]int{}
	for i, l := range assignment.Labels {
		members[l] = append(members[l], i)
	}

	profiles := make([]Profile, 0, len(members))
	for id, idxs := range members {
		p := Profile{
			Cluster: id,
			Size:    len(idxs),
			Percent: float64(len(idxs)) / float64(s.Len()) * 100,
		}
		categories := map[string]int{}
		keywords := map[string]int{}
		sampled := sampleMembers(idxs, id)
		for _, docIdx := range sampled {
			meta, ok := s.Metadata(docIdx)
			if !ok {
				continue
			}
			for _, c := range meta.Categories {
				categories[c]++
			}
			for _, tok := range titleKeywords(meta.Title) {
				keywords[tok]++
			}
			if meta.Title != "" && len(p.SampleTitles) < sampleTitleCap {
				p.SampleTitles = append(p.SampleTitles, meta.Title)
			}
		}
		p.TopCategories = rankTokens(categories, topCategories)
		p.TopKeywords = rankTokens(keywords, topKeywords)
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Size != profiles[j].Size {
			return profiles[i].Size > profiles[j].Size
		}
		return profiles[i].Cluster < profiles[j].Cluster
	})
	return profiles, nil
}

// sampleMembers caps the member indices examined per cluster. Oversized
// clusters get a random draw seeded per cluster id, sorted back into
// document order so sample titles keep a stable presentation.
func sampleMembers(idxs []int, clusterID int) []int {
	if len(idxs) <= memberSampleCap {
		return idxs
	}
	rng := rand.New(rand.NewSource(DefaultSeed + int64(clusterID)))
	sampled := make([]int, memberSampleCap)
	for i, j := range rng.Perm(len(idxs))[:memberSampleCap] {
		sampled[i] = idxs[j]
	}
	sort.Ints(sampled)
	return sampled
}

// titleKeywords tokenizes a title into lowercase alphabetic runs of at
// least three characters and drops stopwords.
func titleKeywords(title string) []string {
	var out []string
	for _, tok := range keywordPattern.FindAllString(strings.ToLower(title), -1) {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func rankTokens(counts map[string]int, limit int) []TokenCount {
	ranked := make([]TokenCount, 0, len(counts))
	for tok, n := range counts {
		ranked = append(ranked, TokenCount{Token: tok, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Token < ranked[j].Token
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
