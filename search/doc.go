// Package search turns an embedded query into a ranked, threshold-filtered,
// metadata-enriched result list over a corpus snapshot. Query embedding is
// an external concern: the Engine receives an EmbedFunc at construction and
// never loads or caches a model itself.
package search
