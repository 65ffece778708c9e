// Package cluster performs unsupervised topic discovery over a corpus
// snapshot: seeded k-means over (optionally dimension-reduced) embeddings,
// a silhouette-driven sweep for the best cluster count, and post-hoc
// profiling of cluster contents. Clustering is CPU-bound and always
// recomputed from scratch; callers dispatch it through a background Job so
// latency-sensitive search traffic is never blocked.
package cluster
