// Package similarity implements batch cosine scoring, top-k selection, and
// score normalization over an in-memory corpus matrix. Selection picks the k
// best rows in O(N) and only sorts the selected subset, so ranking cost does
// not grow with corpus size beyond the unavoidable scoring pass.
package similarity
