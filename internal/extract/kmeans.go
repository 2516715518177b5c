package extract

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const (
	// kMeansSeed pins cluster initialization so topic-based chunking is
	// reproducible. Changing it changes chunk output, not just internals.
	kMeansSeed = 42

	kMeansMaxIterations = 100
)

// Cluster partitions vectors into k clusters with Lloyd's algorithm and
// returns the cluster index assigned to each vector. The seed is fixed, so
// identical input always yields identical assignments. Empty clusters are
// re-seeded with the point farthest from its current centroid.
func Cluster(vectors [][]float64, k int) []int {
	n := len(vectors)
	if n == 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}

	dim := len(vectors[0])
	rng := rand.New(rand.NewSource(kMeansSeed))

	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), vectors[perm[i]]...)
	}

	assign := make([]int, n)
	for iter := 0; iter < kMeansMaxIterations; iter++ {
		changed := false
		for i, v := range vectors {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				d := floats.Distance(v, centroid, 2)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			c := assign[i]
			floats.Add(next[c], v)
			counts[c]++
		}
		for c := range next {
			if counts[c] == 0 {
				reseedEmptyCluster(next, c, vectors, centroids, assign)
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}
		centroids = next
	}

	return assign
}

// reseedEmptyCluster moves the point farthest from its assigned centroid
// into the empty cluster c. Selection is deterministic (first maximum).
func reseedEmptyCluster(next [][]float64, c int, vectors [][]float64, centroids [][]float64, assign []int) {
	farthest, maxDist := -1, -1.0
	for i, v := range vectors {
		d := floats.Distance(v, centroids[assign[i]], 2)
		if d > maxDist {
			farthest, maxDist = i, d
		}
	}
	if farthest >= 0 {
		copy(next[c], vectors[farthest])
		assign[farthest] = c
	}
}
