package regressor

import (
	"fmt"
	"math/rand"
	"sort"
)

// FitOptions control forest training.
type FitOptions struct {
	NumTrees int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// Fit trains a random forest on pre-scaled samples. Each tree fits a
// bootstrap resample seeded from Seed plus the tree index, so a given
// (data, options) pair always produces the same forest.
func Fit(features, targets [][]float64, opts FitOptions) (Forest, error) {
	if len(features) == 0 {
		return Forest{}, fmt.Errorf("fit: no samples")
	}
	if len(features) != len(targets) {
		return Forest{}, fmt.Errorf("fit: %d feature rows, %d target rows", len(features), len(targets))
	}
	if opts.NumTrees <= 0 || opts.MaxDepth <= 0 || opts.MinLeaf <= 0 {
		return Forest{}, fmt.Errorf("fit: NumTrees, MaxDepth, and MinLeaf must be positive")
	}
	if len(features[0]) == 0 || len(targets[0]) == 0 {
		return Forest{}, fmt.Errorf("fit: empty feature or target rows")
	}
	for i := range features {
		if len(features[i]) != len(features[0]) || len(targets[i]) != len(targets[0]) {
			return Forest{}, fmt.Errorf("fit: ragged sample at row %d", i)
		}
	}

	forest := Forest{Trees: make([]Tree, 0, opts.NumTrees)}
	for t := 0; t < opts.NumTrees; t++ {
		rng := rand.New(rand.NewSource(opts.Seed + int64(t)))
		rows := make([]int, len(features))
		for i := range rows {
			rows[i] = rng.Intn(len(features))
		}

		b := &treeBuilder{features: features, targets: targets, opts: opts}
		b.build(rows, 0)
		forest.Trees = append(forest.Trees, Tree{Nodes: b.nodes})
	}
	return forest, nil
}

type treeBuilder struct {
	features [][]float64
	targets  [][]float64
	opts     FitOptions
	nodes    []TreeNode
}

// build appends the subtree for rows and returns its root index.
func (b *treeBuilder) build(rows []int, depth int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, TreeNode{Left: -1, Right: -1})

	if depth >= b.opts.MaxDepth || len(rows) < 2*b.opts.MinLeaf {
		b.nodes[idx].Value = b.meanTarget(rows)
		return idx
	}

	feature, threshold, ok := b.bestSplit(rows)
	if !ok {
		b.nodes[idx].Value = b.meanTarget(rows)
		return idx
	}

	var leftRows, rightRows []int
	for _, r := range rows {
		if b.features[r][feature] <= threshold {
			leftRows = append(leftRows, r)
		} else {
			rightRows = append(rightRows, r)
		}
	}

	// Children are built before the parent node is linked: build appends to
	// b.nodes and may reallocate it, so the parent must be re-indexed after.
	left := b.build(leftRows, depth+1)
	right := b.build(rightRows, depth+1)
	b.nodes[idx].Feature = feature
	b.nodes[idx].Threshold = threshold
	b.nodes[idx].Left = left
	b.nodes[idx].Right = right
	return idx
}

// bestSplit scans every feature for the threshold minimizing the summed
// squared error of the two sides. Thresholds are midpoints between adjacent
// distinct values. Returns ok=false when no split keeps MinLeaf rows on both
// sides or none improves on the parent.
func (b *treeBuilder) bestSplit(rows []int) (feature int, threshold float64, ok bool) {
	nFeatures := len(b.features[rows[0]])
	nTargets := len(b.targets[rows[0]])

	totalSum := make([]float64, nTargets)
	totalSumSq := make([]float64, nTargets)
	for _, r := range rows {
		for ti, v := range b.targets[r] {
			totalSum[ti] += v
			totalSumSq[ti] += v * v
		}
	}
	bestSSE := 0.0
	for ti := 0; ti < nTargets; ti++ {
		bestSSE += totalSumSq[ti] - totalSum[ti]*totalSum[ti]/float64(len(rows))
	}

	sorted := make([]int, len(rows))
	sum := make([]float64, nTargets)
	sumSq := make([]float64, nTargets)

	for f := 0; f < nFeatures; f++ {
		copy(sorted, rows)
		sort.Slice(sorted, func(i, j int) bool {
			return b.features[sorted[i]][f] < b.features[sorted[j]][f]
		})

		for ti := range sum {
			sum[ti] = 0
			sumSq[ti] = 0
		}

		for i := 0; i < len(sorted)-1; i++ {
			for ti, v := range b.targets[sorted[i]] {
				sum[ti] += v
				sumSq[ti] += v * v
			}

			nLeft := i + 1
			nRight := len(sorted) - nLeft
			if nLeft < b.opts.MinLeaf || nRight < b.opts.MinLeaf {
				continue
			}
			cur := b.features[sorted[i]][f]
			next := b.features[sorted[i+1]][f]
			if cur == next {
				continue
			}

			var sse float64
			for ti := 0; ti < nTargets; ti++ {
				leftSum, leftSq := sum[ti], sumSq[ti]
				rightSum := totalSum[ti] - leftSum
				rightSq := totalSumSq[ti] - leftSq
				sse += leftSq - leftSum*leftSum/float64(nLeft)
				sse += rightSq - rightSum*rightSum/float64(nRight)
			}
			if sse < bestSSE {
				bestSSE = sse
				feature = f
				threshold = (cur + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) meanTarget(rows []int) []float64 {
	mean := make([]float64, len(b.targets[rows[0]]))
	for _, r := range rows {
		for ti, v := range b.targets[r] {
			mean[ti] += v
		}
	}
	for ti := range mean {
		mean[ti] /= float64(len(rows))
	}
	return mean
}
