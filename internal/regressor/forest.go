package regressor

import (
	"errors"
	"fmt"
)

// TreeNode is one node in a flattened regression tree. Internal nodes route
// on x[Feature] <= Threshold (left) versus greater (right). Leaves have
// Left and Right set to -1 and carry the output vector in Value.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

// Tree is a flattened regression tree rooted at node 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// Predict walks the tree for one scaled feature vector.
func (t Tree) Predict(x []float64) ([]float64, error) {
	if len(t.Nodes) == 0 {
		return nil, errors.New("tree: no nodes")
	}

	i := 0
	// A well-formed tree terminates well before len(Nodes) steps; the bound
	// turns a corrupt artifact with an index cycle into an error.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[i]
		if n.Left < 0 && n.Right < 0 {
			return n.Value, nil
		}
		if n.Feature < 0 || n.Feature >= len(x) {
			return nil, fmt.Errorf("tree: node %d routes on feature %d, vector has %d", i, n.Feature, len(x))
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
		if i < 0 || i >= len(t.Nodes) {
			return nil, fmt.Errorf("tree: child index %d out of range", i)
		}
	}
	return nil, errors.New("tree: traversal did not reach a leaf")
}

// Forest averages the predictions of its trees.
type Forest struct {
	Trees []Tree
}

// Predict returns the mean leaf vector across all trees.
func (f Forest) Predict(x []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, errors.New("forest: no trees")
	}

	var sum []float64
	for ti, tree := range f.Trees {
		v, err := tree.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("forest: tree %d: %w", ti, err)
		}
		if sum == nil {
			sum = make([]float64, len(v))
		}
		if len(v) != len(sum) {
			return nil, fmt.Errorf("forest: tree %d leaf width %d, expected %d", ti, len(v), len(sum))
		}
		for i := range v {
			sum[i] += v[i]
		}
	}

	for i := range sum {
		sum[i] /= float64(len(f.Trees))
	}
	return sum, nil
}
