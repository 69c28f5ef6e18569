package services

import "fmt"

// Node is one split or leaf of a regression tree. Feature -1 marks a leaf.
type Node struct {
	Feature   int     `json:"feature" msgpack:"feature"`
	Threshold float64 `json:"threshold" msgpack:"threshold"`
	Left      int     `json:"left" msgpack:"left"`
	Right     int     `json:"right" msgpack:"right"`
	Value     float64 `json:"value" msgpack:"value"`
}

// Tree is a flat node array rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes" msgpack:"nodes"`
}

func (t Tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Feature < 0 {
			continue
		}
		if n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d of %d", i, n.Feature, width)
		}
		// children must point forward so evaluation always terminates
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

func (t Tree) eval(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// treeEnsemble backs both the random forest (mean of trees) and the
// gradient boosted model (base score plus sum of trees).
type treeEnsemble struct {
	enc     *encoder
	trees   []Tree
	base    float64
	average bool
}

func newTreeEnsemble(art *Artifact, average bool) (*treeEnsemble, error) {
	enc, err := newEncoder(art.Features)
	if err != nil {
		return nil, err
	}
	if len(art.Trees) == 0 {
		return nil, fmt.Errorf("artifact has no trees")
	}
	for i, t := range art.Trees {
		if err := t.validate(enc.width()); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &treeEnsemble{enc: enc, trees: art.Trees, base: art.BaseScore, average: average}, nil
}

func newForest(art *Artifact) (Predictor, error) {
	m, err := newTreeEnsemble(art, true)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newBoostedTrees(art *Artifact) (Predictor, error) {
	m, err := newTreeEnsemble(art, false)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *treeEnsemble) Predict(row FeatureRow) (float64, error) {
	x := m.enc.encode(row)

	sum := 0.0
	for _, t := range m.trees {
		sum += t.eval(x)
	}
	if m.average {
		return sum / float64(len(m.trees)), nil
	}
	return m.base + sum, nil
}
