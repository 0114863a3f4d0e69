package analyzer

import "context"

// PathStrategy selects how the engine decomposes the trees into root-to-leaf
// paths. Every strategy yields the exact distance; they differ in how many
// dynamic programming cells are evaluated.
type PathStrategy int

const (
	// AutoPaths picks, for every pair of subtrees, the left, right or heavy
	// path in either tree that minimizes the cells evaluated overall
	AutoPaths PathStrategy = iota
	// LeftPaths decomposes the first tree along leftmost-child paths
	LeftPaths
	// RightPaths decomposes the first tree along rightmost-child paths
	RightPaths
	// HeavyPaths decomposes the larger subtree of each pair along heavy
	// paths, descending into the child with the largest subtree
	HeavyPaths
)

// String returns string representation of PathStrategy
func (s PathStrategy) String() string {
	switch s {
	case AutoPaths:
		return "auto"
	case LeftPaths:
		return "left"
	case RightPaths:
		return "right"
	case HeavyPaths:
		return "heavy"
	default:
		return "unknown"
	}
}

// TreeEditDistance computes the exact ordered tree edit distance: the
// minimum total cost of node insertions, deletions and renames turning one
// tree into the other while preserving ancestor and sibling order.
//
// Both trees are decomposed into paths. For a path in one subtree, a path
// function computes the distances between every subtree rooted on the path
// and every subtree of the other side, after the subtrees hanging off the
// path have been matched recursively. Left and right paths run the keyroot
// dynamic program over postorder prefixes; any other path deletes from both
// ends of its forests. The strategy fixes the path taken for every pair of
// subtrees before any distance is computed.
type TreeEditDistance struct {
	costModel CostModel
	strategy  PathStrategy
}

// NewTreeEditDistance creates a new engine with the given cost model
func NewTreeEditDistance(costModel CostModel) *TreeEditDistance {
	if costModel == nil {
		costModel = NewDefaultCostModel()
	}
	return &TreeEditDistance{
		costModel: costModel,
		strategy:  AutoPaths,
	}
}

// SetStrategy forces a path decomposition; AutoPaths restores the default
func (e *TreeEditDistance) SetStrategy(strategy PathStrategy) {
	e.strategy = strategy
}

// EditResult holds the result of a tree edit distance computation
type EditResult struct {
	Distance   int
	Similarity float64
	Tree1Size  int
	Tree2Size  int
	Strategy   PathStrategy
	Cells      int // dynamic programming cells evaluated
}

// Distance computes the tree edit distance between two trees
func (e *TreeEditDistance) Distance(tree1, tree2 *Node) int {
	return e.Compute(tree1, tree2).Distance
}

// Similarity computes similarity score between two trees (0.0 to 1.0)
func (e *TreeEditDistance) Similarity(tree1, tree2 *Node) float64 {
	return e.Compute(tree1, tree2).Similarity
}

// Compute computes the distance together with sizes and similarity
func (e *TreeEditDistance) Compute(tree1, tree2 *Node) *EditResult {
	result, _ := e.ComputeContext(context.Background(), tree1, tree2)
	return result
}

// ComputeContext is Compute with cancellation. The context is checked
// before every path function; a cancelled computation returns ctx.Err()
// and no result.
func (e *TreeEditDistance) ComputeContext(ctx context.Context, tree1, tree2 *Node) (*EditResult, error) {
	result := &EditResult{
		Tree1Size: tree1.Size(),
		Tree2Size: tree2.Size(),
		Strategy:  e.strategy,
	}

	switch {
	case tree1 == nil && tree2 == nil:
		result.Distance = 0
	case tree1 == nil:
		result.Distance = subtreeCost(tree2, e.costModel.Insert)
	case tree2 == nil:
		result.Distance = subtreeCost(tree1, e.costModel.Delete)
	default:
		c := newComparison(ctx, e.costModel, tree1, tree2)
		if err := c.execute(c.plan(e.strategy)); err != nil {
			return nil, err
		}
		result.Distance = c.distance()
		result.Cells = c.cells
	}

	result.Similarity = similarity(result.Distance, result.Tree1Size, result.Tree2Size)
	return result, nil
}

// subtreeCost sums cost over every node of the subtree rooted at root
func subtreeCost(root *Node, cost func(*Node) int) int {
	total := 0
	stack := []*Node{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total += cost(top)
		stack = append(stack, top.Children...)
	}
	return total
}

func similarity(distance, size1, size2 int) float64 {
	total := size1 + size2
	if total == 0 {
		return 1.0
	}
	s := 1.0 - float64(distance)/float64(total)
	if s < 0 {
		return 0
	}
	return s
}
