package analyzer

// CostModel defines the interface for calculating edit operation costs.
// Costs must be non-negative and Rename(n, n) must be 0.
type CostModel interface {
	// Insert returns the cost of inserting a node
	Insert(node *Node) int

	// Delete returns the cost of deleting a node
	Delete(node *Node) int

	// Rename returns the cost of renaming node1 to node2
	Rename(node1, node2 *Node) int
}

// DefaultCostModel charges 1 for insertions and deletions, and 1 for
// renames between nodes whose category or text differ.
type DefaultCostModel struct{}

// NewDefaultCostModel creates a new default cost model
func NewDefaultCostModel() *DefaultCostModel {
	return &DefaultCostModel{}
}

// Insert returns the cost of inserting a node (always 1)
func (c *DefaultCostModel) Insert(node *Node) int {
	return 1
}

// Delete returns the cost of deleting a node (always 1)
func (c *DefaultCostModel) Delete(node *Node) int {
	return 1
}

// Rename returns 0 for nodes with equal category and text, 1 otherwise
func (c *DefaultCostModel) Rename(node1, node2 *Node) int {
	if node1 == nil || node2 == nil {
		return 1
	}
	if node1.SameLabel(node2) {
		return 0
	}
	return 1
}

// WeightedCostModel allows custom weights for different operation types
type WeightedCostModel struct {
	InsertWeight  int
	DeleteWeight  int
	RenameWeight  int
	BaseCostModel CostModel
}

// NewWeightedCostModel creates a new weighted cost model
func NewWeightedCostModel(insertWeight, deleteWeight, renameWeight int, baseCostModel CostModel) *WeightedCostModel {
	if baseCostModel == nil {
		baseCostModel = NewDefaultCostModel()
	}
	return &WeightedCostModel{
		InsertWeight:  insertWeight,
		DeleteWeight:  deleteWeight,
		RenameWeight:  renameWeight,
		BaseCostModel: baseCostModel,
	}
}

// Insert returns the weighted cost of inserting a node
func (c *WeightedCostModel) Insert(node *Node) int {
	return c.InsertWeight * c.BaseCostModel.Insert(node)
}

// Delete returns the weighted cost of deleting a node
func (c *WeightedCostModel) Delete(node *Node) int {
	return c.DeleteWeight * c.BaseCostModel.Delete(node)
}

// Rename returns the weighted cost of renaming node1 to node2
func (c *WeightedCostModel) Rename(node1, node2 *Node) int {
	return c.RenameWeight * c.BaseCostModel.Rename(node1, node2)
}

// reversedCostModel swaps the roles of the two trees of a cost model
type reversedCostModel struct {
	base CostModel
}

// Reverse returns the cost model of the opposite comparison direction:
// inserts cost what deletes cost in the base model and vice versa, and
// renames are evaluated with swapped arguments. For any model M,
// distance(A, B) under M equals distance(B, A) under Reverse(M).
func Reverse(model CostModel) CostModel {
	if r, ok := model.(reversedCostModel); ok {
		return r.base
	}
	return reversedCostModel{base: model}
}

func (c reversedCostModel) Insert(node *Node) int {
	return c.base.Delete(node)
}

func (c reversedCostModel) Delete(node *Node) int {
	return c.base.Insert(node)
}

func (c reversedCostModel) Rename(node1, node2 *Node) int {
	return c.base.Rename(node2, node1)
}
