package analyzer

import "sort"

// pathKind names the child a root-to-leaf path descends into at each node
type pathKind int

const (
	leftPath  pathKind = iota // first child
	rightPath                 // last child
	heavyPath                 // child with the largest subtree, leftmost on ties
	pathKinds
)

// indexedTree numbers the nodes of a tree for the dynamic programs. A node
// is identified by its postorder index, so the root is the last node and
// every subtree occupies a contiguous range ending at its root.
type indexedTree struct {
	nodes    []*Node
	children [][]int
	size     []int

	pre    []int // preorder index of each node
	mpre   []int // preorder index with children visited right to left
	atPre  []int
	atMpre []int
	maxPre []int // highest preorder index among nodes 0..i

	pathChild [pathKinds][]int // -1 for leaves

	// keyRootCost[k][v] sums the sizes of the keyroot subtrees of v when
	// decomposed along left (k == leftPath) or right paths
	keyRootCost [2][]int
	views       [2]*postorderView
}

func indexTree(root *Node) *indexedTree {
	t := &indexedTree{}

	type item struct {
		node     *Node
		next     int
		children []int
	}
	stack := []item{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.Children) {
			child := top.node.Children[top.next]
			top.next++
			stack = append(stack, item{node: child})
			continue
		}

		id := len(t.nodes)
		t.nodes = append(t.nodes, top.node)
		t.children = append(t.children, top.children)
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, id)
		}
	}

	n := len(t.nodes)
	t.size = make([]int, n)
	for v := 0; v < n; v++ {
		t.size[v] = 1
		for _, c := range t.children[v] {
			t.size[v] += t.size[c]
		}
	}

	t.pre, t.atPre = t.preorder(false)
	t.mpre, t.atMpre = t.preorder(true)

	t.maxPre = make([]int, n)
	highest := -1
	for v := 0; v < n; v++ {
		if t.pre[v] > highest {
			highest = t.pre[v]
		}
		t.maxPre[v] = highest
	}

	for k := range t.pathChild {
		t.pathChild[k] = make([]int, n)
	}
	for v := 0; v < n; v++ {
		children := t.children[v]
		if len(children) == 0 {
			for k := range t.pathChild {
				t.pathChild[k][v] = -1
			}
			continue
		}
		heavy := children[0]
		for _, c := range children[1:] {
			if t.size[c] > t.size[heavy] {
				heavy = c
			}
		}
		t.pathChild[leftPath][v] = children[0]
		t.pathChild[rightPath][v] = children[len(children)-1]
		t.pathChild[heavyPath][v] = heavy
	}

	for k := leftPath; k <= rightPath; k++ {
		cost := make([]int, n)
		for v := 0; v < n; v++ {
			if len(t.children[v]) == 0 {
				cost[v] = 1
				continue
			}
			// The path child shares the keyroot of v; other children are keyroots
			cost[v] = t.size[v] - t.size[t.pathChild[k][v]]
			for _, c := range t.children[v] {
				cost[v] += cost[c]
			}
		}
		t.keyRootCost[k] = cost
		t.views[k] = newPostorderView(t, k == rightPath)
	}

	return t
}

func (t *indexedTree) root() int {
	return len(t.nodes) - 1
}

// preorder numbers the nodes in preorder, visiting children right to left when mirrored
func (t *indexedTree) preorder(mirrored bool) (index, at []int) {
	n := len(t.nodes)
	index, at = make([]int, n), make([]int, n)

	counter := 0
	stack := []int{t.root()}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		index[v], at[counter] = counter, v
		counter++

		children := t.children[v]
		if mirrored {
			stack = append(stack, children...)
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return index, at
}

// path lists the nodes of the kind path from v down to a leaf
func (t *indexedTree) path(v int, kind pathKind) []int {
	var nodes []int
	for ; v >= 0; v = t.pathChild[kind][v] {
		nodes = append(nodes, v)
	}
	return nodes
}

// subtreeSums returns, for every node, the sum of cost over its subtree
func (t *indexedTree) subtreeSums(cost []int) []int {
	sums := make([]int, len(t.nodes))
	for v := range t.nodes {
		sums[v] = cost[v]
		for _, c := range t.children[v] {
			sums[v] += sums[c]
		}
	}
	return sums
}

// postorderView is a postorder flattening of an indexedTree. The mirrored
// view visits children right to left, turning rightmost-child paths into
// leftmost-child paths.
type postorderView struct {
	order    []int // node at each view position
	pos      []int // view position of each node
	leftmost []int // view position of the leftmost leaf of each subtree
	keyRoots []int // ascending view positions
}

func newPostorderView(t *indexedTree, mirrored bool) *postorderView {
	n := len(t.nodes)
	v := &postorderView{
		order:    make([]int, 0, n),
		pos:      make([]int, n),
		leftmost: make([]int, 0, n),
	}

	type item struct {
		id    int
		next  int
		first int // view position of the first finished child
	}
	stack := []item{{id: t.root(), first: -1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if children := t.children[top.id]; top.next < len(children) {
			index := top.next
			if mirrored {
				index = len(children) - 1 - top.next
			}
			top.next++
			stack = append(stack, item{id: children[index], first: -1})
			continue
		}

		position := len(v.order)
		leftmost := position
		if top.first >= 0 {
			leftmost = v.leftmost[top.first]
		}
		v.order = append(v.order, top.id)
		v.pos[top.id] = position
		v.leftmost = append(v.leftmost, leftmost)

		stack = stack[:len(stack)-1]
		if len(stack) > 0 && stack[len(stack)-1].first < 0 {
			stack[len(stack)-1].first = position
		}
	}

	// A keyroot is the highest node sharing its leftmost leaf
	highest := make([]int, n)
	for i, leftmost := range v.leftmost {
		highest[leftmost] = i
	}
	for i, leftmost := range v.leftmost {
		if highest[leftmost] == i {
			v.keyRoots = append(v.keyRoots, i)
		}
	}

	return v
}

// keyRootsWithin returns the keyroots of the subtree rooted at view
// position root, in ascending order. The root always ends the list.
func (v *postorderView) keyRootsWithin(root int) []int {
	from := sort.SearchInts(v.keyRoots, v.leftmost[root])
	to := sort.SearchInts(v.keyRoots, root)
	return append(v.keyRoots[from:to:to], root)
}
