package analyzer

import "context"

// pathChoice records, for one pair of subtrees, which tree holds the path
// and which kind of path it is
type pathChoice uint8

const dstSide pathChoice = 1 << 2

func choosePath(kind pathKind, inDst bool) pathChoice {
	if inDst {
		return pathChoice(kind) | dstSide
	}
	return pathChoice(kind)
}

func (p pathChoice) kind() pathKind {
	return pathKind(p &^ dstSide)
}

func (p pathChoice) inDst() bool {
	return p&dstSide != 0
}

// comparison holds the state of one distance computation. Nodes are
// addressed by postorder index; treeDist[v*m+w] is the distance between
// subtree v of src and subtree w of dst, m being the size of dst.
type comparison struct {
	ctx      context.Context
	model    CostModel
	src, dst *indexedTree
	m        int

	treeDist []int
	cells    int
	planned  int

	forward  *orientation // paths in src
	backward *orientation // paths in dst
}

func newComparison(ctx context.Context, model CostModel, tree1, tree2 *Node) *comparison {
	src, dst := indexTree(tree1), indexTree(tree2)
	c := &comparison{
		ctx:      ctx,
		model:    model,
		src:      src,
		dst:      dst,
		m:        len(dst.nodes),
		treeDist: make([]int, len(src.nodes)*len(dst.nodes)),
	}

	deletes := make([]int, len(src.nodes))
	for v, node := range src.nodes {
		deletes[v] = model.Delete(node)
	}
	inserts := make([]int, len(dst.nodes))
	for w, node := range dst.nodes {
		inserts[w] = model.Insert(node)
	}

	c.forward = &orientation{
		c:             c,
		path:          src,
		other:         dst,
		remove:        deletes,
		add:           inserts,
		removeSubtree: src.subtreeSums(deletes),
	}
	c.backward = &orientation{
		c:             c,
		path:          dst,
		other:         src,
		remove:        inserts,
		add:           deletes,
		removeSubtree: dst.subtreeSums(inserts),
		swapped:       true,
	}
	return c
}

func (c *comparison) distance() int {
	return c.treeDist[c.src.root()*c.m+c.dst.root()]
}

// plan picks a path for every pair of subtrees, bottom-up, minimizing the
// cells the pair and everything it recurses into will evaluate. A path
// function over a left or right path costs the path subtree size times the
// keyroot subtree sizes of the other side; over a heavy path it costs the
// path subtree size times the square of the other side. Subtrees hanging off
// the chosen path are paired with the whole other subtree and add their own
// planned cost.
func (c *comparison) plan(strategy PathStrategy) []pathChoice {
	src, dst := c.src, c.dst
	n, m := len(src.nodes), len(dst.nodes)

	// A row is only read while its parent's row is built
	type planRow struct {
		cost []int
		hang [pathKinds][]int // cost of the subtrees hanging off each path of v
	}
	rows := make([]*planRow, n)
	choice := make([]pathChoice, n*m)
	var hangDst [pathKinds][]int
	for k := range hangDst {
		hangDst[k] = make([]int, m)
	}

	bestCost, bestChoice := -1, pathChoice(0)
	consider := func(cells int, p pathChoice) {
		if bestCost < 0 || cells < bestCost {
			bestCost, bestChoice = cells, p
		}
	}

	for v := 0; v < n; v++ {
		row := &planRow{cost: make([]int, m)}
		for k := range row.hang {
			row.hang[k] = make([]int, m)
		}

		for w := 0; w < m; w++ {
			for k := leftPath; k < pathKinds; k++ {
				if pc := src.pathChild[k][v]; pc >= 0 {
					sum := rows[pc].hang[k][w]
					for _, child := range src.children[v] {
						if child != pc {
							sum += rows[child].cost[w]
						}
					}
					row.hang[k][w] = sum
				}

				hangDst[k][w] = 0
				if pc := dst.pathChild[k][w]; pc >= 0 {
					sum := hangDst[k][pc]
					for _, child := range dst.children[w] {
						if child != pc {
							sum += row.cost[child]
						}
					}
					hangDst[k][w] = sum
				}
			}

			sv, sw := src.size[v], dst.size[w]
			bestCost = -1
			if strategy == AutoPaths || strategy == LeftPaths {
				consider(sv*dst.keyRootCost[leftPath][w]+row.hang[leftPath][w], choosePath(leftPath, false))
			}
			if strategy == AutoPaths || strategy == RightPaths {
				consider(sv*dst.keyRootCost[rightPath][w]+row.hang[rightPath][w], choosePath(rightPath, false))
			}
			if strategy == AutoPaths || (strategy == HeavyPaths && sv >= sw) {
				consider(sv*sw*sw+row.hang[heavyPath][w], choosePath(heavyPath, false))
			}
			if strategy == AutoPaths {
				consider(sw*src.keyRootCost[leftPath][v]+hangDst[leftPath][w], choosePath(leftPath, true))
				consider(sw*src.keyRootCost[rightPath][v]+hangDst[rightPath][w], choosePath(rightPath, true))
			}
			if strategy == AutoPaths || (strategy == HeavyPaths && sv < sw) {
				consider(sw*sv*sv+hangDst[heavyPath][w], choosePath(heavyPath, true))
			}
			if bestCost < 0 {
				// Unknown strategies fall back to left paths
				consider(sv*dst.keyRootCost[leftPath][w]+row.hang[leftPath][w], choosePath(leftPath, false))
			}

			row.cost[w], choice[v*m+w] = bestCost, bestChoice
		}

		for _, child := range src.children[v] {
			rows[child] = nil
		}
		rows[v] = row
	}

	c.planned = rows[n-1].cost[m-1]
	return choice
}

// execute runs the path functions in dependency order. A pair is expanded
// into the pairs hanging off its path, which must finish before the pair's
// own path function runs.
func (c *comparison) execute(plan []pathChoice) error {
	type frame struct {
		v, w  int
		ready bool
	}

	stack := []frame{{v: c.src.root(), w: c.dst.root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		choice := plan[f.v*c.m+f.w]
		kind := choice.kind()

		if !f.ready {
			stack = append(stack, frame{v: f.v, w: f.w, ready: true})
			if choice.inDst() {
				for x := f.w; x >= 0; x = c.dst.pathChild[kind][x] {
					for _, child := range c.dst.children[x] {
						if child != c.dst.pathChild[kind][x] {
							stack = append(stack, frame{v: f.v, w: child})
						}
					}
				}
			} else {
				for x := f.v; x >= 0; x = c.src.pathChild[kind][x] {
					for _, child := range c.src.children[x] {
						if child != c.src.pathChild[kind][x] {
							stack = append(stack, frame{v: child, w: f.w})
						}
					}
				}
			}
			continue
		}

		o, path, other := c.forward, f.v, f.w
		if choice.inDst() {
			o, path, other = c.backward, f.w, f.v
		}

		var err error
		if kind == heavyPath {
			err = o.generalPath(path, other)
		} else {
			err = o.keyRootPath(path, other, kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
