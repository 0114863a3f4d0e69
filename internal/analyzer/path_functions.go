package analyzer

// orientation runs path functions with the path in one tree and the whole
// subtree of the other. Removing a node of the path tree costs remove,
// adding a node of the other tree costs add. With swapped set the path lies
// in dst, so removals are insertions and distances are stored transposed.
type orientation struct {
	c             *comparison
	path, other   *indexedTree
	remove, add   []int
	removeSubtree []int
	swapped       bool
}

func (o *orientation) dist(x, y int) int {
	if o.swapped {
		return o.c.treeDist[y*o.c.m+x]
	}
	return o.c.treeDist[x*o.c.m+y]
}

func (o *orientation) setDist(x, y, d int) {
	if o.swapped {
		o.c.treeDist[y*o.c.m+x] = d
		return
	}
	o.c.treeDist[x*o.c.m+y] = d
}

func (o *orientation) rename(x, y int) int {
	if o.swapped {
		return o.c.model.Rename(o.other.nodes[y], o.path.nodes[x])
	}
	return o.c.model.Rename(o.path.nodes[x], o.other.nodes[y])
}

// keyRootPath handles a leftmost path (a rightmost one through the mirrored
// views) of subtree v against subtree w. One forest distance table runs per
// keyroot of w; cells pairing a node on the path with a node on the
// keyroot's path are tree distances and get stored.
func (o *orientation) keyRootPath(v, w int, kind pathKind) error {
	pv, ov := o.path.views[kind], o.other.views[kind]
	i := pv.pos[v]
	li := pv.leftmost[i]
	rows := i - li + 2
	fd := make([]int, rows*(o.other.size[w]+1))

	for _, j := range ov.keyRootsWithin(ov.pos[w]) {
		if err := o.c.ctx.Err(); err != nil {
			return err
		}

		lj := ov.leftmost[j]
		width := j - lj + 2

		fd[0] = 0
		for x := 1; x < rows; x++ {
			fd[x*width] = fd[(x-1)*width] + o.remove[pv.order[li+x-1]]
		}
		for y := 1; y < width; y++ {
			fd[y] = fd[y-1] + o.add[ov.order[lj+y-1]]
		}

		for x := 1; x < rows; x++ {
			lx := pv.leftmost[li+x-1]
			a := pv.order[li+x-1]
			for y := 1; y < width; y++ {
				ly := ov.leftmost[lj+y-1]
				b := ov.order[lj+y-1]

				best := min(fd[(x-1)*width+y]+o.remove[a], fd[x*width+y-1]+o.add[b])
				if lx == li && ly == lj {
					best = min(best, fd[(x-1)*width+y-1]+o.rename(a, b))
					o.setDist(a, b, best)
				} else {
					best = min(best, fd[(lx-li)*width+(ly-lj)]+o.dist(a, b))
				}
				fd[x*width+y] = best
			}
		}
		o.c.cells += (rows - 1) * (width - 1)
	}
	return nil
}

// forestTable addresses distances against the forests of one subtree of the
// other tree. S(L, R) holds the nodes with preorder index at least L and
// postorder index at most R; L runs over lLo..lHi+1 and R over rLo-1..rHi,
// the extra values standing for the empty forest.
type forestTable struct {
	t          *indexedTree
	lLo, lHi   int
	rLo, rHi   int
	width      int
	insertions []int // cost of adding S(L, R) for the current R
}

func newForestTable(t *indexedTree, w int) *forestTable {
	n := t.size[w]
	return &forestTable{
		t:          t,
		lLo:        t.pre[w],
		lHi:        t.pre[w] + n - 1,
		rLo:        w - n + 1,
		rHi:        w,
		width:      n + 1,
		insertions: make([]int, n+1),
	}
}

func (f *forestTable) index(l, r int) int {
	return (l-f.lLo)*f.width + (r - f.rLo + 1)
}

func (f *forestTable) empty(l, r int) bool {
	return r < f.rLo || l > f.lHi || f.t.maxPre[r] < l
}

// fillInsertions computes the cost of adding S(L, R) for every L
func (f *forestTable) fillInsertions(r int, add []int) {
	n := f.width - 1
	f.insertions[n] = 0
	for l := f.lHi; l >= f.lLo; l-- {
		f.insertions[l-f.lLo] = f.insertions[l-f.lLo+1]
		if b := f.t.atPre[l]; b <= r {
			f.insertions[l-f.lLo] += add[b]
		}
	}
}

// generalPath handles a heavy path of subtree v against subtree w. Walking
// the path upwards, the current table holds the distances between the
// forest below the path node and every forest S(L, R) of w. Sibling
// subtrees are added one node at a time, from the left for siblings left
// of the path and from the right otherwise, before the path node closes
// the forest into a tree.
func (o *orientation) generalPath(v, w int) error {
	f := newForestTable(o.other, w)
	size := f.width * f.width
	prev, cur := make([]int, size), make([]int, size)
	path := o.path.path(v, heavyPath)

	for step := len(path) - 1; step >= 0; step-- {
		if err := o.c.ctx.Err(); err != nil {
			return err
		}

		x := path[step]
		if step == len(path)-1 {
			for r := f.rLo - 1; r <= f.rHi; r++ {
				if r >= f.rLo {
					f.fillInsertions(r, o.add)
				}
				for l := f.lLo; l <= f.lHi+1; l++ {
					prev[f.index(l, r)] = 0
					if r >= f.rLo {
						prev[f.index(l, r)] = f.insertions[l-f.lLo]
					}
				}
			}
		} else {
			below := path[step+1]
			children := o.path.children[x]
			at := 0
			for children[at] != below {
				at++
			}

			rest := o.removeSubtree[below]
			for _, sibling := range children[at+1:] {
				o.addRight(f, sibling, cur, rest)
				rest += o.removeSubtree[sibling]
			}
			for k := at - 1; k >= 0; k-- {
				o.addLeft(f, children[k], cur, rest)
				rest += o.removeSubtree[children[k]]
			}
			prev, cur = cur, prev
		}

		o.treeRow(f, x, prev, cur)
		for y := f.rLo; y <= f.rHi; y++ {
			o.setDist(x, y, cur[f.index(o.other.pre[y], y)])
		}
	}
	return nil
}

// treeRow fills next with the distances between the tree rooted at path
// node x and every forest, prev holding them for the forest of x's children
func (o *orientation) treeRow(f *forestTable, x int, prev, next []int) {
	other := o.other
	removeNode, removeTree := o.remove[x], o.removeSubtree[x]

	for r := f.rLo - 1; r <= f.rHi; r++ {
		if r >= f.rLo {
			f.fillInsertions(r, o.add)
		}
		for l := f.lHi + 1; l >= f.lLo; l-- {
			at := f.index(l, r)
			if f.empty(l, r) {
				next[at] = removeTree
				continue
			}
			b := other.atPre[l]
			if b > r {
				next[at] = next[f.index(l+1, r)]
				continue
			}

			best := min(prev[at]+removeNode, next[f.index(l+1, r)]+o.add[b])
			if after := l + other.size[b]; f.empty(after, r) {
				best = min(best, prev[f.index(l+1, r)]+o.rename(x, b))
			} else {
				best = min(best, f.insertions[after-f.lLo]+next[f.index(l, b)])
			}
			next[at] = best
		}
	}
	o.c.cells += (f.width - 1) * (f.width - 1)
}

// addLeft prepends subtree t to the forest held in cur, one node at a time
// in preorder. rest is the removal cost of the forest already in cur.
func (o *orientation) addLeft(f *forestTable, t int, cur []int, rest int) {
	p, other := o.path, o.other
	s := p.size[t]
	base := p.pre[t]
	suffix := make([]int, s+1)
	for k := s - 1; k >= 0; k-- {
		suffix[k] = suffix[k+1] + o.remove[p.atPre[base+k]]
	}

	w := f.width
	rows := make([]int, (s+1)*w)
	for r := f.rLo - 1; r <= f.rHi; r++ {
		for l := f.lLo; l <= f.lHi+1; l++ {
			rows[s*w+l-f.lLo] = cur[f.index(l, r)]
		}
		for k := s - 1; k >= 0; k-- {
			a := p.atPre[base+k]
			for l := f.lHi + 1; l >= f.lLo; l-- {
				at := k*w + l - f.lLo
				if f.empty(l, r) {
					rows[at] = suffix[k] + rest
					continue
				}
				b := other.atPre[l]
				if b > r {
					rows[at] = rows[at+1]
					continue
				}
				rows[at] = min(
					rows[at+w]+o.remove[a],
					rows[at+1]+o.add[b],
					rows[(k+p.size[a])*w+l+other.size[b]-f.lLo]+o.dist(a, b),
				)
			}
		}
		for l := f.lLo; l <= f.lHi+1; l++ {
			cur[f.index(l, r)] = rows[l-f.lLo]
		}
	}
	o.c.cells += s * (w - 1) * (w - 1)
}

// addRight appends subtree t to the forest held in cur, one node at a time
// in mirrored preorder
func (o *orientation) addRight(f *forestTable, t int, cur []int, rest int) {
	p, other := o.path, o.other
	s := p.size[t]
	base := p.mpre[t]
	suffix := make([]int, s+1)
	for k := s - 1; k >= 0; k-- {
		suffix[k] = suffix[k+1] + o.remove[p.atMpre[base+k]]
	}

	w := f.width
	rows := make([]int, (s+1)*w)
	for l := f.lLo; l <= f.lHi+1; l++ {
		for r := f.rLo - 1; r <= f.rHi; r++ {
			rows[s*w+r-f.rLo+1] = cur[f.index(l, r)]
		}
		for k := s - 1; k >= 0; k-- {
			a := p.atMpre[base+k]
			for r := f.rLo - 1; r <= f.rHi; r++ {
				at := k*w + r - f.rLo + 1
				if f.empty(l, r) {
					rows[at] = suffix[k] + rest
					continue
				}
				if other.pre[r] < l {
					rows[at] = rows[at-1]
					continue
				}
				rows[at] = min(
					rows[at+w]+o.remove[a],
					rows[at-1]+o.add[r],
					rows[(k+p.size[a])*w+r-other.size[r]-f.rLo+1]+o.dist(a, r),
				)
			}
		}
		for r := f.rLo - 1; r <= f.rHi; r++ {
			cur[f.index(l, r)] = rows[r-f.rLo+1]
		}
	}
	o.c.cells += s * (w - 1) * (w - 1)
}
