// Package perm enumerates the orderings of a row that keep groups of
// elements together.
//
// A [Tree] is a PQ-tree over the elements 0..n-1. It represents every
// permutation in which each reduced subset appears as one contiguous run.
// P-nodes allow their children in any order, Q-nodes only forward or
// reversed. The layout uses it to keep couples and siblings side by side.
package perm

import "slices"

type shape uint8

const (
	leaf shape = iota
	pnode
	qnode
)

type mark uint8

const (
	unmarked mark = iota
	empty
	full
	partial
)

type node struct {
	shape    shape
	value    int
	children []*node
	mark     mark
}

// Tree is a PQ-tree. It is not safe for concurrent use; use [Tree.Clone] to
// explore alternatives.
type Tree struct {
	root   *node
	leaves []*node
}

// New returns the unconstrained tree over n elements: all n! orderings.
func New(n int) *Tree {
	if n <= 0 {
		return &Tree{}
	}
	leaves := make([]*node, n)
	for i := range leaves {
		leaves[i] = &node{shape: leaf, value: i}
	}
	if n == 1 {
		return &Tree{root: leaves[0], leaves: leaves}
	}
	return &Tree{root: &node{shape: pnode, children: slices.Clone(leaves)}, leaves: leaves}
}

// Len returns the number of elements.
func (t *Tree) Len() int { return len(t.leaves) }

// Clone returns an independent copy.
func (t *Tree) Clone() *Tree {
	if t.root == nil {
		return &Tree{}
	}
	out := &Tree{leaves: make([]*node, len(t.leaves))}
	var clone func(n *node) *node
	clone = func(n *node) *node {
		c := &node{shape: n.shape, value: n.value, mark: n.mark}
		if n.shape == leaf {
			out.leaves[n.value] = c
			return c
		}
		c.children = make([]*node, len(n.children))
		for i, ch := range n.children {
			c.children[i] = clone(ch)
		}
		return c
	}
	out.root = clone(t.root)
	return out
}

// Reduce restricts the tree to orderings where the elements of set are
// contiguous. It returns false when that contradicts earlier reductions;
// the tree must then be discarded, so callers reduce a [Tree.Clone] when
// the set is optional. Out-of-range elements are ignored.
func (t *Tree) Reduce(set []int) bool {
	if t.root == nil || len(set) <= 1 || len(set) >= len(t.leaves) {
		return true
	}
	clearMarks(t.root)
	for _, e := range set {
		if e >= 0 && e < len(t.leaves) {
			t.leaves[e].mark = full
		}
	}
	if bubble(t.root) == empty {
		return true
	}
	return reduce(pertinent(t.root), true)
}

func clearMarks(n *node) {
	n.mark = unmarked
	for _, c := range n.children {
		clearMarks(c)
	}
}

// bubble labels every inner node full, empty or partial from its leaves.
func bubble(n *node) mark {
	if n.shape == leaf {
		if n.mark == unmarked {
			n.mark = empty
		}
		return n.mark
	}
	nfull, npartial := 0, 0
	for _, c := range n.children {
		switch bubble(c) {
		case full:
			nfull++
		case partial:
			npartial++
		}
	}
	switch {
	case nfull == len(n.children):
		n.mark = full
	case nfull == 0 && npartial == 0:
		n.mark = empty
	default:
		n.mark = partial
	}
	return n.mark
}

// pertinent returns the deepest node whose subtree holds every full leaf.
func pertinent(n *node) *node {
	for n.shape != leaf && n.mark == partial {
		var next *node
		marked := 0
		for _, c := range n.children {
			if c.mark != empty {
				next = c
				marked++
			}
		}
		if marked != 1 || next.mark != partial {
			break
		}
		n = next
	}
	return n
}

// reduce applies the templates to n. Below the pertinent root a partial
// node must end up as a Q-node with its full leaves at one end.
func reduce(n *node, root bool) bool {
	if n.mark != partial {
		return true
	}
	for _, c := range n.children {
		if c.mark == partial && !reduce(c, false) {
			return false
		}
	}
	switch n.shape {
	case pnode:
		return reduceP(n, root)
	case qnode:
		return reduceQ(n, root)
	}
	return true
}

func reduceP(n *node, root bool) bool {
	var fulls, empties, partials []*node
	for _, c := range n.children {
		switch c.mark {
		case full:
			fulls = append(fulls, c)
		case partial:
			partials = append(partials, c)
		default:
			empties = append(empties, c)
		}
	}
	if len(partials) > 2 || (!root && len(partials) > 1) {
		return false
	}

	if !root {
		// empties | partial child | fulls, as one sequence
		var seq []*node
		if g := group(empties, empty); g != nil {
			seq = append(seq, g)
		}
		if len(partials) == 1 {
			seq = append(seq, orient(partials[0])...)
		}
		if g := group(fulls, full); g != nil {
			seq = append(seq, g)
		}
		n.shape, n.children = qnode, seq
		return true
	}

	switch len(partials) {
	case 0:
		if len(fulls) > 1 && len(empties) > 0 {
			replace(n, fulls, group(fulls, full))
		}
	case 1:
		q := partials[0]
		q.children = orient(q)
		if g := group(fulls, full); g != nil {
			q.children = append(q.children, g)
		}
		replace(n, fulls, nil)
	case 2:
		seq := orient(partials[0])
		if g := group(fulls, full); g != nil {
			seq = append(seq, g)
		}
		tail := orient(partials[1])
		slices.Reverse(tail)
		seq = append(seq, tail...)
		replace(n, append([]*node{partials[0], partials[1]}, fulls...), &node{shape: qnode, children: seq, mark: partial})
	}
	if len(n.children) == 1 {
		only := n.children[0]
		n.shape, n.children = only.shape, only.children
	}
	return true
}

func reduceQ(n *node, root bool) bool {
	lo, hi, npartial := -1, -1, 0
	for i, c := range n.children {
		if c.mark != empty {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
		if c.mark == partial {
			npartial++
		}
	}
	if lo < 0 {
		return true
	}
	if npartial > 2 || (!root && npartial > 1) {
		return false
	}

	// Splice partial children in, full side towards the run. A lone partial
	// child of a non-root node faces the nearer end instead.
	seq := make([]*node, 0, len(n.children))
	for i, c := range n.children {
		if c.mark != partial {
			seq = append(seq, c)
			continue
		}
		kids := orient(c)
		if (lo < hi && i == hi) || (lo == hi && i == 0 && len(n.children) > 1) {
			slices.Reverse(kids)
		}
		seq = append(seq, kids...)
	}
	if !contiguousRun(seq, root) {
		return false
	}
	n.children = seq
	return true
}

// contiguousRun checks the marks of seq: the full children form one run,
// which must touch an end unless the node is the pertinent root.
func contiguousRun(seq []*node, root bool) bool {
	first, last := -1, -1
	for i, c := range seq {
		if c.mark == full {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return false
	}
	for _, c := range seq[first : last+1] {
		if c.mark != full {
			return false
		}
	}
	return root || first == 0 || last == len(seq)-1
}

// orient returns the children of a reduced partial Q-node ordered from the
// empty end to the full end.
func orient(q *node) []*node {
	kids := slices.Clone(q.children)
	if kids[0].mark == full || kids[len(kids)-1].mark == empty {
		slices.Reverse(kids)
	}
	return kids
}

// group wraps kids in a new P-node; a single kid is returned as is.
func group(kids []*node, m mark) *node {
	switch len(kids) {
	case 0:
		return nil
	case 1:
		return kids[0]
	}
	return &node{shape: pnode, children: slices.Clone(kids), mark: m}
}

// replace swaps the listed children of n for r, at the position of the
// first of them. A nil r just removes them.
func replace(n *node, remove []*node, r *node) {
	out := make([]*node, 0, len(n.children))
	done := false
	for _, c := range n.children {
		if !slices.Contains(remove, c) {
			out = append(out, c)
		} else if !done && r != nil {
			out = append(out, r)
			done = true
		}
	}
	n.children = out
}

// Count returns the number of orderings the tree represents, capped at
// limit when limit > 0.
func (t *Tree) Count(limit int) int {
	if t.root == nil {
		return 1
	}
	c := count(t.root, limit)
	if limit > 0 {
		c = min(c, limit)
	}
	return c
}

func count(n *node, limit int) int {
	if n.shape == leaf {
		return 1
	}
	total := 1
	if n.shape == qnode {
		total = 2
	} else {
		for k := 2; k <= len(n.children); k++ {
			total = capMul(total, k, limit)
		}
	}
	for _, c := range n.children {
		total = capMul(total, count(c, limit), limit)
	}
	return total
}

func capMul(a, b, limit int) int {
	if limit > 0 && a > limit/b {
		return limit + 1
	}
	return a * b
}

// Each calls fn with every ordering until fn returns false and returns how
// many orderings it produced. The slice passed to fn is freshly allocated.
func (t *Tree) Each(fn func(order []int) bool) int {
	if t.root == nil {
		fn([]int{})
		return 1
	}
	n := 0
	walk(t.root, nil, func(order []int) bool {
		n++
		return fn(order)
	})
	return n
}

func walk(n *node, prefix []int, emit func([]int) bool) bool {
	if n.shape == leaf {
		return emit(append(slices.Clone(prefix), n.value))
	}
	return arrangements(n, func(children []*node) bool {
		return walkSeq(children, prefix, emit)
	})
}

func walkSeq(children []*node, prefix []int, emit func([]int) bool) bool {
	if len(children) == 0 {
		return emit(slices.Clone(prefix))
	}
	return walk(children[0], nil, func(head []int) bool {
		return walkSeq(children[1:], append(slices.Clone(prefix), head...), emit)
	})
}

// arrangements yields the child orders an inner node allows: forward and
// reversed for a Q-node, every permutation (Heap's algorithm) for a P-node.
func arrangements(n *node, fn func([]*node) bool) bool {
	kids := n.children
	if n.shape == qnode {
		if !fn(kids) {
			return false
		}
		if len(kids) < 2 {
			return true
		}
		rev := slices.Clone(kids)
		slices.Reverse(rev)
		return fn(rev)
	}
	if len(kids) < 2 {
		return fn(kids)
	}

	p := slices.Clone(kids)
	state := make([]int, len(p))
	if !fn(slices.Clone(p)) {
		return false
	}
	for i := 0; i < len(p); {
		if state[i] < i {
			if i%2 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			if !fn(slices.Clone(p)) {
				return false
			}
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return true
}
