package chaintraversal

import (
	"github.com/kaspanet/popd/domain/pop/model"
)

// chainTraversal exposes methods for traversing the block tree
type chainTraversal struct{}

// New instantiates a new ChainTraversal
func New() model.ChainTraversal {
	return &chainTraversal{}
}

// CommonAncestor returns the highest block that is in the chains of both a
// and b. A block is in its own chain.
func (ct *chainTraversal) CommonAncestor(a, b *model.BlockNode) *model.BlockNode {
	if a.Height() > b.Height() {
		a = a.Ancestor(b.Height())
	} else {
		b = b.Ancestor(a.Height())
	}
	for a != b {
		a, b = a.Parent, b.Parent
	}
	return a
}

// ChainChanges returns the blocks that leave and join the chain when its
// tip moves from `from` to `to`.
func (ct *chainTraversal) ChainChanges(from, to *model.BlockNode) *model.ChainChanges {
	commonAncestor := ct.CommonAncestor(from, to)

	// Walk down from the old tip until we reach the common ancestor. Note
	// that this slice will be empty if from is an ancestor of to
	var removed []*model.BlockNode
	for current := from; current != commonAncestor; current = current.Parent {
		removed = append(removed, current)
	}

	// Walk down from the new tip down to the common ancestor
	var added []*model.BlockNode
	for current := to; current != commonAncestor; current = current.Parent {
		added = append(added, current)
	}

	// Reverse the order of `added` so that it's sorted from low to high
	for i, j := 0, len(added)-1; i < j; i, j = i+1, j-1 {
		added[i], added[j] = added[j], added[i]
	}

	return &model.ChainChanges{
		CommonAncestor: commonAncestor,
		Removed:        removed,
		Added:          added,
	}
}

// Window returns the last `size` blocks of the chain ending at tip, lowest
// first. Chains shorter than size return all their blocks.
func (ct *chainTraversal) Window(tip *model.BlockNode, size uint64) []*model.BlockNode {
	windowStart := WindowStart(tip.Height(), size)
	window := make([]*model.BlockNode, tip.Height()-windowStart+1)
	current := tip
	for i := len(window) - 1; i >= 0; i-- {
		window[i] = current
		current = current.Parent
	}
	return window
}

// WindowStart returns the height of the lowest block of a window of size
// blocks ending at tipHeight
func WindowStart(tipHeight, size uint64) uint64 {
	if size == 0 {
		return tipHeight + 1
	}
	if tipHeight+1 <= size {
		return 0
	}
	return tipHeight + 1 - size
}
