package model

// ChainChanges is the set of blocks leaving and joining a chain when
// moving its tip. Removed is ordered from the old tip downwards, Added from
// the common ancestor upwards.
type ChainChanges struct {
	CommonAncestor *BlockNode
	Removed        []*BlockNode
	Added          []*BlockNode
}

// ChainTraversal walks the block tree
type ChainTraversal interface {
	CommonAncestor(a, b *BlockNode) *BlockNode
	ChainChanges(from, to *BlockNode) *ChainChanges
	Window(tip *BlockNode, size uint64) []*BlockNode
}
