package model

import (
	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
)

// BlockNode represents a local block within the block index. Nodes form a
// tree rooted at the genesis block.
type BlockNode struct {
	Ref      *externalapi.HeaderRef
	Parent   *BlockNode
	Children []*BlockNode

	// CumulativeWork is the total work of the chain ending at this block,
	// as reported by the base chain validator.
	CumulativeWork *uint256.Int

	// Arrival is the order in which the block was connected. Lower values
	// arrived earlier.
	Arrival uint64

	// Endorsements are the endorsements contained in this block, in the
	// order they were accepted.
	Endorsements []*externalapi.Endorsement

	// IsPruned is set on blocks that stopped being fork candidates because
	// they fell too deep below the selected tip.
	IsPruned bool
}

// Hash returns the hash of the block
func (node *BlockNode) Hash() *externalapi.DomainHash {
	return node.Ref.Hash
}

// Height returns the height of the block
func (node *BlockNode) Height() uint64 {
	return node.Ref.Height
}

// Ancestor returns the ancestor of node at the given height, or nil if
// height is above node's height.
func (node *BlockNode) Ancestor(height uint64) *BlockNode {
	if height > node.Height() {
		return nil
	}
	current := node
	for current != nil && current.Height() > height {
		current = current.Parent
	}
	return current
}

// IsAncestorOf returns whether node is an ancestor of other. A node is not
// its own ancestor.
func (node *BlockNode) IsAncestorOf(other *BlockNode) bool {
	if node.Height() >= other.Height() {
		return false
	}
	return other.Ancestor(node.Height()) == node
}

// IsTip returns whether node has no children
func (node *BlockNode) IsTip() bool {
	return len(node.Children) == 0
}

func (node *BlockNode) String() string {
	return node.Ref.String()
}
