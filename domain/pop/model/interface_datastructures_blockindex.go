package model

import (
	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
)

// BlockIndex is the tree of known local blocks together with the currently
// selected chain and the set of fork candidates.
type BlockIndex interface {
	Genesis() *BlockNode
	Lookup(hash *externalapi.DomainHash) (*BlockNode, bool)
	AddBlock(block *externalapi.LocalBlock, cumulativeWork *uint256.Int) (*BlockNode, error)
	RemoveSubtree(hash *externalapi.DomainHash) ([]*BlockNode, error)

	SelectedTip() *BlockNode
	SetSelectedTip(node *BlockNode)
	IsInSelectedChain(node *BlockNode) bool
	SelectedChainBlockAt(height uint64) (*BlockNode, bool)

	Candidates() []*BlockNode
	PruneCandidates(depth uint64) []*BlockNode
	RestorePrunedCandidates(depth uint64) []*BlockNode

	AddEndorsement(node *BlockNode, endorsement *externalapi.Endorsement) error
	RemoveEndorsement(node *BlockNode, endorsement *externalapi.Endorsement)
	HasEndorsement(endorsementID *externalapi.DomainHash) bool
	EndorsementCount() int

	Blocks() []*BlockNode
	Len() int
	Reset()
}
