package contextstore

import (
	"sort"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/pkg/errors"
)

type blockIndex struct {
	genesisBlock *externalapi.LocalBlock
	genesisWork  *uint256.Int

	genesis       *model.BlockNode
	nodes         map[externalapi.DomainHash]*model.BlockNode
	selectedTip   *model.BlockNode
	selectedChain []*model.BlockNode
	candidates    map[externalapi.DomainHash]*model.BlockNode
	endorsements  map[externalapi.DomainHash]*model.BlockNode
	nextArrival   uint64
}

// NewBlockIndex instantiates a new BlockIndex holding only the genesis block
func NewBlockIndex(genesisBlock *externalapi.LocalBlock, genesisWork *uint256.Int) model.BlockIndex {
	bi := &blockIndex{
		genesisBlock: genesisBlock,
		genesisWork:  genesisWork.Clone(),
	}
	bi.Reset()
	return bi
}

func (bi *blockIndex) Reset() {
	bi.genesis = &model.BlockNode{
		Ref:            bi.genesisBlock.HeaderRef.Clone(),
		CumulativeWork: bi.genesisWork.Clone(),
		Arrival:        0,
	}
	bi.nodes = map[externalapi.DomainHash]*model.BlockNode{*bi.genesis.Hash(): bi.genesis}
	bi.candidates = map[externalapi.DomainHash]*model.BlockNode{*bi.genesis.Hash(): bi.genesis}
	bi.endorsements = make(map[externalapi.DomainHash]*model.BlockNode)
	bi.selectedTip = bi.genesis
	bi.selectedChain = []*model.BlockNode{bi.genesis}
	bi.nextArrival = 1
}

func (bi *blockIndex) Genesis() *model.BlockNode {
	return bi.genesis
}

func (bi *blockIndex) Lookup(hash *externalapi.DomainHash) (*model.BlockNode, bool) {
	node, ok := bi.nodes[*hash]
	return node, ok
}

func (bi *blockIndex) Len() int {
	return len(bi.nodes)
}

// AddBlock connects a block to its parent. The parent must be known and the
// block's height must follow it.
func (bi *blockIndex) AddBlock(block *externalapi.LocalBlock, cumulativeWork *uint256.Int) (*model.BlockNode, error) {
	if _, exists := bi.nodes[*block.Hash]; exists {
		return nil, errors.Errorf("block %s is already in the block index", block.Hash)
	}
	if block.ParentHash == nil {
		return nil, ruleerrors.Errorf(ruleerrors.ErrBlockParentMissing,
			"block %s has no parent and is not the genesis block", block.HeaderRef)
	}
	parent, ok := bi.nodes[*block.ParentHash]
	if !ok {
		return nil, ruleerrors.Errorf(ruleerrors.ErrBlockParentMissing,
			"parent %s of block %s is unknown", block.ParentHash, block.HeaderRef)
	}
	if parent.Height()+1 != block.Height {
		return nil, ruleerrors.Errorf(ruleerrors.ErrBadBlockHeight,
			"block %s has height %d while its parent has height %d", block.Hash, block.Height, parent.Height())
	}

	node := &model.BlockNode{
		Ref:            block.HeaderRef.Clone(),
		Parent:         parent,
		CumulativeWork: cumulativeWork.Clone(),
		Arrival:        bi.nextArrival,
		IsPruned:       parent.IsPruned,
	}
	bi.nextArrival++

	parent.Children = append(parent.Children, node)
	bi.nodes[*node.Hash()] = node
	delete(bi.candidates, *parent.Hash())
	if !node.IsPruned {
		bi.candidates[*node.Hash()] = node
	}
	return node, nil
}

// RemoveSubtree removes the block with the given hash and all of its
// descendants. The selected chain must not pass through the removed block.
func (bi *blockIndex) RemoveSubtree(hash *externalapi.DomainHash) ([]*model.BlockNode, error) {
	root, ok := bi.nodes[*hash]
	if !ok {
		return nil, ruleerrors.Errorf(ruleerrors.ErrUnknownBlock, "block %s is not in the block index", hash)
	}
	if root == bi.genesis {
		return nil, errors.New("the genesis block cannot be removed")
	}
	if bi.IsInSelectedChain(root) {
		return nil, errors.Errorf("block %s is in the selected chain", root)
	}

	removed := []*model.BlockNode{}
	queue := []*model.BlockNode{root}
	for len(queue) > 0 {
		var current *model.BlockNode
		current, queue = queue[0], queue[1:]
		removed = append(removed, current)
		queue = append(queue, current.Children...)

		delete(bi.nodes, *current.Hash())
		delete(bi.candidates, *current.Hash())
		for _, endorsement := range current.Endorsements {
			delete(bi.endorsements, *pophashing.EndorsementID(endorsement))
		}
	}

	parent := root.Parent
	for i, child := range parent.Children {
		if child == root {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	root.Parent = nil
	if parent.IsTip() && !parent.IsPruned {
		bi.candidates[*parent.Hash()] = parent
	}
	return removed, nil
}

func (bi *blockIndex) SelectedTip() *model.BlockNode {
	return bi.selectedTip
}

// SetSelectedTip makes node the selected tip, updating the selected chain
// from the point where it diverges. The selected tip is always a candidate,
// even when it has children.
func (bi *blockIndex) SetSelectedTip(node *model.BlockNode) {
	previousTip := bi.selectedTip
	if previousTip != node && !previousTip.IsTip() {
		delete(bi.candidates, *previousTip.Hash())
	}
	bi.candidates[*node.Hash()] = node

	height := node.Height()
	newChain := bi.selectedChain
	if uint64(len(newChain)) > height+1 {
		newChain = newChain[:height+1]
	}
	for uint64(len(newChain)) < height+1 {
		newChain = append(newChain, nil)
	}

	for current := node; current != nil; current = current.Parent {
		if newChain[current.Height()] == current {
			break
		}
		current.IsPruned = false
		newChain[current.Height()] = current
	}
	bi.selectedChain = newChain
	bi.selectedTip = node
}

func (bi *blockIndex) IsInSelectedChain(node *model.BlockNode) bool {
	height := node.Height()
	return height < uint64(len(bi.selectedChain)) && bi.selectedChain[height] == node
}

func (bi *blockIndex) SelectedChainBlockAt(height uint64) (*model.BlockNode, bool) {
	if height >= uint64(len(bi.selectedChain)) {
		return nil, false
	}
	return bi.selectedChain[height], true
}

// Candidates returns the fork candidates ordered by arrival
func (bi *blockIndex) Candidates() []*model.BlockNode {
	candidates := make([]*model.BlockNode, 0, len(bi.candidates))
	for _, candidate := range bi.candidates {
		candidates = append(candidates, candidate)
	}
	sortByArrival(candidates)
	return candidates
}

// PruneCandidates drops the candidates that are outside the selected chain
// and more than depth blocks below the selected tip.
func (bi *blockIndex) PruneCandidates(depth uint64) []*model.BlockNode {
	tipHeight := bi.selectedTip.Height()
	if tipHeight <= depth {
		return nil
	}
	var pruned []*model.BlockNode
	for hash, candidate := range bi.candidates {
		if candidate.Height() >= tipHeight-depth || bi.IsInSelectedChain(candidate) {
			continue
		}
		candidate.IsPruned = true
		delete(bi.candidates, hash)
		pruned = append(pruned, candidate)
	}
	sortByArrival(pruned)
	return pruned
}

// RestorePrunedCandidates makes the pruned leaves that are no longer more
// than depth blocks below the selected tip candidates again. Their pruned
// ancestors are restored with them.
func (bi *blockIndex) RestorePrunedCandidates(depth uint64) []*model.BlockNode {
	tipHeight := bi.selectedTip.Height()
	var restored []*model.BlockNode
	for _, node := range bi.nodes {
		if !node.IsPruned || !node.IsTip() || node.Height()+depth < tipHeight {
			continue
		}
		for current := node; current != nil && current.IsPruned; current = current.Parent {
			current.IsPruned = false
		}
		bi.candidates[*node.Hash()] = node
		restored = append(restored, node)
	}
	sortByArrival(restored)
	return restored
}

// AddEndorsement records that the given block contains endorsement
func (bi *blockIndex) AddEndorsement(node *model.BlockNode, endorsement *externalapi.Endorsement) error {
	if !node.Hash().Equal(endorsement.ContainingBlock.Hash) {
		return errors.Errorf("%s is not contained in block %s", endorsement, node)
	}
	endorsementID := pophashing.EndorsementID(endorsement)
	if _, exists := bi.endorsements[*endorsementID]; exists {
		return ruleerrors.Errorf(ruleerrors.ErrDuplicateEndorsement, "endorsement %s is already known", endorsementID)
	}
	node.Endorsements = append(node.Endorsements, endorsement)
	bi.endorsements[*endorsementID] = node
	return nil
}

// RemoveEndorsement undoes AddEndorsement. Removing an endorsement the
// block does not contain does nothing.
func (bi *blockIndex) RemoveEndorsement(node *model.BlockNode, endorsement *externalapi.Endorsement) {
	endorsementID := pophashing.EndorsementID(endorsement)
	if bi.endorsements[*endorsementID] != node {
		return
	}
	delete(bi.endorsements, *endorsementID)
	for i, contained := range node.Endorsements {
		if pophashing.EndorsementID(contained).Equal(endorsementID) {
			node.Endorsements = append(node.Endorsements[:i], node.Endorsements[i+1:]...)
			break
		}
	}
}

func (bi *blockIndex) HasEndorsement(endorsementID *externalapi.DomainHash) bool {
	_, ok := bi.endorsements[*endorsementID]
	return ok
}

func (bi *blockIndex) EndorsementCount() int {
	return len(bi.endorsements)
}

// Blocks returns all blocks ordered by arrival, so that every block follows
// its parent
func (bi *blockIndex) Blocks() []*model.BlockNode {
	blocks := make([]*model.BlockNode, 0, len(bi.nodes))
	for _, node := range bi.nodes {
		blocks = append(blocks, node)
	}
	sortByArrival(blocks)
	return blocks
}

func sortByArrival(nodes []*model.BlockNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Arrival < nodes[j].Arrival
	})
}
