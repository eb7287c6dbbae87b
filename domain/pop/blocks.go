package pop

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/infrastructure/logger"
	"github.com/pkg/errors"
)

// OnBlockConnected adds a block accepted by the base chain to the block
// index and re-runs chain selection. Connecting a known block does nothing.
func (e *engine) OnBlockConnected(block *externalapi.LocalBlock) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "OnBlockConnected")
	defer onEnd()

	e.lock.Lock()
	defer e.lock.Unlock()

	err := e.checkNotHalted()
	if err != nil {
		return err
	}
	if _, ok := e.blockIndex.Lookup(block.Hash); ok {
		log.Debugf("Block %s is already connected", block.HeaderRef)
		return nil
	}

	if block.ParentHash == nil {
		return ruleerrors.Errorf(ruleerrors.ErrBlockParentMissing,
			"block %s has no parent and is not the genesis block", block.HeaderRef)
	}
	if _, ok := e.blockIndex.Lookup(block.ParentHash); !ok {
		return ruleerrors.Errorf(ruleerrors.ErrBlockParentMissing,
			"parent %s of block %s is unknown", block.ParentHash, block.HeaderRef)
	}

	err = e.baseChain.IsValidHeader(block)
	if err != nil {
		return ruleerrors.Wrap(ruleerrors.ErrInvalidBaseHeader, err)
	}
	cumulativeWork, err := e.baseChain.CumulativeWork(block)
	if err != nil {
		return err
	}
	node, err := e.blockIndex.AddBlock(block, cumulativeWork)
	if err != nil {
		return err
	}
	e.popScoreCalculator.InvalidateCache()
	log.Debugf("Connected block %s", node)

	err = e.selectAndReorganize()
	if err != nil {
		return err
	}

	pruned := e.blockIndex.PruneCandidates(e.params.ReorgSafetyDepth)
	if len(pruned) > 0 {
		log.Debugf("Pruned %d fork candidates deeper than %d blocks", len(pruned), e.params.ReorgSafetyDepth)
	}
	return nil
}

// OnBlockDisconnected removes a block and all of its descendants, together
// with the endorsements they contain, and re-runs chain selection
func (e *engine) OnBlockDisconnected(blockHash *externalapi.DomainHash) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "OnBlockDisconnected")
	defer onEnd()

	e.lock.Lock()
	defer e.lock.Unlock()

	err := e.checkNotHalted()
	if err != nil {
		return err
	}
	node, err := e.lookupBlock(blockHash)
	if err != nil {
		return err
	}
	if node == e.blockIndex.Genesis() {
		return errors.New("the genesis block cannot be disconnected")
	}

	if e.blockIndex.IsInSelectedChain(node) {
		selectedTip := e.blockIndex.SelectedTip()
		var leaving []*model.BlockNode
		for current := selectedTip; current != node.Parent; current = current.Parent {
			leaving = append(leaving, current)
		}
		e.unindexEndorsementsOf(leaving)
		e.blockIndex.SetSelectedTip(node.Parent)
		log.Debugf("Selected tip moved from %s to %s since %s was disconnected",
			selectedTip, node.Parent, node)
	}

	removed, err := e.blockIndex.RemoveSubtree(blockHash)
	if err != nil {
		return err
	}
	e.popScoreCalculator.InvalidateCache()
	log.Debugf("Disconnected %d blocks rooted at %s", len(removed), node)

	restored := e.blockIndex.RestorePrunedCandidates(e.params.ReorgSafetyDepth)
	if len(restored) > 0 {
		log.Debugf("Restored %d pruned fork candidates", len(restored))
	}

	return e.selectAndReorganize()
}
