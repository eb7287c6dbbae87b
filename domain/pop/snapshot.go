package pop

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/infrastructure/logger"
	"github.com/pkg/errors"
)

// Snapshot returns the full state of the engine
func (e *engine) Snapshot() *model.Snapshot {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.snapshotNoLock()
}

func (e *engine) snapshotNoLock() *model.Snapshot {
	blocks := e.blockIndex.Blocks()
	snapshot := &model.Snapshot{
		Blocks:              make([]*model.SnapshotBlock, len(blocks)),
		SelectedTip:         e.blockIndex.SelectedTip().Hash(),
		IntermediateContext: e.contextStore.Chain(externalapi.IntermediateChain).Headers(),
		SecurityContext:     e.contextStore.Chain(externalapi.SecurityChain).Headers(),
		Commitment:          e.endorsementIndex.Commitment(),
	}
	for i, node := range blocks {
		block := &externalapi.LocalBlock{HeaderRef: node.Ref.Clone()}
		if node.Parent != nil {
			block.ParentHash = node.Parent.Hash()
		}
		snapshot.Blocks[i] = &model.SnapshotBlock{
			Block:          block,
			CumulativeWork: node.CumulativeWork.Clone(),
			Arrival:        node.Arrival,
		}
		for _, endorsement := range node.Endorsements {
			snapshot.Endorsements = append(snapshot.Endorsements, endorsement.Clone())
		}
	}
	return snapshot
}

// RestoreSnapshot replaces the state of the engine with snapshot. If the
// snapshot is inconsistent the previous state is kept and an error is
// returned. A successful restore resumes halted chain selection.
func (e *engine) RestoreSnapshot(snapshot *model.Snapshot) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "RestoreSnapshot")
	defer onEnd()

	e.lock.Lock()
	defer e.lock.Unlock()

	previous := e.snapshotNoLock()
	err := e.restoreSnapshotNoLock(snapshot)
	if err != nil {
		log.Warnf("Failed restoring snapshot, keeping the previous state: %s", err)
		restoreErr := e.restoreSnapshotNoLock(previous)
		if restoreErr != nil {
			return errors.Wrapf(restoreErr, "failed reverting to the previous state after: %s", err)
		}
		return err
	}

	e.halted = false
	log.Infof("Restored a snapshot of %d blocks and %d endorsements with selected tip %s",
		len(snapshot.Blocks), len(snapshot.Endorsements), e.blockIndex.SelectedTip())
	return nil
}

func (e *engine) restoreSnapshotNoLock(snapshot *model.Snapshot) error {
	e.contextStore.Reset()
	e.blockIndex.Reset()
	e.endorsementIndex.Clear()
	e.popScoreCalculator.InvalidateCache()

	genesis := e.blockIndex.Genesis()
	for _, snapshotBlock := range snapshot.Blocks {
		if snapshotBlock.Block.Hash.Equal(genesis.Hash()) {
			continue
		}
		_, err := e.blockIndex.AddBlock(snapshotBlock.Block, snapshotBlock.CumulativeWork)
		if err != nil {
			return err
		}
	}

	for chainID, headers := range map[externalapi.ContextChainID][]*externalapi.ContextHeader{
		externalapi.IntermediateChain: snapshot.IntermediateContext,
		externalapi.SecurityChain:     snapshot.SecurityContext,
	} {
		_, err := e.contextStore.Chain(chainID).Add(headers)
		if err != nil {
			return err
		}
	}

	for _, endorsement := range snapshot.Endorsements {
		containingBlock, ok := e.blockIndex.Lookup(endorsement.ContainingBlock.Hash)
		if !ok {
			return ruleerrors.Errorf(ruleerrors.ErrContainingBlockMissing,
				"containing block of %s is not in the snapshot", endorsement)
		}
		err := e.blockIndex.AddEndorsement(containingBlock, endorsement)
		if err != nil {
			return err
		}
	}

	selectedTip, err := e.lookupBlock(snapshot.SelectedTip)
	if err != nil {
		return err
	}
	var selectedChain []*model.BlockNode
	for current := selectedTip; current != nil; current = current.Parent {
		selectedChain = append(selectedChain, current)
	}
	e.indexEndorsementsOf(selectedChain)
	e.blockIndex.SetSelectedTip(selectedTip)
	e.blockIndex.PruneCandidates(e.params.ReorgSafetyDepth)
	e.popScoreCalculator.InvalidateCache()

	commitment := e.endorsementIndex.Commitment()
	if !commitment.Equal(snapshot.Commitment) {
		return ruleerrors.Errorf(ruleerrors.ErrSnapshotCommitmentMismatch,
			"the snapshot commits to %s but its endorsements hash to %s", snapshot.Commitment, commitment)
	}
	return nil
}

// Flush writes the current state to the snapshot store
func (e *engine) Flush() error {
	if e.snapshotStore == nil {
		return errors.New("the engine has no snapshot store")
	}
	return e.snapshotStore.Save(e.Snapshot())
}
