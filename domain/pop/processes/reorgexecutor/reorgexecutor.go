package reorgexecutor

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/infrastructure/logger"
)

// reorgExecutor applies chain changes to the endorsement index
type reorgExecutor struct {
	blockIndex         model.BlockIndex
	endorsementIndex   model.EndorsementIndex
	chainTraversal     model.ChainTraversal
	forkSelector       model.ForkSelector
	popScoreCalculator model.PopScoreCalculator
}

// New instantiates a new ReorgExecutor
func New(
	blockIndex model.BlockIndex,
	endorsementIndex model.EndorsementIndex,
	chainTraversal model.ChainTraversal,
	forkSelector model.ForkSelector,
	popScoreCalculator model.PopScoreCalculator) model.ReorgExecutor {

	return &reorgExecutor{
		blockIndex:         blockIndex,
		endorsementIndex:   endorsementIndex,
		chainTraversal:     chainTraversal,
		forkSelector:       forkSelector,
		popScoreCalculator: popScoreCalculator,
	}
}

type undoOperation uint8

const (
	undoInsert undoOperation = iota
	undoRemove
)

type undoEntry struct {
	operation   undoOperation
	endorsement *externalapi.Endorsement
}

// undoLog records every index mutation of a reorg so it can be reverted
type undoLog struct {
	entries     []undoEntry
	previousTip *model.BlockNode
}

func (ul *undoLog) recordInsert(endorsement *externalapi.Endorsement) {
	ul.entries = append(ul.entries, undoEntry{operation: undoInsert, endorsement: endorsement})
}

func (ul *undoLog) recordRemove(endorsement *externalapi.Endorsement) {
	ul.entries = append(ul.entries, undoEntry{operation: undoRemove, endorsement: endorsement})
}

// ReorganizeTo moves the selected tip to target. After the move the fork
// selector must agree that target is the best candidate; if it does not,
// every change is reverted and ErrReorgInvariantViolation is returned.
func (re *reorgExecutor) ReorganizeTo(target *model.BlockNode) (*model.ChainChanges, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ReorganizeTo")
	defer onEnd()

	previousTip := re.blockIndex.SelectedTip()
	changes := re.chainTraversal.ChainChanges(previousTip, target)
	log.Debugf("Reorganizing from %s to %s: %d blocks removed, %d added, common ancestor %s",
		previousTip, target, len(changes.Removed), len(changes.Added), changes.CommonAncestor)

	undo := re.apply(changes, target)

	best, err := re.forkSelector.SelectBest(re.blockIndex.Candidates())
	if err != nil {
		re.rollback(undo)
		return nil, err
	}
	if best != target {
		re.rollback(undo)
		return nil, ruleerrors.Errorf(ruleerrors.ErrReorgInvariantViolation,
			"after reorganizing to %s the fork selector prefers %s", target, best)
	}
	return changes, nil
}

func (re *reorgExecutor) apply(changes *model.ChainChanges, target *model.BlockNode) *undoLog {
	undo := &undoLog{previousTip: re.blockIndex.SelectedTip()}

	for _, block := range changes.Removed {
		for _, endorsement := range block.Endorsements {
			if re.endorsementIndex.Remove(endorsement) {
				undo.recordRemove(endorsement)
			}
		}
	}
	for _, block := range changes.Added {
		for _, endorsement := range block.Endorsements {
			if re.endorsementIndex.Insert(endorsement) {
				undo.recordInsert(endorsement)
			}
		}
	}
	re.blockIndex.SetSelectedTip(target)
	re.popScoreCalculator.InvalidateCache()
	return undo
}

func (re *reorgExecutor) rollback(undo *undoLog) {
	log.Warnf("Rolling back %d endorsement index changes, restoring tip %s", len(undo.entries), undo.previousTip)
	for i := len(undo.entries) - 1; i >= 0; i-- {
		entry := undo.entries[i]
		switch entry.operation {
		case undoInsert:
			re.endorsementIndex.Remove(entry.endorsement)
		case undoRemove:
			re.endorsementIndex.Insert(entry.endorsement)
		}
	}
	re.blockIndex.SetSelectedTip(undo.previousTip)
	re.popScoreCalculator.InvalidateCache()
}
