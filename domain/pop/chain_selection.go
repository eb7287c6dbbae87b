package pop

import (
	"fmt"

	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/infrastructure/logger"
	"github.com/pkg/errors"
)

// selectAndReorganize moves the selected tip to the best candidate, if it
// is not the selected tip already
func (e *engine) selectAndReorganize() error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "selectAndReorganize")
	defer onEnd()

	best, err := e.forkSelector.SelectBest(e.blockIndex.Candidates())
	if err != nil {
		return err
	}
	previousTip := e.blockIndex.SelectedTip()
	if best == previousTip {
		return nil
	}

	changes, err := e.reorgExecutor.ReorganizeTo(best)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrReorgInvariantViolation) {
			e.halted = true
			log.Criticalf("Halting chain selection: %s", err)
		}
		return err
	}

	e.metrics.markReorg(len(changes.Removed))
	if len(changes.Removed) > 0 {
		log.Infof("Reorganized from %s to %s: %d blocks disconnected, %d connected, common ancestor %s",
			previousTip, best, len(changes.Removed), len(changes.Added), changes.CommonAncestor)
	} else {
		log.Debugf("Selected tip moved from %s to %s", previousTip, best)
	}
	log.Tracef("Disconnected blocks: %s", logger.NewLogClosure(func() string {
		return refsString(changes.Removed)
	}))
	return nil
}

func (e *engine) indexEndorsementsOf(blocks []*model.BlockNode) {
	for _, block := range blocks {
		for _, endorsement := range block.Endorsements {
			e.endorsementIndex.Insert(endorsement)
		}
	}
}

func (e *engine) unindexEndorsementsOf(blocks []*model.BlockNode) {
	for _, block := range blocks {
		for _, endorsement := range block.Endorsements {
			e.endorsementIndex.Remove(endorsement)
		}
	}
}

func refsString(blocks []*model.BlockNode) string {
	refs := make([]*externalapi.HeaderRef, len(blocks))
	for i, block := range blocks {
		refs[i] = block.Ref
	}
	return fmt.Sprintf("%s", refs)
}
