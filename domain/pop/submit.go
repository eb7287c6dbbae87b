package pop

import (
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/infrastructure/logger"
	"github.com/kaspanet/popd/util/panics"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// SubmitEndorsement validates the given payload, indexes the endorsement
// and re-runs chain selection. Resubmitting an already known endorsement
// succeeds without changing anything. A rejected payload leaves every
// store untouched.
func (e *engine) SubmitEndorsement(payload []byte) error {
	endorsement, err := e.endorsementValidator.ValidateInIsolation(payload)
	if err != nil {
		e.metrics.markRejected(err)
		return err
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	return e.submitEndorsementNoLock(endorsement)
}

// SubmitEndorsements submits a batch of payloads. Isolation checks run
// concurrently, after which the endorsements are submitted in order. The
// returned slice holds the result of every payload at its index.
func (e *engine) SubmitEndorsements(payloads [][]byte) []error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "SubmitEndorsements")
	defer onEnd()

	results := make([]error, len(payloads))
	endorsements := make([]*externalapi.Endorsement, len(payloads))

	group := &errgroup.Group{}
	group.SetLimit(e.submitWorkers)
	for i, payload := range payloads {
		i, payload := i, payload
		group.Go(panics.WrapGroupFunc(log, func() error {
			endorsements[i], results[i] = e.endorsementValidator.ValidateInIsolation(payload)
			return nil
		}))
	}
	_ = group.Wait()

	e.lock.Lock()
	defer e.lock.Unlock()

	for i, endorsement := range endorsements {
		if results[i] != nil {
			e.metrics.markRejected(results[i])
			continue
		}
		results[i] = e.submitEndorsementNoLock(endorsement)
	}
	return results
}

// SubmitEndorsementFromPeer submits payload and charges peerID for it if
// it is rejected
func (e *engine) SubmitEndorsementFromPeer(peerID string, payload []byte) error {
	err := e.SubmitEndorsement(payload)
	if err != nil {
		score, banned := e.misbehaviorTracker.Record(peerID, err)
		log.Debugf("Peer %s submitted an invalid endorsement (ban score %d, banned: %t): %s",
			peerID, score, banned, err)
	}
	return err
}

func (e *engine) submitEndorsementNoLock(endorsement *externalapi.Endorsement) error {
	err := e.checkNotHalted()
	if err != nil {
		return err
	}

	validated, err := e.endorsementValidator.ValidateInContext(endorsement)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrDuplicateEndorsement) {
			log.Debugf("Ignoring already known %s", endorsement)
			return nil
		}
		e.metrics.markRejected(err)
		log.Debugf("Rejected %s: %s", endorsement, err)
		log.Tracef("Rejected endorsement: %s", logger.Dump(endorsement))
		return err
	}

	containingBlock, err := e.lookupBlock(endorsement.ContainingBlock.Hash)
	if err != nil {
		return err
	}
	err = e.blockIndex.AddEndorsement(containingBlock, endorsement)
	if err != nil {
		return err
	}
	if len(validated.NewContext) > 0 {
		chain := e.contextStore.Chain(endorsement.Kind.EndorsingChain())
		added, err := chain.Add(validated.NewContext)
		if err != nil {
			e.blockIndex.RemoveEndorsement(containingBlock, endorsement)
			return err
		}
		log.Debugf("Stored %d new %s context headers, tip is now %s", added, chain.ID(), chain.Tip())
	}
	if e.blockIndex.IsInSelectedChain(containingBlock) {
		e.endorsementIndex.Insert(endorsement)
	}
	e.popScoreCalculator.InvalidateCache()
	e.metrics.markAccepted()
	log.Debugf("Accepted %s", endorsement)

	return e.selectAndReorganize()
}
