package pop

import (
	"sync"

	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/domain/popconfig"
)

// Engine maintains the PoP-aware selected chain of the local node. All
// mutations are serialized; queries may run concurrently with each other.
type Engine interface {
	SubmitEndorsement(payload []byte) error
	SubmitEndorsements(payloads [][]byte) []error
	SubmitEndorsementFromPeer(peerID string, payload []byte) error

	OnBlockConnected(block *externalapi.LocalBlock) error
	OnBlockDisconnected(blockHash *externalapi.DomainHash) error

	CurrentBestTip() *externalapi.HeaderRef
	PopScore(blockHash *externalapi.DomainHash) (uint64, error)
	CompareForks(a, b *externalapi.DomainHash) (int, error)
	PopRewards(tipHash *externalapi.DomainHash) (externalapi.PopRewards, error)
	CheckPopPayouts(tipHash *externalapi.DomainHash, payouts externalapi.PopRewards) error
	LastKnownContextHeaders(chainID externalapi.ContextChainID, count int) []*externalapi.HeaderRef
	IndexCommitment() *externalapi.DomainHash

	BanScore(peerID string) uint32
	OnBan(callback func(peerID string, score uint32))

	Snapshot() *model.Snapshot
	RestoreSnapshot(snapshot *model.Snapshot) error
	Flush() error
}

type engine struct {
	lock   sync.RWMutex
	halted bool

	params        *popconfig.Params
	submitWorkers int

	baseChain     model.BaseChainValidator
	snapshotStore model.SnapshotStore
	metrics       *metrics

	contextStore     model.ContextStore
	blockIndex       model.BlockIndex
	endorsementIndex model.EndorsementIndex

	chainTraversal       model.ChainTraversal
	endorsementValidator model.EndorsementValidator
	popScoreCalculator   model.PopScoreCalculator
	forkSelector         model.ForkSelector
	reorgExecutor        model.ReorgExecutor
	payoutCalculator     model.PayoutCalculator
	misbehaviorTracker   model.MisbehaviorTracker
}

// CurrentBestTip returns the tip of the selected chain
func (e *engine) CurrentBestTip() *externalapi.HeaderRef {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.blockIndex.SelectedTip().Ref.Clone()
}

// PopScore returns the PopScore of the chain ending at the given block
func (e *engine) PopScore(blockHash *externalapi.DomainHash) (uint64, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	node, err := e.lookupBlock(blockHash)
	if err != nil {
		return 0, err
	}
	return e.popScoreCalculator.PopScore(node)
}

// CompareForks returns a positive number if the chain ending at a is
// preferred over the one ending at b, a negative number if b is preferred
// and zero if they are the same block
func (e *engine) CompareForks(a, b *externalapi.DomainHash) (int, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	nodeA, err := e.lookupBlock(a)
	if err != nil {
		return 0, err
	}
	nodeB, err := e.lookupBlock(b)
	if err != nil {
		return 0, err
	}
	return e.forkSelector.Compare(nodeA, nodeB)
}

// PopRewards returns the PoP payouts owed by the block that will follow tipHash
func (e *engine) PopRewards(tipHash *externalapi.DomainHash) (externalapi.PopRewards, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	tip, err := e.lookupBlock(tipHash)
	if err != nil {
		return nil, err
	}
	return e.payoutCalculator.PopRewards(tip)
}

// CheckPopPayouts verifies that payouts are exactly the PoP payouts owed by
// the block that follows tipHash
func (e *engine) CheckPopPayouts(tipHash *externalapi.DomainHash, payouts externalapi.PopRewards) error {
	e.lock.RLock()
	defer e.lock.RUnlock()

	tip, err := e.lookupBlock(tipHash)
	if err != nil {
		return err
	}
	return e.payoutCalculator.CheckPopPayouts(tip, payouts)
}

// LastKnownContextHeaders returns up to count of the highest headers of the
// given context chain, highest first
func (e *engine) LastKnownContextHeaders(chainID externalapi.ContextChainID, count int) []*externalapi.HeaderRef {
	if count <= 0 {
		return []*externalapi.HeaderRef{}
	}

	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.contextStore.Chain(chainID).LastKnownHeaders(count)
}

// IndexCommitment returns the commitment to the endorsements indexed for
// the selected chain. Nodes with the same selected chain and the same
// endorsements return the same commitment.
func (e *engine) IndexCommitment() *externalapi.DomainHash {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.endorsementIndex.Commitment()
}

// BanScore returns the current ban score of peerID
func (e *engine) BanScore(peerID string) uint32 {
	return e.misbehaviorTracker.Score(peerID)
}

// OnBan registers a callback that is called whenever a peer crosses the ban threshold
func (e *engine) OnBan(callback func(peerID string, score uint32)) {
	e.misbehaviorTracker.OnBan(callback)
}

func (e *engine) lookupBlock(blockHash *externalapi.DomainHash) (*model.BlockNode, error) {
	node, ok := e.blockIndex.Lookup(blockHash)
	if !ok {
		return nil, ruleerrors.Errorf(ruleerrors.ErrUnknownBlock, "block %s is not in the block index", blockHash)
	}
	return node, nil
}

func (e *engine) checkNotHalted() error {
	if e.halted {
		return ruleerrors.Errorf(ruleerrors.ErrChainSelectionHalted,
			"chain selection is halted after a reorg invariant violation")
	}
	return nil
}
