package testutils

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// DefaultBlockWork is the work FakeBaseChain attributes to a block unless
// told otherwise
const DefaultBlockWork = 1000

// FakeBaseChain is a BaseChainValidator that accepts every block not marked
// invalid and accumulates a fixed amount of work per block.
type FakeBaseChain struct {
	sync.Mutex
	cumulativeWork map[externalapi.DomainHash]*uint256.Int
	blockWork      map[externalapi.DomainHash]uint64
	invalid        map[externalapi.DomainHash]struct{}
}

// NewFakeBaseChain returns an empty FakeBaseChain
func NewFakeBaseChain() *FakeBaseChain {
	return &FakeBaseChain{
		cumulativeWork: make(map[externalapi.DomainHash]*uint256.Int),
		blockWork:      make(map[externalapi.DomainHash]uint64),
		invalid:        make(map[externalapi.DomainHash]struct{}),
	}
}

// SetBlockWork overrides the work of a single block
func (fbc *FakeBaseChain) SetBlockWork(hash *externalapi.DomainHash, work uint64) {
	fbc.Lock()
	defer fbc.Unlock()
	fbc.blockWork[*hash] = work
}

// MarkInvalid makes IsValidHeader reject the given block
func (fbc *FakeBaseChain) MarkInvalid(hash *externalapi.DomainHash) {
	fbc.Lock()
	defer fbc.Unlock()
	fbc.invalid[*hash] = struct{}{}
}

// IsValidHeader implements model.BaseChainValidator
func (fbc *FakeBaseChain) IsValidHeader(block *externalapi.LocalBlock) error {
	fbc.Lock()
	defer fbc.Unlock()
	if _, ok := fbc.invalid[*block.Hash]; ok {
		return errors.Errorf("block %s is marked invalid", block.HeaderRef)
	}
	return nil
}

// CumulativeWork implements model.BaseChainValidator
func (fbc *FakeBaseChain) CumulativeWork(block *externalapi.LocalBlock) (*uint256.Int, error) {
	fbc.Lock()
	defer fbc.Unlock()

	if work, ok := fbc.cumulativeWork[*block.Hash]; ok {
		return work.Clone(), nil
	}
	work := uint256.NewInt(DefaultBlockWork)
	if blockWork, ok := fbc.blockWork[*block.Hash]; ok {
		work = uint256.NewInt(blockWork)
	}
	if block.ParentHash != nil {
		parentWork, ok := fbc.cumulativeWork[*block.ParentHash]
		if !ok {
			return nil, errors.Errorf("parent %s of block %s was never seen", block.ParentHash, block.HeaderRef)
		}
		work.Add(work, parentWork)
	}
	fbc.cumulativeWork[*block.Hash] = work
	return work.Clone(), nil
}

var _ model.BaseChainValidator = (*FakeBaseChain)(nil)
