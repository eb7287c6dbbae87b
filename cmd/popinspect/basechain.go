package main

import (
	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// recordedBaseChain answers work queries from the cumulative work stored in
// a snapshot. The inspector never connects blocks, so it refuses every header.
type recordedBaseChain struct {
	cumulativeWork map[externalapi.DomainHash]*uint256.Int
}

func newRecordedBaseChain(snapshot *model.Snapshot) *recordedBaseChain {
	cumulativeWork := make(map[externalapi.DomainHash]*uint256.Int, len(snapshot.Blocks))
	for _, block := range snapshot.Blocks {
		cumulativeWork[*block.Block.Hash] = block.CumulativeWork
	}
	return &recordedBaseChain{cumulativeWork: cumulativeWork}
}

func (rbc *recordedBaseChain) IsValidHeader(block *externalapi.LocalBlock) error {
	return errors.Errorf("cannot validate %s: the inspector is read-only", block.HeaderRef)
}

func (rbc *recordedBaseChain) CumulativeWork(block *externalapi.LocalBlock) (*uint256.Int, error) {
	work, ok := rbc.cumulativeWork[*block.Hash]
	if !ok {
		return nil, errors.Errorf("block %s is not in the snapshot", block.HeaderRef)
	}
	return work.Clone(), nil
}

var _ model.BaseChainValidator = (*recordedBaseChain)(nil)
