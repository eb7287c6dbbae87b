package serialization

import (
	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// SnapshotBlockToDbSnapshotBlock converts a SnapshotBlock to a DbSnapshotBlock.
// The parent hash is left unset for the genesis block.
func SnapshotBlockToDbSnapshotBlock(block *model.SnapshotBlock) *DbSnapshotBlock {
	dbBlock := &DbSnapshotBlock{
		HeaderRef:      HeaderRefToDbHeaderRef(block.Block.HeaderRef),
		CumulativeWork: block.CumulativeWork.Bytes(),
		Arrival:        block.Arrival,
	}
	if block.Block.ParentHash != nil {
		dbBlock.ParentHash = DomainHashToDbHash(block.Block.ParentHash)
	}
	return dbBlock
}

// DbSnapshotBlockToSnapshotBlock converts a DbSnapshotBlock to a SnapshotBlock
func DbSnapshotBlockToSnapshotBlock(dbBlock *DbSnapshotBlock) (*model.SnapshotBlock, error) {
	ref, err := DbHeaderRefToHeaderRef(dbBlock.HeaderRef)
	if err != nil {
		return nil, err
	}
	block := &externalapi.LocalBlock{HeaderRef: ref}
	if dbBlock.ParentHash != nil {
		block.ParentHash, err = DbHashToDomainHash(dbBlock.ParentHash)
		if err != nil {
			return nil, err
		}
	}
	if len(dbBlock.CumulativeWork) > 32 {
		return nil, errors.Errorf("cumulative work of %s is %d bytes long, which does not fit in 256 bits",
			ref, len(dbBlock.CumulativeWork))
	}
	return &model.SnapshotBlock{
		Block:          block,
		CumulativeWork: new(uint256.Int).SetBytes(dbBlock.CumulativeWork),
		Arrival:        dbBlock.Arrival,
	}, nil
}
