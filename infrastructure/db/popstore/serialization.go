package popstore

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/infrastructure/db/popstore/serialization"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

func serializeHash(hash *externalapi.DomainHash) ([]byte, error) {
	return proto.Marshal(serialization.DomainHashToDbHash(hash))
}

func deserializeHash(hashBytes []byte) (*externalapi.DomainHash, error) {
	dbHash := &serialization.DbHash{}
	err := proto.Unmarshal(hashBytes, dbHash)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return serialization.DbHashToDomainHash(dbHash)
}

func serializeSnapshotBlock(block *model.SnapshotBlock) ([]byte, error) {
	return proto.Marshal(serialization.SnapshotBlockToDbSnapshotBlock(block))
}

func deserializeSnapshotBlock(blockBytes []byte) (*model.SnapshotBlock, error) {
	dbBlock := &serialization.DbSnapshotBlock{}
	err := proto.Unmarshal(blockBytes, dbBlock)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return serialization.DbSnapshotBlockToSnapshotBlock(dbBlock)
}

func serializeContextHeader(header *externalapi.ContextHeader) ([]byte, error) {
	return proto.Marshal(serialization.ContextHeaderToDbContextHeader(header))
}

func deserializeContextHeader(headerBytes []byte) (*externalapi.ContextHeader, error) {
	dbHeader := &serialization.DbContextHeader{}
	err := proto.Unmarshal(headerBytes, dbHeader)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return serialization.DbContextHeaderToContextHeader(dbHeader)
}

func serializeEndorsement(endorsement *externalapi.Endorsement) ([]byte, error) {
	return proto.Marshal(serialization.EndorsementToDbEndorsement(endorsement))
}

func deserializeEndorsement(endorsementBytes []byte) (*externalapi.Endorsement, error) {
	dbEndorsement := &serialization.DbEndorsement{}
	err := proto.Unmarshal(endorsementBytes, dbEndorsement)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return serialization.DbEndorsementToEndorsement(dbEndorsement)
}
