package serialization

import (
	"math"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// EndorsementToDbEndorsement converts an Endorsement to a DbEndorsement
func EndorsementToDbEndorsement(endorsement *externalapi.Endorsement) *DbEndorsement {
	return &DbEndorsement{
		Kind:            uint32(endorsement.Kind),
		EndorsedBlock:   HeaderRefToDbHeaderRef(endorsement.EndorsedBlock),
		EndorsingHeader: ContextHeaderToDbContextHeader(endorsement.EndorsingHeader),
		EndorsingBlock:  HeaderRefToDbHeaderRef(endorsement.EndorsingBlock),
		ContainingBlock: HeaderRefToDbHeaderRef(endorsement.ContainingBlock),
		PayoutScript:    endorsement.PayoutScript,
		PublicKey:       endorsement.PublicKey,
		Signature:       endorsement.Signature,
		ContextBlocks:   ContextHeadersToDbContextHeaders(endorsement.ContextBlocks),
	}
}

// DbEndorsementToEndorsement converts a DbEndorsement to an Endorsement
func DbEndorsementToEndorsement(dbEndorsement *DbEndorsement) (*externalapi.Endorsement, error) {
	if dbEndorsement.Kind > math.MaxUint8 {
		return nil, errors.Errorf("invalid endorsement kind %d", dbEndorsement.Kind)
	}
	endorsedBlock, err := DbHeaderRefToHeaderRef(dbEndorsement.EndorsedBlock)
	if err != nil {
		return nil, err
	}
	endorsingHeader, err := DbContextHeaderToContextHeader(dbEndorsement.EndorsingHeader)
	if err != nil {
		return nil, err
	}
	endorsingBlock, err := DbHeaderRefToHeaderRef(dbEndorsement.EndorsingBlock)
	if err != nil {
		return nil, err
	}
	containingBlock, err := DbHeaderRefToHeaderRef(dbEndorsement.ContainingBlock)
	if err != nil {
		return nil, err
	}
	contextBlocks, err := DbContextHeadersToContextHeaders(dbEndorsement.ContextBlocks)
	if err != nil {
		return nil, err
	}

	return &externalapi.Endorsement{
		Kind:            externalapi.EndorsementKind(dbEndorsement.Kind),
		EndorsedBlock:   endorsedBlock,
		EndorsingHeader: endorsingHeader,
		EndorsingBlock:  endorsingBlock,
		ContainingBlock: containingBlock,
		PayoutScript:    dbEndorsement.PayoutScript,
		PublicKey:       dbEndorsement.PublicKey,
		Signature:       dbEndorsement.Signature,
		ContextBlocks:   contextBlocks,
	}, nil
}
