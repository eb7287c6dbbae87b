// Package pophashing calculates the hashes that identify context headers and
// endorsements.
package pophashing

import (
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/hashes"
	"github.com/kaspanet/popd/domain/pop/utils/serialization"
	"github.com/pkg/errors"
)

// HeaderHash returns the hash of the given context header
func HeaderHash(header *externalapi.ContextHeader) *externalapi.DomainHash {
	writer := hashes.NewContextHeaderHashWriter()
	err := serialization.SerializeContextHeader(writer, header)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "ContextHeader serialization failed"))
	}
	return writer.Finalize()
}

// HeaderRef returns the HeaderRef of the given context header
func HeaderRef(header *externalapi.ContextHeader) *externalapi.HeaderRef {
	return externalapi.NewHeaderRef(HeaderHash(header), header.Height)
}

// EndorsementID returns the identifier of an endorsement. Two endorsements of
// the same block by the same endorsing block mined in the same containing block
// share an ID, regardless of payout or context.
func EndorsementID(endorsement *externalapi.Endorsement) *externalapi.DomainHash {
	writer := hashes.NewEndorsementIDWriter()
	err := serialization.WriteElements(writer,
		uint8(endorsement.Kind),
		endorsement.EndorsedBlock.Hash, endorsement.EndorsedBlock.Height,
		endorsement.EndorsingBlock.Hash,
		endorsement.ContainingBlock.Hash, endorsement.ContainingBlock.Height)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}
	return writer.Finalize()
}

// EndorsementSigningHash returns the digest the endorser signs. It commits
// to the endorsement body but not to its context blocks.
func EndorsementSigningHash(endorsement *externalapi.Endorsement) *externalapi.DomainHash {
	writer := hashes.NewEndorsementSigningHashWriter()
	err := serialization.WriteElement(writer, uint8(endorsement.Kind))
	if err == nil {
		err = serialization.SerializeHeaderRef(writer, endorsement.EndorsedBlock)
	}
	if err == nil {
		err = serialization.SerializeContextHeader(writer, endorsement.EndorsingHeader)
	}
	if err == nil {
		err = serialization.SerializeHeaderRef(writer, endorsement.ContainingBlock)
	}
	if err == nil {
		err = serialization.WriteVarBytes(writer, endorsement.PayoutScript)
	}
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}
	return writer.Finalize()
}
