package model

import "github.com/kaspanet/popd/domain/pop/model/externalapi"

// EndorsementValidator checks endorsement payloads. ValidateInIsolation
// needs no access to stored state and may run concurrently; ValidateInContext
// reads the stores and must run under the engine's lock. Neither mutates
// anything.
type EndorsementValidator interface {
	ValidateInIsolation(payload []byte) (*externalapi.Endorsement, error)
	ValidateInContext(endorsement *externalapi.Endorsement) (*externalapi.ValidatedEndorsement, error)
	ValidateEndorsement(payload []byte) (*externalapi.ValidatedEndorsement, error)
}

// EndorsementRules are the validation rules particular to one kind of
// endorsement.
type EndorsementRules interface {
	Kind() externalapi.EndorsementKind
	ValidateEndorsedBlock(endorsement *externalapi.Endorsement, containingBlock *BlockNode) error
}
