package externalapi

import "fmt"

// EndorsementKind distinguishes first-order from second-order endorsements
type EndorsementKind uint8

const (
	// FirstOrder is an endorsement of a local block by the intermediate chain
	FirstOrder EndorsementKind = 1

	// SecondOrder is an endorsement of an intermediate block by the security chain
	SecondOrder EndorsementKind = 2
)

func (kind EndorsementKind) String() string {
	switch kind {
	case FirstOrder:
		return "first-order"
	case SecondOrder:
		return "second-order"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(kind))
	}
}

// EndorsedChain returns the chain the endorsed block of this kind belongs to.
// The local chain is represented by ok == false.
func (kind EndorsementKind) EndorsedChain() (chainID ContextChainID, ok bool) {
	if kind == SecondOrder {
		return IntermediateChain, true
	}
	return 0, false
}

// EndorsingChain returns the chain the endorsing block of this kind belongs to
func (kind EndorsementKind) EndorsingChain() ContextChainID {
	if kind == SecondOrder {
		return SecurityChain
	}
	return IntermediateChain
}

// Endorsement is a proof that EndorsedBlock was referenced by a block of the
// chain one level up the security hierarchy.
type Endorsement struct {
	Kind            EndorsementKind
	EndorsedBlock   *HeaderRef
	EndorsingHeader *ContextHeader
	EndorsingBlock  *HeaderRef
	ContainingBlock *HeaderRef
	PayoutScript    []byte
	PublicKey       []byte
	Signature       []byte
	ContextBlocks   []*ContextHeader
}

// Clone returns a clone of Endorsement
func (endorsement *Endorsement) Clone() *Endorsement {
	payoutScriptClone := make([]byte, len(endorsement.PayoutScript))
	copy(payoutScriptClone, endorsement.PayoutScript)
	publicKeyClone := make([]byte, len(endorsement.PublicKey))
	copy(publicKeyClone, endorsement.PublicKey)
	signatureClone := make([]byte, len(endorsement.Signature))
	copy(signatureClone, endorsement.Signature)

	contextClone := make([]*ContextHeader, len(endorsement.ContextBlocks))
	for i, header := range endorsement.ContextBlocks {
		contextClone[i] = header.Clone()
	}

	return &Endorsement{
		Kind:            endorsement.Kind,
		EndorsedBlock:   endorsement.EndorsedBlock.Clone(),
		EndorsingHeader: endorsement.EndorsingHeader.Clone(),
		EndorsingBlock:  endorsement.EndorsingBlock.Clone(),
		ContainingBlock: endorsement.ContainingBlock.Clone(),
		PayoutScript:    payoutScriptClone,
		PublicKey:       publicKeyClone,
		Signature:       signatureClone,
		ContextBlocks:   contextClone,
	}
}

func (endorsement *Endorsement) String() string {
	return fmt.Sprintf("%s endorsement of %s by %s in %s", endorsement.Kind,
		endorsement.EndorsedBlock, endorsement.EndorsingBlock, endorsement.ContainingBlock)
}

// ValidatedEndorsement is the result of a successful validation: the
// endorsement itself and the context headers that must be stored together
// with it for its context to be connected.
type ValidatedEndorsement struct {
	Endorsement *Endorsement
	NewContext  []*ContextHeader
}

// PopRewards maps a hex-encoded payout script to the amount it is owed
type PopRewards map[string]uint64
