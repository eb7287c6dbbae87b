package endorsementvalidator

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
)

// firstOrderRules validate endorsements of local blocks
type firstOrderRules struct {
	blockIndex model.BlockIndex
}

func newFirstOrderRules(blockIndex model.BlockIndex) model.EndorsementRules {
	return &firstOrderRules{blockIndex: blockIndex}
}

func (r *firstOrderRules) Kind() externalapi.EndorsementKind {
	return externalapi.FirstOrder
}

// ValidateEndorsedBlock checks that the endorsed local block is known and is
// an ancestor of the block containing the endorsement
func (r *firstOrderRules) ValidateEndorsedBlock(endorsement *externalapi.Endorsement,
	containingBlock *model.BlockNode) error {

	endorsedBlock, ok := r.blockIndex.Lookup(endorsement.EndorsedBlock.Hash)
	if !ok {
		return ruleerrors.Errorf(ruleerrors.ErrEndorsedBlockMissing,
			"endorsed block %s is unknown", endorsement.EndorsedBlock)
	}
	if endorsedBlock.Height() != endorsement.EndorsedBlock.Height {
		return ruleerrors.Errorf(ruleerrors.ErrEndorsedBlockMissing,
			"endorsed block %s is known at height %d", endorsement.EndorsedBlock, endorsedBlock.Height())
	}
	if !endorsedBlock.IsAncestorOf(containingBlock) {
		return ruleerrors.Errorf(ruleerrors.ErrEndorsedBlockNotAncestor,
			"endorsed block %s is not an ancestor of containing block %s", endorsedBlock, containingBlock)
	}
	return nil
}

// secondOrderRules validate endorsements of intermediate blocks
type secondOrderRules struct {
	contextStore model.ContextStore
}

func newSecondOrderRules(contextStore model.ContextStore) model.EndorsementRules {
	return &secondOrderRules{contextStore: contextStore}
}

func (r *secondOrderRules) Kind() externalapi.EndorsementKind {
	return externalapi.SecondOrder
}

// ValidateEndorsedBlock checks that the endorsed intermediate block is stored
func (r *secondOrderRules) ValidateEndorsedBlock(endorsement *externalapi.Endorsement, _ *model.BlockNode) error {
	header, ok := r.contextStore.Chain(externalapi.IntermediateChain).Get(endorsement.EndorsedBlock.Hash)
	if !ok {
		return ruleerrors.Errorf(ruleerrors.ErrEndorsedBlockMissing,
			"endorsed intermediate block %s is unknown", endorsement.EndorsedBlock)
	}
	if header.Height != endorsement.EndorsedBlock.Height {
		return ruleerrors.Errorf(ruleerrors.ErrEndorsedBlockMissing,
			"endorsed intermediate block %s is known at height %d", endorsement.EndorsedBlock, header.Height)
	}
	return nil
}
