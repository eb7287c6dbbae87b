package endorsementvalidator

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/kaspanet/popd/infrastructure/logger"
)

// ValidateInContext checks endorsement against the stored block index and
// context chains. It returns the endorsement along with the supplied context
// headers that are needed to connect it and are not stored yet.
func (v *endorsementValidator) ValidateInContext(endorsement *externalapi.Endorsement) (
	*externalapi.ValidatedEndorsement, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateInContext")
	defer onEnd()

	containingBlock, err := v.checkContainingBlock(endorsement)
	if err != nil {
		return nil, err
	}

	rules, err := v.rulesOf(endorsement.Kind)
	if err != nil {
		return nil, err
	}
	err = rules.ValidateEndorsedBlock(endorsement, containingBlock)
	if err != nil {
		return nil, err
	}

	err = v.checkNotDuplicate(endorsement)
	if err != nil {
		return nil, err
	}

	err = v.checkEndorsementsInBlockLimit(containingBlock)
	if err != nil {
		return nil, err
	}

	newContext, err := v.connectContext(endorsement)
	if err != nil {
		return nil, err
	}

	log.Tracef("%s is valid in context, it brings %d new context headers", endorsement, len(newContext))
	return &externalapi.ValidatedEndorsement{
		Endorsement: endorsement,
		NewContext:  newContext,
	}, nil
}

func (v *endorsementValidator) checkContainingBlock(endorsement *externalapi.Endorsement) (*model.BlockNode, error) {
	containingBlock, ok := v.blockIndex.Lookup(endorsement.ContainingBlock.Hash)
	if !ok {
		return nil, ruleerrors.Errorf(ruleerrors.ErrContainingBlockMissing,
			"containing block %s is unknown", endorsement.ContainingBlock)
	}
	if containingBlock.Height() != endorsement.ContainingBlock.Height {
		return nil, ruleerrors.Errorf(ruleerrors.ErrContainingBlockMissing,
			"containing block %s is known at height %d", endorsement.ContainingBlock, containingBlock.Height())
	}
	return containingBlock, nil
}

func (v *endorsementValidator) checkNotDuplicate(endorsement *externalapi.Endorsement) error {
	endorsementID := pophashing.EndorsementID(endorsement)
	if v.blockIndex.HasEndorsement(endorsementID) {
		return ruleerrors.Errorf(ruleerrors.ErrDuplicateEndorsement, "%s is already known", endorsement)
	}
	return nil
}

func (v *endorsementValidator) checkEndorsementsInBlockLimit(containingBlock *model.BlockNode) error {
	if len(containingBlock.Endorsements) >= v.maxEndorsementsPerBlock {
		return ruleerrors.Errorf(ruleerrors.ErrTooManyEndorsementsInBlock, "block %s already contains %d "+
			"endorsements, which is the maximum", containingBlock, len(containingBlock.Endorsements))
	}
	return nil
}

// connectContext walks from the endorsing header towards the stored
// context chain, through the supplied context headers. Heights must
// decrease by one on every step. The first hash found neither in the
// supplied headers nor in the stored chain is reported as missing.
func (v *endorsementValidator) connectContext(endorsement *externalapi.Endorsement) ([]*externalapi.ContextHeader, error) {
	chainID := endorsement.Kind.EndorsingChain()
	chain := v.contextStore.Chain(chainID)

	endorsingRef := pophashing.HeaderRef(endorsement.EndorsingHeader)
	if chain.Has(endorsingRef.Hash) {
		return nil, nil
	}

	supplied := make(map[externalapi.DomainHash]*externalapi.ContextHeader, len(endorsement.ContextBlocks))
	for _, header := range endorsement.ContextBlocks {
		supplied[*pophashing.HeaderHash(header)] = header
	}

	path := []*externalapi.ContextHeader{endorsement.EndorsingHeader}
	current := endorsement.EndorsingHeader
	for {
		if stored, ok := chain.Get(current.PrevHash); ok {
			if stored.Height+1 != current.Height {
				return nil, ruleerrors.Errorf(ruleerrors.ErrBadContextLink, "%s header at height %d follows "+
					"stored header %s at height %d", chainID, current.Height, current.PrevHash, stored.Height)
			}
			break
		}

		previous, ok := supplied[*current.PrevHash]
		if !ok {
			return nil, ruleerrors.NewErrMissingContext(chainID, current.PrevHash)
		}
		if previous.Height+1 != current.Height {
			return nil, ruleerrors.Errorf(ruleerrors.ErrBadContextLink, "%s header at height %d follows "+
				"supplied header %s at height %d", chainID, current.Height, current.PrevHash, previous.Height)
		}
		// Every step consumes a supplied header, so the walk ends
		delete(supplied, *current.PrevHash)
		path = append(path, previous)
		current = previous
	}

	// Reverse the path so that it is ordered from low to high
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
