package endorsementvalidator

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// endorsementValidator exposes a set of validation rules for endorsement
// payloads
type endorsementValidator struct {
	maxPayloadSize          int
	maxEndorsementsPerBlock int

	contextStore model.ContextStore
	blockIndex   model.BlockIndex
	rules        map[externalapi.EndorsementKind]model.EndorsementRules
}

// New instantiates a new EndorsementValidator
func New(maxPayloadSize int,
	maxEndorsementsPerBlock int,
	contextStore model.ContextStore,
	blockIndex model.BlockIndex) model.EndorsementValidator {

	v := &endorsementValidator{
		maxPayloadSize:          maxPayloadSize,
		maxEndorsementsPerBlock: maxEndorsementsPerBlock,
		contextStore:            contextStore,
		blockIndex:              blockIndex,
		rules:                   make(map[externalapi.EndorsementKind]model.EndorsementRules),
	}
	for _, rules := range []model.EndorsementRules{
		newFirstOrderRules(blockIndex),
		newSecondOrderRules(contextStore),
	} {
		v.rules[rules.Kind()] = rules
	}
	return v
}

// ValidateEndorsement runs both the isolation and the context checks
func (v *endorsementValidator) ValidateEndorsement(payload []byte) (*externalapi.ValidatedEndorsement, error) {
	endorsement, err := v.ValidateInIsolation(payload)
	if err != nil {
		return nil, err
	}
	return v.ValidateInContext(endorsement)
}

func (v *endorsementValidator) rulesOf(kind externalapi.EndorsementKind) (model.EndorsementRules, error) {
	rules, ok := v.rules[kind]
	if !ok {
		return nil, errors.Errorf("no rules for %s endorsements", kind)
	}
	return rules, nil
}
