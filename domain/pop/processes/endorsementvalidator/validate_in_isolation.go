package endorsementvalidator

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/domain/pop/utils/payloadserialization"
	"github.com/kaspanet/popd/domain/pop/utils/payoutscript"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/kaspanet/popd/infrastructure/logger"
)

// ValidateInIsolation decodes payload and runs every check that does not
// need stored state
func (v *endorsementValidator) ValidateInIsolation(payload []byte) (*externalapi.Endorsement, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateInIsolation")
	defer onEnd()

	err := v.checkPayloadSize(payload)
	if err != nil {
		return nil, err
	}

	endorsement, err := payloadserialization.DeserializeEndorsement(payload)
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrMalformedPayload, err)
	}

	err = v.checkPayoutScript(endorsement)
	if err != nil {
		return nil, err
	}

	err = v.checkSignature(endorsement)
	if err != nil {
		return nil, err
	}
	return endorsement, nil
}

func (v *endorsementValidator) checkPayloadSize(payload []byte) error {
	if len(payload) > v.maxPayloadSize {
		return ruleerrors.Errorf(ruleerrors.ErrPayloadTooLarge, "payload is %d bytes, which is more than "+
			"the allowed %d", len(payload), v.maxPayloadSize)
	}
	return nil
}

func (v *endorsementValidator) checkPayoutScript(endorsement *externalapi.Endorsement) error {
	_, err := payoutscript.Validate(endorsement.PayoutScript)
	if err != nil {
		return ruleerrors.Wrap(ruleerrors.ErrBadPayoutScript, err)
	}
	return nil
}

func (v *endorsementValidator) checkSignature(endorsement *externalapi.Endorsement) error {
	publicKey, err := secp256k1.DeserializeSchnorrPubKey(endorsement.PublicKey)
	if err != nil {
		return ruleerrors.Wrap(ruleerrors.ErrBadSignature, err)
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(endorsement.Signature)
	if err != nil {
		return ruleerrors.Wrap(ruleerrors.ErrBadSignature, err)
	}

	signingHash := pophashing.EndorsementSigningHash(endorsement)
	secpHash := secp256k1.Hash(*signingHash.ByteArray())
	if !publicKey.SchnorrVerify(&secpHash, signature) {
		return ruleerrors.Errorf(ruleerrors.ErrBadSignature, "signature of %s does not verify", endorsement)
	}
	return nil
}
