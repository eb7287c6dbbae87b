package testutils

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/hashes"
	"github.com/kaspanet/popd/domain/pop/utils/payloadserialization"
	"github.com/kaspanet/popd/domain/pop/utils/payoutscript"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/pkg/errors"
)

// Endorser creates signed endorsements paying to its own public key
type Endorser struct {
	keyPair      *secp256k1.SchnorrKeyPair
	PublicKey    []byte
	PayoutScript []byte
}

// NewEndorser returns an endorser whose key is derived from seed, so tests
// using the same seed get the same endorser.
func NewEndorser(seed string) (*Endorser, error) {
	writer := hashes.NewEndorsementSigningHashWriter()
	writer.InfallibleWrite([]byte("test endorser key " + seed))
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(writer.Finalize().ByteSlice())
	if err != nil {
		return nil, errors.Wrapf(err, "failed deriving a key from seed %s", seed)
	}
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, err
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, err
	}
	payoutScript, err := payoutscript.PayToPubKey(serializedPublicKey[:])
	if err != nil {
		return nil, err
	}
	return &Endorser{
		keyPair:      keyPair,
		PublicKey:    serializedPublicKey[:],
		PayoutScript: payoutScript,
	}, nil
}

// Sign sets the endorser's public key on endorsement and signs it
func (e *Endorser) Sign(endorsement *externalapi.Endorsement) error {
	endorsement.PublicKey = e.PublicKey
	signingHash := pophashing.EndorsementSigningHash(endorsement)
	secpHash := secp256k1.Hash(*signingHash.ByteArray())
	signature, err := e.keyPair.SchnorrSign(&secpHash)
	if err != nil {
		return errors.Wrap(err, "cannot sign endorsement")
	}
	endorsement.Signature = signature.Serialize()[:]
	return nil
}

// FirstOrder returns a signed first-order endorsement of endorsed by the
// intermediate block endorsingHeader, contained in the local block containing
func (e *Endorser) FirstOrder(endorsed *externalapi.HeaderRef, endorsingHeader *externalapi.ContextHeader,
	containing *externalapi.HeaderRef, context []*externalapi.ContextHeader) (*externalapi.Endorsement, error) {

	return e.endorse(externalapi.FirstOrder, endorsed, endorsingHeader, containing, context)
}

// SecondOrder returns a signed second-order endorsement of the intermediate
// block endorsed by the security block endorsingHeader, contained in the
// local block containing
func (e *Endorser) SecondOrder(endorsed *externalapi.HeaderRef, endorsingHeader *externalapi.ContextHeader,
	containing *externalapi.HeaderRef, context []*externalapi.ContextHeader) (*externalapi.Endorsement, error) {

	return e.endorse(externalapi.SecondOrder, endorsed, endorsingHeader, containing, context)
}

func (e *Endorser) endorse(kind externalapi.EndorsementKind, endorsed *externalapi.HeaderRef,
	endorsingHeader *externalapi.ContextHeader, containing *externalapi.HeaderRef,
	context []*externalapi.ContextHeader) (*externalapi.Endorsement, error) {

	endorsement := &externalapi.Endorsement{
		Kind:            kind,
		EndorsedBlock:   endorsed.Clone(),
		EndorsingHeader: endorsingHeader.Clone(),
		EndorsingBlock:  pophashing.HeaderRef(endorsingHeader),
		ContainingBlock: containing.Clone(),
		PayoutScript:    e.PayoutScript,
		ContextBlocks:   context,
	}
	err := e.Sign(endorsement)
	if err != nil {
		return nil, err
	}
	return endorsement, nil
}

// Payload serializes endorsement, panicking on failure
func Payload(endorsement *externalapi.Endorsement) []byte {
	payload, err := payloadserialization.SerializeEndorsement(endorsement)
	if err != nil {
		panic(err)
	}
	return payload
}
