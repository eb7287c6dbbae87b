// Package payloadserialization implements the wire format of endorsement payloads.
//
// A payload is laid out as follows, integers little endian:
//
//	version          uint8
//	kind             uint8  (1 = first-order, 2 = second-order)
//	endorsed block   hash[32] height uint64
//	endorsing header context header
//	containing block hash[32] height uint64
//	payout script    uint32 length + bytes
//	public key       [32]byte
//	signature        [64]byte
//	context count    uint32
//	context headers  context header * count
//
// The context list is carried separately from the endorsement body and may
// be empty.
package payloadserialization

import (
	"bytes"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/kaspanet/popd/domain/pop/utils/serialization"
	"github.com/pkg/errors"
)

const (
	// PayloadVersion is the only payload version currently understood
	PayloadVersion uint8 = 1

	// PublicKeySize is the size of a serialized Schnorr public key
	PublicKeySize = 32

	// SignatureSize is the size of a serialized Schnorr signature
	SignatureSize = 64

	// MaxPayoutScriptSize is the maximum size of a payout script
	MaxPayoutScriptSize = 10000

	// MaxContextBlocks is the maximum number of context headers in a single payload
	MaxContextBlocks = 10000
)

// SerializeEndorsement returns the wire representation of an endorsement
func SerializeEndorsement(endorsement *externalapi.Endorsement) ([]byte, error) {
	if len(endorsement.PublicKey) != PublicKeySize {
		return nil, errors.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(endorsement.PublicKey))
	}
	if len(endorsement.Signature) != SignatureSize {
		return nil, errors.Errorf("signature must be %d bytes, got %d", SignatureSize, len(endorsement.Signature))
	}

	w := &bytes.Buffer{}
	err := serialization.WriteElements(w, PayloadVersion, uint8(endorsement.Kind))
	if err != nil {
		return nil, err
	}
	err = serialization.SerializeHeaderRef(w, endorsement.EndorsedBlock)
	if err != nil {
		return nil, err
	}
	err = serialization.SerializeContextHeader(w, endorsement.EndorsingHeader)
	if err != nil {
		return nil, err
	}
	err = serialization.SerializeHeaderRef(w, endorsement.ContainingBlock)
	if err != nil {
		return nil, err
	}
	err = serialization.WriteVarBytes(w, endorsement.PayoutScript)
	if err != nil {
		return nil, err
	}
	w.Write(endorsement.PublicKey)
	w.Write(endorsement.Signature)

	err = serialization.WriteElement(w, uint32(len(endorsement.ContextBlocks)))
	if err != nil {
		return nil, err
	}
	for _, header := range endorsement.ContextBlocks {
		err = serialization.SerializeContextHeader(w, header)
		if err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// DeserializeEndorsement parses a payload into an endorsement. Any truncation,
// unknown version or kind, or trailing data results in an error for which
// serialization.IsMalformedError returns true.
func DeserializeEndorsement(payload []byte) (*externalapi.Endorsement, error) {
	r := bytes.NewReader(payload)

	var version, kind uint8
	err := serialization.ReadElements(r, &version, &kind)
	if err != nil {
		return nil, err
	}
	if version != PayloadVersion {
		return nil, serialization.Malformed("unknown payload version %d", version)
	}
	endorsementKind := externalapi.EndorsementKind(kind)
	if endorsementKind != externalapi.FirstOrder && endorsementKind != externalapi.SecondOrder {
		return nil, serialization.Malformed("unknown endorsement kind %d", kind)
	}

	endorsement := &externalapi.Endorsement{Kind: endorsementKind}
	endorsement.EndorsedBlock, err = serialization.DeserializeHeaderRef(r)
	if err != nil {
		return nil, err
	}
	endorsement.EndorsingHeader, err = serialization.DeserializeContextHeader(r)
	if err != nil {
		return nil, err
	}
	endorsement.EndorsingBlock = pophashing.HeaderRef(endorsement.EndorsingHeader)
	endorsement.ContainingBlock, err = serialization.DeserializeHeaderRef(r)
	if err != nil {
		return nil, err
	}
	endorsement.PayoutScript, err = serialization.ReadVarBytes(r, MaxPayoutScriptSize, "payout script")
	if err != nil {
		return nil, err
	}

	endorsement.PublicKey = make([]byte, PublicKeySize)
	endorsement.Signature = make([]byte, SignatureSize)
	for _, field := range [][]byte{endorsement.PublicKey, endorsement.Signature} {
		n, err := r.Read(field)
		if err != nil || n != len(field) {
			return nil, serialization.Malformed("payload truncated inside the endorser signature")
		}
	}

	var contextCount uint32
	err = serialization.ReadElement(r, &contextCount)
	if err != nil {
		return nil, err
	}
	if contextCount > MaxContextBlocks {
		return nil, serialization.Malformed("payload carries %d context blocks, which is more than the "+
			"allowed %d", contextCount, MaxContextBlocks)
	}
	endorsement.ContextBlocks = make([]*externalapi.ContextHeader, contextCount)
	for i := range endorsement.ContextBlocks {
		endorsement.ContextBlocks[i], err = serialization.DeserializeContextHeader(r)
		if err != nil {
			return nil, err
		}
	}

	if r.Len() != 0 {
		return nil, serialization.Malformed("payload has %d trailing bytes", r.Len())
	}
	return endorsement, nil
}
