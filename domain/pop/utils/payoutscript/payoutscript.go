// Package payoutscript recognizes the output-script templates an endorser may
// use to get paid.
package payoutscript

import (
	"encoding/hex"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// Opcodes used by the recognized templates
const (
	OpFalse       = 0x00
	OpData20      = 0x14
	OpData32      = 0x20
	OpEqual       = 0x87
	OpEqualVerify = 0x88
	OpDup         = 0x76
	OpHash160     = 0xa9
	OpCheckSig    = 0xac
)

// ScriptClass is an enumeration for the list of recognized payout templates.
type ScriptClass byte

// Classes of payout script templates.
const (
	NonStandardTy       ScriptClass = iota // None of the recognized forms.
	PubKeyHashTy                           // Pay to pubkey hash.
	ScriptHashTy                           // Pay to script hash.
	PubKeyTy                               // Pay to a 32 byte Schnorr pubkey.
	WitnessPubKeyHashTy                    // Pay to witness pubkey hash.
)

var scriptClassToName = []string{
	NonStandardTy:       "nonstandard",
	PubKeyHashTy:        "pubkeyhash",
	ScriptHashTy:        "scripthash",
	PubKeyTy:            "pubkey",
	WitnessPubKeyHashTy: "witness_v0_keyhash",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// ErrNonStandardScript is returned for scripts that match none of the templates
var ErrNonStandardScript = errors.New("payout script matches no known template")

func isPubKeyHash(script []byte) bool {
	return len(script) == 25 &&
		script[0] == OpDup &&
		script[1] == OpHash160 &&
		script[2] == OpData20 &&
		script[23] == OpEqualVerify &&
		script[24] == OpCheckSig
}

func isScriptHash(script []byte) bool {
	return len(script) == 23 &&
		script[0] == OpHash160 &&
		script[1] == OpData20 &&
		script[22] == OpEqual
}

func isPubKey(script []byte) bool {
	return len(script) == 34 &&
		script[0] == OpData32 &&
		script[33] == OpCheckSig
}

func isWitnessPubKeyHash(script []byte) bool {
	return len(script) == 22 &&
		script[0] == OpFalse &&
		script[1] == OpData20
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy will be returned when the script does not parse.
func GetScriptClass(script []byte) ScriptClass {
	switch {
	case isPubKeyHash(script):
		return PubKeyHashTy
	case isScriptHash(script):
		return ScriptHashTy
	case isPubKey(script):
		return PubKeyTy
	case isWitnessPubKeyHash(script):
		return WitnessPubKeyHashTy
	}
	return NonStandardTy
}

// Validate returns the class of script, or ErrNonStandardScript if the script
// is not a syntactically valid payout template.
func Validate(script []byte) (ScriptClass, error) {
	class := GetScriptClass(script)
	if class == NonStandardTy {
		return NonStandardTy, errors.Wrapf(ErrNonStandardScript, "script %s", hex.EncodeToString(script))
	}
	return class, nil
}

// PayToPubKeyHash returns a pubkey-hash payout script paying to pubKeyHash
func PayToPubKeyHash(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != 20 {
		return nil, errors.Errorf("pubkey hash must be 20 bytes, got %d", len(pubKeyHash))
	}
	script := make([]byte, 0, 25)
	script = append(script, OpDup, OpHash160, OpData20)
	script = append(script, pubKeyHash...)
	return append(script, OpEqualVerify, OpCheckSig), nil
}

// PayToPubKey returns a pubkey payout script paying to a 32 byte Schnorr public key
func PayToPubKey(publicKey []byte) ([]byte, error) {
	if len(publicKey) != 32 {
		return nil, errors.Errorf("public key must be 32 bytes, got %d", len(publicKey))
	}
	script := make([]byte, 0, 34)
	script = append(script, OpData32)
	script = append(script, publicKey...)
	return append(script, OpCheckSig), nil
}

// Address returns a base58check encoded human-readable form of the payout
// destination, prefixed with the given network version byte.
func Address(script []byte, netVersion byte) (string, error) {
	var payload []byte
	switch GetScriptClass(script) {
	case PubKeyHashTy:
		payload = script[3:23]
	case ScriptHashTy:
		payload = script[2:22]
	case PubKeyTy:
		payload = script[1:33]
	case WitnessPubKeyHashTy:
		payload = script[2:22]
	default:
		return "", errors.Wrapf(ErrNonStandardScript, "script %s", hex.EncodeToString(script))
	}
	return base58.CheckEncode(payload, netVersion), nil
}
