package payoutscript

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

func TestGetScriptClass(t *testing.T) {
	pubKeyHash := bytes.Repeat([]byte{0x11}, 20)
	pubKey := bytes.Repeat([]byte{0x22}, 32)

	payToPubKeyHash, err := PayToPubKeyHash(pubKeyHash)
	if err != nil {
		t.Fatalf("PayToPubKeyHash: %+v", err)
	}
	payToPubKey, err := PayToPubKey(pubKey)
	if err != nil {
		t.Fatalf("PayToPubKey: %+v", err)
	}
	scriptHash := append(append([]byte{OpHash160, OpData20}, pubKeyHash...), OpEqual)
	witnessPubKeyHash := append([]byte{OpFalse, OpData20}, pubKeyHash...)

	tests := []struct {
		name          string
		script        []byte
		expectedClass ScriptClass
	}{
		{"pubkeyhash", payToPubKeyHash, PubKeyHashTy},
		{"pubkey", payToPubKey, PubKeyTy},
		{"scripthash", scriptHash, ScriptHashTy},
		{"witness pubkeyhash", witnessPubKeyHash, WitnessPubKeyHashTy},
		{"empty", []byte{}, NonStandardTy},
		{"truncated pubkeyhash", payToPubKeyHash[:24], NonStandardTy},
		{"pubkey without checksig", append(payToPubKey[:33:33], OpEqual), NonStandardTy},
	}
	for _, test := range tests {
		class := GetScriptClass(test.script)
		if class != test.expectedClass {
			t.Fatalf("%s: expected class %s, got %s", test.name, test.expectedClass, class)
		}

		_, err := Validate(test.script)
		if test.expectedClass == NonStandardTy {
			if !errors.Is(err, ErrNonStandardScript) {
				t.Fatalf("%s: expected ErrNonStandardScript, got: %+v", test.name, err)
			}
		} else if err != nil {
			t.Fatalf("%s: Validate: %+v", test.name, err)
		}
	}

	if ScriptClass(100).String() != "Invalid" {
		t.Fatalf("unexpected name for an unknown script class")
	}
}

func TestPayToConstructors(t *testing.T) {
	_, err := PayToPubKeyHash(make([]byte, 19))
	if err == nil {
		t.Fatalf("PayToPubKeyHash with a 19 byte hash unexpectedly succeeded")
	}
	_, err = PayToPubKey(make([]byte, 33))
	if err == nil {
		t.Fatalf("PayToPubKey with a 33 byte key unexpectedly succeeded")
	}
}

func TestAddress(t *testing.T) {
	pubKeyHash := bytes.Repeat([]byte{0x33}, 20)
	script, err := PayToPubKeyHash(pubKeyHash)
	if err != nil {
		t.Fatalf("PayToPubKeyHash: %+v", err)
	}

	address, err := Address(script, 0x6f)
	if err != nil {
		t.Fatalf("Address: %+v", err)
	}
	decoded, version, err := base58.CheckDecode(address)
	if err != nil {
		t.Fatalf("CheckDecode: %+v", err)
	}
	if version != 0x6f || !bytes.Equal(decoded, pubKeyHash) {
		t.Fatalf("unexpected decoded address: version %x, payload %x", version, decoded)
	}

	mainnetAddress, err := Address(script, 0x00)
	if err != nil {
		t.Fatalf("Address: %+v", err)
	}
	if mainnetAddress == address {
		t.Fatalf("addresses of different networks are equal")
	}

	_, err = Address([]byte{0x01}, 0x00)
	if !errors.Is(err, ErrNonStandardScript) {
		t.Fatalf("expected ErrNonStandardScript, got: %+v", err)
	}
}
