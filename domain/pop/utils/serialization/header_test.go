package serialization

import (
	"bytes"
	"testing"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
)

func TestContextHeaderSerialization(t *testing.T) {
	header := &externalapi.ContextHeader{
		Version:    1,
		Height:     7,
		PrevHash:   externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1}),
		MerkleRoot: externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{2}),
		Timestamp:  -5,
		Nonce:      9,
	}
	w := &bytes.Buffer{}
	err := SerializeContextHeader(w, header)
	if err != nil {
		t.Fatalf("SerializeContextHeader: %+v", err)
	}
	serialized := w.Bytes()

	deserialized, err := DeserializeContextHeader(bytes.NewReader(serialized))
	if err != nil {
		t.Fatalf("DeserializeContextHeader: %+v", err)
	}
	if !deserialized.Equal(header) {
		t.Fatalf("expected %+v, got %+v", header, deserialized)
	}

	_, err = DeserializeContextHeader(bytes.NewReader(serialized[:len(serialized)-1]))
	if !IsMalformedError(err) {
		t.Fatalf("expected a malformed error for a truncated header, got: %+v", err)
	}
}

func TestVarBytes(t *testing.T) {
	w := &bytes.Buffer{}
	err := WriteVarBytes(w, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("WriteVarBytes: %+v", err)
	}
	serialized := w.Bytes()

	data, err := ReadVarBytes(bytes.NewReader(serialized), 3, "test field")
	if err != nil {
		t.Fatalf("ReadVarBytes: %+v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("unexpected data %x", data)
	}

	_, err = ReadVarBytes(bytes.NewReader(serialized), 2, "test field")
	if !IsMalformedError(err) {
		t.Fatalf("expected a malformed error for data above the maximum length, got: %+v", err)
	}
	_, err = ReadVarBytes(bytes.NewReader(serialized[:5]), 3, "test field")
	if !IsMalformedError(err) {
		t.Fatalf("expected a malformed error for truncated data, got: %+v", err)
	}

	err = WriteElement(w, "unsupported")
	if err == nil {
		t.Fatalf("WriteElement of an unsupported type unexpectedly succeeded")
	}
}
