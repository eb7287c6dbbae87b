package serialization

import (
	"io"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
)

// SerializeHeaderRef writes a HeaderRef as hash followed by height
func SerializeHeaderRef(w io.Writer, ref *externalapi.HeaderRef) error {
	return WriteElements(w, ref.Hash, ref.Height)
}

// DeserializeHeaderRef reads a HeaderRef written by SerializeHeaderRef
func DeserializeHeaderRef(r io.Reader) (*externalapi.HeaderRef, error) {
	ref := &externalapi.HeaderRef{}
	err := ReadElements(r, &ref.Hash, &ref.Height)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// SerializeContextHeader writes the canonical serialization of a context header.
// This is also the preimage of the header's hash.
func SerializeContextHeader(w io.Writer, header *externalapi.ContextHeader) error {
	return WriteElements(w, header.Version, header.Height, header.PrevHash, header.MerkleRoot,
		header.Timestamp, header.Nonce)
}

// DeserializeContextHeader reads a context header written by SerializeContextHeader
func DeserializeContextHeader(r io.Reader) (*externalapi.ContextHeader, error) {
	header := &externalapi.ContextHeader{}
	err := ReadElements(r, &header.Version, &header.Height, &header.PrevHash, &header.MerkleRoot,
		&header.Timestamp, &header.Nonce)
	if err != nil {
		return nil, err
	}
	return header, nil
}
