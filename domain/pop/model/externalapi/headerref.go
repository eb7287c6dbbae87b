package externalapi

import "fmt"

// HeaderRef identifies a block in any of the local, intermediate or security
// chains by its hash and height. A HeaderRef is immutable once accepted.
type HeaderRef struct {
	Hash   *DomainHash
	Height uint64
}

// NewHeaderRef returns a new HeaderRef
func NewHeaderRef(hash *DomainHash, height uint64) *HeaderRef {
	return &HeaderRef{
		Hash:   hash,
		Height: height,
	}
}

// Equal returns whether ref equals to other
func (ref *HeaderRef) Equal(other *HeaderRef) bool {
	if ref == nil || other == nil {
		return ref == other
	}
	return ref.Height == other.Height && ref.Hash.Equal(other.Hash)
}

// Clone returns a clone of HeaderRef
func (ref *HeaderRef) Clone() *HeaderRef {
	// DomainHash is read-only, so sharing it is safe
	return &HeaderRef{
		Hash:   ref.Hash,
		Height: ref.Height,
	}
}

func (ref *HeaderRef) String() string {
	return fmt.Sprintf("%s@%d", ref.Hash, ref.Height)
}

// LocalBlock is a block of the local chain, as announced by the storage layer
type LocalBlock struct {
	*HeaderRef
	ParentHash *DomainHash
}
