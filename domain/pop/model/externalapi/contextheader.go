package externalapi

import "fmt"

// ContextChainID identifies one of the externally-observed chains
type ContextChainID uint8

const (
	// IntermediateChain is the chain that endorses local blocks
	IntermediateChain ContextChainID = iota

	// SecurityChain is the top-level chain that endorses intermediate blocks
	SecurityChain
)

var contextChainIDStrings = map[ContextChainID]string{
	IntermediateChain: "intermediate",
	SecurityChain:     "security",
}

func (id ContextChainID) String() string {
	if s, ok := contextChainIDStrings[id]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", uint8(id))
}

// ContextHeader is a header of one of the externally-observed chains.
// Its hash is the blake2b digest of its serialization and is therefore
// never trusted from the wire.
type ContextHeader struct {
	Version    uint32
	Height     uint64
	PrevHash   *DomainHash
	MerkleRoot *DomainHash
	Timestamp  int64
	Nonce      uint64
}

// Clone returns a clone of ContextHeader
func (header *ContextHeader) Clone() *ContextHeader {
	return &ContextHeader{
		Version:    header.Version,
		Height:     header.Height,
		PrevHash:   header.PrevHash,
		MerkleRoot: header.MerkleRoot,
		Timestamp:  header.Timestamp,
		Nonce:      header.Nonce,
	}
}

// Equal returns whether header equals to other
func (header *ContextHeader) Equal(other *ContextHeader) bool {
	if header == nil || other == nil {
		return header == other
	}
	return header.Version == other.Version &&
		header.Height == other.Height &&
		header.PrevHash.Equal(other.PrevHash) &&
		header.MerkleRoot.Equal(other.MerkleRoot) &&
		header.Timestamp == other.Timestamp &&
		header.Nonce == other.Nonce
}
