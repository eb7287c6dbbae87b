package model

import "github.com/kaspanet/popd/domain/pop/model/externalapi"

// ContextChain is a hash-linked chain of headers of an externally-observed
// chain, rooted at a trusted bootstrap header. Every stored header other
// than the root has its PrevHash stored as well.
type ContextChain interface {
	ID() externalapi.ContextChainID
	Root() *externalapi.HeaderRef
	Tip() *externalapi.HeaderRef
	Has(hash *externalapi.DomainHash) bool
	Get(hash *externalapi.DomainHash) (*externalapi.ContextHeader, bool)
	Add(headers []*externalapi.ContextHeader) (int, error)
	LastKnownHeaders(count int) []*externalapi.HeaderRef
	Headers() []*externalapi.ContextHeader
	Len() int
}

// ContextStore holds both context chains
type ContextStore interface {
	Chain(chainID externalapi.ContextChainID) ContextChain
	Reset()
}
