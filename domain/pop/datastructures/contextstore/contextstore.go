package contextstore

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
)

type contextStore struct {
	intermediate *contextChain
	security     *contextChain
}

// New instantiates a new ContextStore rooted at the given bootstrap headers
func New(intermediateRoot, securityRoot *externalapi.ContextHeader) model.ContextStore {
	return &contextStore{
		intermediate: newContextChain(externalapi.IntermediateChain, intermediateRoot),
		security:     newContextChain(externalapi.SecurityChain, securityRoot),
	}
}

// Chain returns the context chain with the given ID. It panics on unknown IDs.
func (cs *contextStore) Chain(chainID externalapi.ContextChainID) model.ContextChain {
	switch chainID {
	case externalapi.IntermediateChain:
		return cs.intermediate
	case externalapi.SecurityChain:
		return cs.security
	}
	panic(chainID.String() + " is not a context chain")
}

// Reset drops everything but the bootstrap headers
func (cs *contextStore) Reset() {
	cs.intermediate.reset()
	cs.security.reset()
}
