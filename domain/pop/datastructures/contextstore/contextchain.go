package contextstore

import (
	"sort"

	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/pkg/errors"
)

type contextChain struct {
	id      externalapi.ContextChainID
	root    *externalapi.ContextHeader
	rootRef *externalapi.HeaderRef
	headers map[externalapi.DomainHash]*externalapi.ContextHeader
	tip     *externalapi.HeaderRef
}

func newContextChain(id externalapi.ContextChainID, root *externalapi.ContextHeader) *contextChain {
	chain := &contextChain{id: id, root: root.Clone()}
	chain.reset()
	return chain
}

func (cc *contextChain) reset() {
	cc.rootRef = pophashing.HeaderRef(cc.root)
	cc.headers = map[externalapi.DomainHash]*externalapi.ContextHeader{
		*cc.rootRef.Hash: cc.root,
	}
	cc.tip = cc.rootRef
}

func (cc *contextChain) ID() externalapi.ContextChainID {
	return cc.id
}

func (cc *contextChain) Root() *externalapi.HeaderRef {
	return cc.rootRef
}

func (cc *contextChain) Tip() *externalapi.HeaderRef {
	return cc.tip
}

func (cc *contextChain) Has(hash *externalapi.DomainHash) bool {
	_, ok := cc.headers[*hash]
	return ok
}

func (cc *contextChain) Get(hash *externalapi.DomainHash) (*externalapi.ContextHeader, bool) {
	header, ok := cc.headers[*hash]
	return header, ok
}

func (cc *contextChain) Len() int {
	return len(cc.headers)
}

// Add stores the given headers. They may arrive in any order but every one
// of them must link, directly or through the others, to an already stored
// header. Headers that are already stored are skipped. Add returns the
// number of headers that were actually added.
func (cc *contextChain) Add(headers []*externalapi.ContextHeader) (int, error) {
	type pendingHeader struct {
		header *externalapi.ContextHeader
		ref    *externalapi.HeaderRef
	}
	pending := make([]pendingHeader, 0, len(headers))
	for _, header := range headers {
		ref := pophashing.HeaderRef(header)
		if cc.Has(ref.Hash) {
			continue
		}
		pending = append(pending, pendingHeader{header: header, ref: ref})
	}

	// Validate the whole batch before touching the chain
	staged := make(map[externalapi.DomainHash]*externalapi.ContextHeader, len(pending))
	ordered := make([]pendingHeader, 0, len(pending))
	for len(pending) > 0 {
		remaining := pending[:0]
		for _, candidate := range pending {
			parent, ok := cc.headers[*candidate.header.PrevHash]
			if !ok {
				parent, ok = staged[*candidate.header.PrevHash]
			}
			if !ok {
				remaining = append(remaining, candidate)
				continue
			}
			if parent.Height+1 != candidate.header.Height {
				return 0, errors.Errorf("%s header %s has height %d while its parent has height %d",
					cc.id, candidate.ref.Hash, candidate.header.Height, parent.Height)
			}
			staged[*candidate.ref.Hash] = candidate.header
			ordered = append(ordered, candidate)
		}
		if len(remaining) == len(pending) {
			return 0, errors.Errorf("%d %s headers do not connect to the stored chain, first is %s",
				len(remaining), cc.id, remaining[0].ref.Hash)
		}
		pending = remaining
	}

	for _, added := range ordered {
		cc.headers[*added.ref.Hash] = added.header.Clone()
		if added.ref.Height > cc.tip.Height {
			cc.tip = added.ref
		}
	}
	return len(ordered), nil
}

// LastKnownHeaders returns up to count headers walking back from the tip,
// newest first.
func (cc *contextChain) LastKnownHeaders(count int) []*externalapi.HeaderRef {
	refs := make([]*externalapi.HeaderRef, 0, count)
	current := cc.tip
	for len(refs) < count {
		refs = append(refs, current)
		header := cc.headers[*current.Hash]
		if current.Hash.Equal(cc.rootRef.Hash) {
			break
		}
		current = externalapi.NewHeaderRef(header.PrevHash, header.Height-1)
	}
	return refs
}

// Headers returns all stored headers ordered by height, root first
func (cc *contextChain) Headers() []*externalapi.ContextHeader {
	type hashedHeader struct {
		hash   *externalapi.DomainHash
		header *externalapi.ContextHeader
	}
	all := make([]hashedHeader, 0, len(cc.headers))
	for hash, header := range cc.headers {
		hash := hash
		all = append(all, hashedHeader{hash: &hash, header: header})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].header.Height != all[j].header.Height {
			return all[i].header.Height < all[j].header.Height
		}
		return all[i].hash.Less(all[j].hash)
	})

	headers := make([]*externalapi.ContextHeader, len(all))
	for i, entry := range all {
		headers[i] = entry.header.Clone()
	}
	return headers
}

var _ model.ContextChain = (*contextChain)(nil)
