package endorsementindex

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
)

// view is a read-only overlay over the index, staging a set of removals and
// additions without applying them.
type view struct {
	base      *endorsementIndex
	removed   map[externalapi.DomainHash]struct{}
	added     map[externalapi.DomainHash]map[externalapi.DomainHash]*indexedEndorsement
	addedByID map[externalapi.DomainHash]struct{}
	length    int
}

// View returns the index as it would be after removing removed and then
// adding added. The index itself is not modified, and the view must not be
// used after the index is.
func (ei *endorsementIndex) View(removed, added []*externalapi.Endorsement) model.EndorsementIndexReader {
	v := &view{
		base:      ei,
		removed:   make(map[externalapi.DomainHash]struct{}, len(removed)),
		added:     make(map[externalapi.DomainHash]map[externalapi.DomainHash]*indexedEndorsement),
		addedByID: make(map[externalapi.DomainHash]struct{}, len(added)),
		length:    ei.Len(),
	}

	for _, endorsement := range removed {
		id := pophashing.EndorsementID(endorsement)
		if !ei.Has(id) {
			continue
		}
		if _, ok := v.removed[*id]; ok {
			continue
		}
		v.removed[*id] = struct{}{}
		v.length--
	}

	for _, endorsement := range added {
		id := pophashing.EndorsementID(endorsement)
		if v.Has(id) {
			continue
		}
		endorsedHash := *endorsement.EndorsedBlock.Hash
		entries, ok := v.added[endorsedHash]
		if !ok {
			entries = make(map[externalapi.DomainHash]*indexedEndorsement)
			v.added[endorsedHash] = entries
		}
		entries[*id] = &indexedEndorsement{id: id, endorsement: endorsement}
		v.addedByID[*id] = struct{}{}
		v.length++
	}
	return v
}

func (v *view) Query(endorsedHash *externalapi.DomainHash, windowStart, windowEnd uint64) []*externalapi.Endorsement {
	var found []*indexedEndorsement
	for id, entry := range v.base.byEndorsed[*endorsedHash] {
		if _, ok := v.removed[id]; ok {
			continue
		}
		if inWindow(entry.endorsement, windowStart, windowEnd) {
			found = append(found, entry)
		}
	}
	for _, entry := range v.added[*endorsedHash] {
		if inWindow(entry.endorsement, windowStart, windowEnd) {
			found = append(found, entry)
		}
	}
	return sortedEndorsements(found)
}

func (v *view) Has(endorsementID *externalapi.DomainHash) bool {
	if _, ok := v.addedByID[*endorsementID]; ok {
		return true
	}
	if _, ok := v.removed[*endorsementID]; ok {
		return false
	}
	return v.base.Has(endorsementID)
}

func (v *view) Len() int {
	return v.length
}
