package endorsementindex

import (
	"sort"

	"github.com/kaspanet/go-muhash"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
)

type indexedEndorsement struct {
	id          *externalapi.DomainHash
	endorsement *externalapi.Endorsement
}

type endorsementIndex struct {
	byEndorsed map[externalapi.DomainHash]map[externalapi.DomainHash]*indexedEndorsement
	byID       map[externalapi.DomainHash]*indexedEndorsement
	commitment *muhash.MuHash
}

// New instantiates a new, empty EndorsementIndex
func New() model.EndorsementIndex {
	ei := &endorsementIndex{}
	ei.Clear()
	return ei
}

func (ei *endorsementIndex) Clear() {
	ei.byEndorsed = make(map[externalapi.DomainHash]map[externalapi.DomainHash]*indexedEndorsement)
	ei.byID = make(map[externalapi.DomainHash]*indexedEndorsement)
	ei.commitment = muhash.NewMuHash()
}

// Insert indexes endorsement. It returns false if an endorsement with the
// same ID is already indexed.
func (ei *endorsementIndex) Insert(endorsement *externalapi.Endorsement) bool {
	id := pophashing.EndorsementID(endorsement)
	if _, exists := ei.byID[*id]; exists {
		return false
	}

	entry := &indexedEndorsement{id: id, endorsement: endorsement}
	ei.byID[*id] = entry
	endorsedHash := *endorsement.EndorsedBlock.Hash
	entries, ok := ei.byEndorsed[endorsedHash]
	if !ok {
		entries = make(map[externalapi.DomainHash]*indexedEndorsement)
		ei.byEndorsed[endorsedHash] = entries
	}
	entries[*id] = entry
	ei.commitment.Add(id.ByteSlice())
	return true
}

// Remove drops endorsement from the index. It returns false if it was not
// indexed.
func (ei *endorsementIndex) Remove(endorsement *externalapi.Endorsement) bool {
	id := pophashing.EndorsementID(endorsement)
	entry, exists := ei.byID[*id]
	if !exists {
		return false
	}

	delete(ei.byID, *id)
	endorsedHash := *entry.endorsement.EndorsedBlock.Hash
	entries := ei.byEndorsed[endorsedHash]
	delete(entries, *id)
	if len(entries) == 0 {
		delete(ei.byEndorsed, endorsedHash)
	}
	ei.commitment.Remove(id.ByteSlice())
	return true
}

func (ei *endorsementIndex) Query(endorsedHash *externalapi.DomainHash, windowStart, windowEnd uint64) []*externalapi.Endorsement {
	var found []*indexedEndorsement
	for _, entry := range ei.byEndorsed[*endorsedHash] {
		if inWindow(entry.endorsement, windowStart, windowEnd) {
			found = append(found, entry)
		}
	}
	return sortedEndorsements(found)
}

func (ei *endorsementIndex) Has(endorsementID *externalapi.DomainHash) bool {
	_, ok := ei.byID[*endorsementID]
	return ok
}

func (ei *endorsementIndex) Len() int {
	return len(ei.byID)
}

// Commitment returns a hash of the set of indexed endorsement IDs. It does
// not depend on the order in which endorsements were inserted.
func (ei *endorsementIndex) Commitment() *externalapi.DomainHash {
	finalized := ei.commitment.Finalize()
	array := [externalapi.DomainHashSize]byte(finalized)
	return externalapi.NewDomainHashFromByteArray(&array)
}

// All returns every indexed endorsement ordered by ID
func (ei *endorsementIndex) All() []*externalapi.Endorsement {
	all := make([]*indexedEndorsement, 0, len(ei.byID))
	for _, entry := range ei.byID {
		all = append(all, entry)
	}
	return sortedEndorsements(all)
}

func inWindow(endorsement *externalapi.Endorsement, windowStart, windowEnd uint64) bool {
	height := endorsement.ContainingBlock.Height
	return height >= windowStart && height <= windowEnd
}

func sortedEndorsements(entries []*indexedEndorsement) []*externalapi.Endorsement {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id.Less(entries[j].id)
	})
	endorsements := make([]*externalapi.Endorsement, len(entries))
	for i, entry := range entries {
		endorsements[i] = entry.endorsement
	}
	return endorsements
}
