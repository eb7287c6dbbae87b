package model

import "github.com/kaspanet/popd/domain/pop/model/externalapi"

// EndorsementIndexReader is the read-only part of the endorsement index
type EndorsementIndexReader interface {
	// Query returns the endorsements of endorsedHash whose containing block
	// height is within [windowStart, windowEnd], ordered by endorsement ID.
	Query(endorsedHash *externalapi.DomainHash, windowStart, windowEnd uint64) []*externalapi.Endorsement
	Has(endorsementID *externalapi.DomainHash) bool
	Len() int
}

// EndorsementIndex holds the endorsements contained in the blocks of the
// selected chain, keyed by the block they endorse.
type EndorsementIndex interface {
	EndorsementIndexReader
	Insert(endorsement *externalapi.Endorsement) bool
	Remove(endorsement *externalapi.Endorsement) bool
	Commitment() *externalapi.DomainHash
	View(removed, added []*externalapi.Endorsement) EndorsementIndexReader
	All() []*externalapi.Endorsement
	Clear()
}
