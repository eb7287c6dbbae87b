package model

import (
	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
)

// SnapshotBlock is a block index entry within a Snapshot
type SnapshotBlock struct {
	Block          *externalapi.LocalBlock
	CumulativeWork *uint256.Int
	Arrival        uint64
}

// Snapshot is the full persistent state of the engine
type Snapshot struct {
	// Blocks are ordered so that every block follows its parent
	Blocks              []*SnapshotBlock
	SelectedTip         *externalapi.DomainHash
	IntermediateContext []*externalapi.ContextHeader
	SecurityContext     []*externalapi.ContextHeader
	// Endorsements holds every accepted endorsement, including those
	// contained in blocks outside the selected chain
	Endorsements []*externalapi.Endorsement
	// Commitment is the endorsement index commitment at SelectedTip
	Commitment *externalapi.DomainHash
}

// SnapshotStore persists snapshots
type SnapshotStore interface {
	Save(snapshot *Snapshot) error
	Load() (snapshot *Snapshot, found bool, err error)
	Close() error
}
