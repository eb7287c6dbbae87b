package endorsementindex

import (
	"testing"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/kaspanet/popd/domain/pop/utils/testutils"
	"github.com/kaspanet/popd/domain/popconfig"
)

// buildEndorsements returns one unsigned endorsement of endorsed per
// containing block. Signatures do not affect endorsement IDs.
func buildEndorsements(endorsed *externalapi.HeaderRef, containing []*externalapi.LocalBlock) []*externalapi.Endorsement {
	header := testutils.BuildContextHeaders(popconfig.RegtestParams.IntermediateBootstrap, 1, 1)[0]
	endorsements := make([]*externalapi.Endorsement, len(containing))
	for i, block := range containing {
		endorsements[i] = &externalapi.Endorsement{
			Kind:            externalapi.FirstOrder,
			EndorsedBlock:   endorsed,
			EndorsingHeader: header,
			EndorsingBlock:  pophashing.HeaderRef(header),
			ContainingBlock: block.HeaderRef,
		}
	}
	return endorsements
}

func TestInsertAndRemove(t *testing.T) {
	params := popconfig.RegtestParams
	blocks := testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 10, "index")
	endorsements := buildEndorsements(blocks[0].HeaderRef, blocks[1:])

	index := New()
	emptyCommitment := index.Commitment()
	for _, endorsement := range endorsements {
		if !index.Insert(endorsement) {
			t.Fatalf("Insert of %s returned false", endorsement)
		}
	}
	if index.Insert(endorsements[3]) {
		t.Fatalf("second Insert of the same endorsement returned true")
	}
	if index.Len() != len(endorsements) {
		t.Fatalf("expected %d indexed endorsements, got %d", len(endorsements), index.Len())
	}
	if !index.Has(pophashing.EndorsementID(endorsements[0])) {
		t.Fatalf("Has returned false for an indexed endorsement")
	}

	for _, endorsement := range endorsements {
		if !index.Remove(endorsement) {
			t.Fatalf("Remove of %s returned false", endorsement)
		}
	}
	if index.Remove(endorsements[0]) {
		t.Fatalf("Remove of an endorsement that is not indexed returned true")
	}
	if index.Len() != 0 {
		t.Fatalf("expected an empty index, got %d endorsements", index.Len())
	}
	if !index.Commitment().Equal(emptyCommitment) {
		t.Fatalf("commitment of an emptied index differs from the empty commitment")
	}
}

func TestCommitmentIsOrderIndependent(t *testing.T) {
	params := popconfig.RegtestParams
	blocks := testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 8, "order")
	endorsements := buildEndorsements(blocks[0].HeaderRef, blocks[1:])

	forward := New()
	for _, endorsement := range endorsements {
		forward.Insert(endorsement)
	}
	backward := New()
	for i := len(endorsements) - 1; i >= 0; i-- {
		backward.Insert(endorsements[i])
	}
	if !forward.Commitment().Equal(backward.Commitment()) {
		t.Fatalf("commitment depends on insertion order")
	}

	forward.Remove(endorsements[2])
	if forward.Commitment().Equal(backward.Commitment()) {
		t.Fatalf("commitment did not change after removing an endorsement")
	}
	forward.Insert(endorsements[2])
	if !forward.Commitment().Equal(backward.Commitment()) {
		t.Fatalf("commitment did not return to its value after re-inserting an endorsement")
	}

	forward.Clear()
	if forward.Len() != 0 || !forward.Commitment().Equal(New().Commitment()) {
		t.Fatalf("Clear did not empty the index")
	}
}

func TestQuery(t *testing.T) {
	params := popconfig.RegtestParams
	blocks := testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 10, "query")
	endorsements := buildEndorsements(blocks[0].HeaderRef, blocks[1:])
	other := buildEndorsements(blocks[1].HeaderRef, blocks[2:4])

	index := New()
	for _, endorsement := range append(endorsements, other...) {
		index.Insert(endorsement)
	}

	tests := []struct {
		name          string
		endorsed      *externalapi.DomainHash
		windowStart   uint64
		windowEnd     uint64
		expectedCount int
	}{
		{name: "whole chain", endorsed: blocks[0].Hash, windowStart: 0, windowEnd: 100, expectedCount: 9},
		{name: "window", endorsed: blocks[0].Hash, windowStart: 3, windowEnd: 5, expectedCount: 3},
		{name: "single height", endorsed: blocks[0].Hash, windowStart: 7, windowEnd: 7, expectedCount: 1},
		{name: "above the chain", endorsed: blocks[0].Hash, windowStart: 11, windowEnd: 20, expectedCount: 0},
		{name: "other endorsed block", endorsed: blocks[1].Hash, windowStart: 0, windowEnd: 100, expectedCount: 2},
		{name: "never endorsed", endorsed: blocks[5].Hash, windowStart: 0, windowEnd: 100, expectedCount: 0},
	}
	for _, test := range tests {
		found := index.Query(test.endorsed, test.windowStart, test.windowEnd)
		if len(found) != test.expectedCount {
			t.Fatalf("%s: expected %d endorsements, got %d", test.name, test.expectedCount, len(found))
		}
		for i := 1; i < len(found); i++ {
			if !pophashing.EndorsementID(found[i-1]).Less(pophashing.EndorsementID(found[i])) {
				t.Fatalf("%s: results are not ordered by endorsement ID", test.name)
			}
		}
	}

	all := index.All()
	if len(all) != 11 {
		t.Fatalf("expected 11 endorsements from All, got %d", len(all))
	}
}

func TestView(t *testing.T) {
	params := popconfig.RegtestParams
	blocks := testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 6, "view")
	fork := testutils.BuildBlocks(blocks[2].HeaderRef, 3, "view-fork")
	endorsements := buildEndorsements(blocks[0].HeaderRef, blocks[1:])
	forkEndorsements := buildEndorsements(blocks[0].HeaderRef, fork)

	index := New()
	for _, endorsement := range endorsements {
		index.Insert(endorsement)
	}
	commitment := index.Commitment()

	// Switching from blocks[3:] to the fork
	view := index.View(endorsements[2:], forkEndorsements)
	if view.Len() != 5 {
		t.Fatalf("expected 5 endorsements in the view, got %d", view.Len())
	}
	if view.Has(pophashing.EndorsementID(endorsements[3])) {
		t.Fatalf("the view still has a removed endorsement")
	}
	if !view.Has(pophashing.EndorsementID(forkEndorsements[0])) {
		t.Fatalf("the view lacks an added endorsement")
	}
	found := view.Query(blocks[0].Hash, 0, 100)
	if len(found) != 5 {
		t.Fatalf("expected 5 endorsements from the view query, got %d", len(found))
	}
	for _, endorsement := range found {
		if endorsement.ContainingBlock.Hash.Equal(blocks[3].Hash) {
			t.Fatalf("the view query returned a removed endorsement")
		}
	}
	if len(view.Query(blocks[0].Hash, 4, 4)) != 1 {
		t.Fatalf("expected exactly the fork endorsement at height 4")
	}

	// Removing something that is not indexed and adding something that is
	// are both no-ops
	noop := index.View(forkEndorsements, endorsements[:1])
	if noop.Len() != index.Len() {
		t.Fatalf("expected a no-op view to have %d endorsements, got %d", index.Len(), noop.Len())
	}

	if index.Len() != len(endorsements) || !index.Commitment().Equal(commitment) {
		t.Fatalf("creating views modified the index")
	}
}
