package forkselector

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/testutils"
	"github.com/kaspanet/popd/domain/popconfig"
)

// fakePopScoreCalculator returns preset scores, zero for unknown tips
type fakePopScoreCalculator struct {
	scores map[externalapi.DomainHash]uint64
}

func (f *fakePopScoreCalculator) PopScore(tip *model.BlockNode) (uint64, error) {
	return f.scores[*tip.Hash()], nil
}

func (f *fakePopScoreCalculator) EndorsementWeight(*externalapi.Endorsement, model.EndorsementIndexReader,
	uint64, uint64) uint64 {
	return 0
}

func (f *fakePopScoreCalculator) ViewFor(*model.BlockNode) model.EndorsementIndexReader {
	return nil
}

func (f *fakePopScoreCalculator) InvalidateCache() {}

func newNode(block *externalapi.LocalBlock, work uint64, arrival uint64) *model.BlockNode {
	return &model.BlockNode{
		Ref:            block.HeaderRef,
		CumulativeWork: uint256.NewInt(work),
		Arrival:        arrival,
	}
}

func TestCompare(t *testing.T) {
	params := popconfig.RegtestParams
	blocks := testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 4, "compare")
	fork := testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 4, "compare-fork")

	highScore := newNode(blocks[0], 10, 1)
	moreWork := newNode(blocks[1], 100, 2)
	lessWork := newNode(blocks[2], 50, 3)
	earlier := newNode(fork[0], 100, 0)
	later := newNode(fork[1], 100, 5)

	calculator := &fakePopScoreCalculator{scores: map[externalapi.DomainHash]uint64{
		*highScore.Hash(): 500,
	}}
	selector := New(calculator)

	tests := []struct {
		name     string
		a, b     *model.BlockNode
		expected int
	}{
		{"same block", moreWork, moreWork, 0},
		{"higher score wins over work", highScore, moreWork, 1},
		{"lower score loses", moreWork, highScore, -1},
		{"more work wins on equal scores", moreWork, lessWork, 1},
		{"less work loses on equal scores", lessWork, moreWork, -1},
		{"earlier arrival wins on equal work", earlier, later, 1},
		{"later arrival loses on equal work", later, earlier, -1},
	}
	for _, test := range tests {
		comparison, err := selector.Compare(test.a, test.b)
		if err != nil {
			t.Fatalf("%s: Compare: %+v", test.name, err)
		}
		if comparison != test.expected {
			t.Fatalf("%s: expected %d, got %d", test.name, test.expected, comparison)
		}
	}
}

func TestSelectBest(t *testing.T) {
	params := popconfig.RegtestParams
	blocks := testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 4, "select")

	nodes := []*model.BlockNode{
		newNode(blocks[0], 100, 1),
		newNode(blocks[1], 300, 2),
		newNode(blocks[2], 300, 3),
		newNode(blocks[3], 200, 4),
	}
	calculator := &fakePopScoreCalculator{scores: map[externalapi.DomainHash]uint64{}}
	selector := New(calculator)

	best, err := selector.SelectBest(nodes)
	if err != nil {
		t.Fatalf("SelectBest: %+v", err)
	}
	if best != nodes[1] {
		t.Fatalf("expected %s to be selected, got %s", nodes[1], best)
	}

	// The choice does not depend on the order of the candidates
	reversed := []*model.BlockNode{nodes[3], nodes[2], nodes[1], nodes[0]}
	best, err = selector.SelectBest(reversed)
	if err != nil {
		t.Fatalf("SelectBest: %+v", err)
	}
	if best != nodes[1] {
		t.Fatalf("expected %s to be selected from reversed candidates, got %s", nodes[1], best)
	}

	calculator.scores[*nodes[0].Hash()] = 1
	best, err = selector.SelectBest(nodes)
	if err != nil {
		t.Fatalf("SelectBest: %+v", err)
	}
	if best != nodes[0] {
		t.Fatalf("expected the endorsed %s to be selected, got %s", nodes[0], best)
	}

	_, err = selector.SelectBest(nil)
	if err == nil {
		t.Fatalf("SelectBest of no candidates unexpectedly succeeded")
	}
}
