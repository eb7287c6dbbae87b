package reorgexecutor

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/datastructures/contextstore"
	"github.com/kaspanet/popd/domain/pop/datastructures/endorsementindex"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/processes/chaintraversal"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/kaspanet/popd/domain/pop/utils/testutils"
	"github.com/kaspanet/popd/domain/popconfig"
	"github.com/pkg/errors"
)

// fakeForkSelector always prefers the node set in best
type fakeForkSelector struct {
	best *model.BlockNode
}

func (f *fakeForkSelector) Compare(a, b *model.BlockNode) (int, error) {
	switch {
	case a == b:
		return 0, nil
	case a == f.best:
		return 1, nil
	default:
		return -1, nil
	}
}

func (f *fakeForkSelector) SelectBest(candidates []*model.BlockNode) (*model.BlockNode, error) {
	for _, candidate := range candidates {
		if candidate == f.best {
			return candidate, nil
		}
	}
	return candidates[0], nil
}

type countingPopScoreCalculator struct {
	invalidations int
}

func (c *countingPopScoreCalculator) PopScore(*model.BlockNode) (uint64, error) {
	return 0, nil
}

func (c *countingPopScoreCalculator) EndorsementWeight(*externalapi.Endorsement, model.EndorsementIndexReader,
	uint64, uint64) uint64 {
	return 0
}

func (c *countingPopScoreCalculator) ViewFor(*model.BlockNode) model.EndorsementIndexReader {
	return nil
}

func (c *countingPopScoreCalculator) InvalidateCache() {
	c.invalidations++
}

type reorgTestContext struct {
	blockIndex       model.BlockIndex
	endorsementIndex model.EndorsementIndex
	forkSelector     *fakeForkSelector
	calculator       *countingPopScoreCalculator
	executor         model.ReorgExecutor

	trunk []*model.BlockNode
	fork  []*model.BlockNode
}

func setupReorgTest(t *testing.T) *reorgTestContext {
	params := popconfig.RegtestParams
	tc := &reorgTestContext{
		blockIndex:       contextstore.NewBlockIndex(params.GenesisBlock, uint256.NewInt(0)),
		endorsementIndex: endorsementindex.New(),
		forkSelector:     &fakeForkSelector{},
		calculator:       &countingPopScoreCalculator{},
	}
	tc.executor = New(tc.blockIndex, tc.endorsementIndex, chaintraversal.New(), tc.forkSelector, tc.calculator)

	addBlocks := func(blocks []*externalapi.LocalBlock) []*model.BlockNode {
		nodes := make([]*model.BlockNode, len(blocks))
		for i, block := range blocks {
			node, err := tc.blockIndex.AddBlock(block, uint256.NewInt(block.Height))
			if err != nil {
				t.Fatalf("AddBlock: %+v", err)
			}
			nodes[i] = node
		}
		return nodes
	}
	tc.trunk = addBlocks(testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 6, "reorg"))
	tc.fork = addBlocks(testutils.BuildBlocks(tc.trunk[1].Ref, 4, "reorg-fork"))

	// Every block but the first endorses its parent
	header := testutils.BuildContextHeaders(params.IntermediateBootstrap, 1, 1)[0]
	for _, chain := range [][]*model.BlockNode{tc.trunk, tc.fork} {
		for _, node := range chain {
			if node.Parent == tc.blockIndex.Genesis() {
				continue
			}
			err := tc.blockIndex.AddEndorsement(node, &externalapi.Endorsement{
				Kind:            externalapi.FirstOrder,
				EndorsedBlock:   node.Parent.Ref,
				EndorsingHeader: header,
				EndorsingBlock:  pophashing.HeaderRef(header),
				ContainingBlock: node.Ref,
			})
			if err != nil {
				t.Fatalf("AddEndorsement: %+v", err)
			}
		}
	}
	return tc
}

// checkIndexMatchesSelectedChain verifies that the endorsement index holds
// exactly the endorsements of the selected chain
func checkIndexMatchesSelectedChain(t *testing.T, tc *reorgTestContext) {
	expected := endorsementindex.New()
	for current := tc.blockIndex.SelectedTip(); current != nil; current = current.Parent {
		for _, endorsement := range current.Endorsements {
			expected.Insert(endorsement)
		}
	}
	if expected.Len() != tc.endorsementIndex.Len() ||
		!expected.Commitment().Equal(tc.endorsementIndex.Commitment()) {
		t.Fatalf("the endorsement index does not match the selected chain ending at %s",
			tc.blockIndex.SelectedTip())
	}
}

func TestReorganizeTo(t *testing.T) {
	tc := setupReorgTest(t)

	tc.forkSelector.best = tc.trunk[5]
	changes, err := tc.executor.ReorganizeTo(tc.trunk[5])
	if err != nil {
		t.Fatalf("ReorganizeTo: %+v", err)
	}
	if len(changes.Removed) != 0 || len(changes.Added) != 6 {
		t.Fatalf("unexpected changes: %d removed, %d added", len(changes.Removed), len(changes.Added))
	}
	if tc.blockIndex.SelectedTip() != tc.trunk[5] || tc.endorsementIndex.Len() != 5 {
		t.Fatalf("unexpected state after reorganizing to the trunk")
	}
	checkIndexMatchesSelectedChain(t, tc)

	tc.forkSelector.best = tc.fork[3]
	changes, err = tc.executor.ReorganizeTo(tc.fork[3])
	if err != nil {
		t.Fatalf("ReorganizeTo: %+v", err)
	}
	if changes.CommonAncestor != tc.trunk[1] || len(changes.Removed) != 4 || len(changes.Added) != 4 {
		t.Fatalf("unexpected changes switching to the fork")
	}
	if tc.blockIndex.SelectedTip() != tc.fork[3] || tc.blockIndex.IsInSelectedChain(tc.trunk[2]) {
		t.Fatalf("unexpected selected chain after switching to the fork")
	}
	checkIndexMatchesSelectedChain(t, tc)

	if tc.calculator.invalidations != 2 {
		t.Fatalf("expected 2 cache invalidations, got %d", tc.calculator.invalidations)
	}
}

func TestReorganizeToRollsBack(t *testing.T) {
	tc := setupReorgTest(t)

	tc.forkSelector.best = tc.trunk[5]
	_, err := tc.executor.ReorganizeTo(tc.trunk[5])
	if err != nil {
		t.Fatalf("ReorganizeTo: %+v", err)
	}
	commitment := tc.endorsementIndex.Commitment()

	// The fork selector still prefers the trunk, so moving to the fork
	// breaks the reorg invariant
	_, err = tc.executor.ReorganizeTo(tc.fork[3])
	if !errors.Is(err, ruleerrors.ErrReorgInvariantViolation) {
		t.Fatalf("expected ErrReorgInvariantViolation, got: %+v", err)
	}
	if tc.blockIndex.SelectedTip() != tc.trunk[5] {
		t.Fatalf("the selected tip was not restored, got %s", tc.blockIndex.SelectedTip())
	}
	if !tc.endorsementIndex.Commitment().Equal(commitment) {
		t.Fatalf("the endorsement index was not restored")
	}
	checkIndexMatchesSelectedChain(t, tc)
}
