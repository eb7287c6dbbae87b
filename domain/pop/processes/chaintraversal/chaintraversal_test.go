package chaintraversal

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/datastructures/contextstore"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/testutils"
	"github.com/kaspanet/popd/domain/popconfig"
)

func addBlocks(t *testing.T, blockIndex model.BlockIndex, blocks []*externalapi.LocalBlock) []*model.BlockNode {
	nodes := make([]*model.BlockNode, len(blocks))
	for i, block := range blocks {
		node, err := blockIndex.AddBlock(block, uint256.NewInt(uint64(i)))
		if err != nil {
			t.Fatalf("AddBlock: %+v", err)
		}
		nodes[i] = node
	}
	return nodes
}

func TestChainChanges(t *testing.T) {
	params := popconfig.RegtestParams
	blockIndex := contextstore.NewBlockIndex(params.GenesisBlock, uint256.NewInt(0))
	traversal := New()

	trunk := addBlocks(t, blockIndex, testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 5, "trunk"))
	forkA := addBlocks(t, blockIndex, testutils.BuildBlocks(trunk[2].Ref, 3, "a"))
	forkB := addBlocks(t, blockIndex, testutils.BuildBlocks(trunk[2].Ref, 1, "b"))

	changes := traversal.ChainChanges(forkA[2], forkB[0])
	if changes.CommonAncestor != trunk[2] {
		t.Fatalf("expected common ancestor %s, got %s", trunk[2], changes.CommonAncestor)
	}
	if len(changes.Removed) != 3 || changes.Removed[0] != forkA[2] || changes.Removed[2] != forkA[0] {
		t.Fatalf("unexpected removed blocks %v", changes.Removed)
	}
	if len(changes.Added) != 1 || changes.Added[0] != forkB[0] {
		t.Fatalf("unexpected added blocks %v", changes.Added)
	}

	changes = traversal.ChainChanges(trunk[1], trunk[4])
	if len(changes.Removed) != 0 {
		t.Fatalf("moving forward removed %v", changes.Removed)
	}
	if len(changes.Added) != 3 || changes.Added[0] != trunk[2] || changes.Added[2] != trunk[4] {
		t.Fatalf("unexpected added blocks %v", changes.Added)
	}

	changes = traversal.ChainChanges(trunk[4], trunk[4])
	if len(changes.Removed) != 0 || len(changes.Added) != 0 || changes.CommonAncestor != trunk[4] {
		t.Fatalf("expected no changes between a block and itself")
	}
}

func TestWindow(t *testing.T) {
	params := popconfig.RegtestParams
	blockIndex := contextstore.NewBlockIndex(params.GenesisBlock, uint256.NewInt(0))
	traversal := New()
	chain := addBlocks(t, blockIndex, testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 10, "chain"))

	tests := []struct {
		tip            *model.BlockNode
		size           uint64
		expectedLength int
		expectedFirst  uint64
	}{
		{tip: chain[9], size: 4, expectedLength: 4, expectedFirst: 7},
		{tip: chain[9], size: 11, expectedLength: 11, expectedFirst: 0},
		{tip: chain[9], size: 100, expectedLength: 11, expectedFirst: 0},
		{tip: chain[0], size: 1, expectedLength: 1, expectedFirst: 1},
	}
	for i, test := range tests {
		window := traversal.Window(test.tip, test.size)
		if len(window) != test.expectedLength {
			t.Fatalf("test %d: expected window length %d, got %d", i, test.expectedLength, len(window))
		}
		if window[0].Height() != test.expectedFirst {
			t.Fatalf("test %d: expected the window to start at %d, got %d", i, test.expectedFirst, window[0].Height())
		}
		if window[len(window)-1] != test.tip {
			t.Fatalf("test %d: window does not end at the tip", i)
		}
		if WindowStart(test.tip.Height(), test.size) != test.expectedFirst {
			t.Fatalf("test %d: WindowStart disagrees with Window", i)
		}
	}
}
