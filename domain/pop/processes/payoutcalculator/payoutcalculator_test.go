package payoutcalculator

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/datastructures/contextstore"
	"github.com/kaspanet/popd/domain/pop/datastructures/endorsementindex"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/processes/chaintraversal"
	"github.com/kaspanet/popd/domain/pop/processes/popscorecalculator"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/domain/pop/utils/payoutscript"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/kaspanet/popd/domain/pop/utils/testutils"
	"github.com/kaspanet/popd/domain/popconfig"
	"github.com/pkg/errors"
)

const (
	testRewardSettlementInterval = 5
	testPopRewardPerBlock        = 1000
	testScoringWindow            = 10
)

type payoutTestContext struct {
	blockIndex         model.BlockIndex
	endorsementIndex   model.EndorsementIndex
	popScoreCalculator model.PopScoreCalculator
	chain              []*model.BlockNode

	scriptA []byte
	scriptB []byte
}

func setupPayoutTest(t *testing.T) *payoutTestContext {
	params := popconfig.RegtestParams
	tc := &payoutTestContext{
		blockIndex:       contextstore.NewBlockIndex(params.GenesisBlock, uint256.NewInt(0)),
		endorsementIndex: endorsementindex.New(),
	}
	calculator, err := popscorecalculator.New(5, testScoringWindow, 8, 1000, 2, 16,
		tc.blockIndex, tc.endorsementIndex, chaintraversal.New(), nil)
	if err != nil {
		t.Fatalf("popscorecalculator.New: %+v", err)
	}
	tc.popScoreCalculator = calculator

	for _, block := range testutils.BuildBlocks(params.GenesisBlock.HeaderRef, 7, "payout") {
		node, err := tc.blockIndex.AddBlock(block, uint256.NewInt(block.Height))
		if err != nil {
			t.Fatalf("AddBlock: %+v", err)
		}
		tc.chain = append(tc.chain, node)
	}
	tc.blockIndex.SetSelectedTip(tc.chain[6])

	tc.scriptA, err = payoutscript.PayToPubKeyHash(bytes.Repeat([]byte{0xaa}, 20))
	if err != nil {
		t.Fatalf("PayToPubKeyHash: %+v", err)
	}
	tc.scriptB, err = payoutscript.PayToPubKeyHash(bytes.Repeat([]byte{0xbb}, 20))
	if err != nil {
		t.Fatalf("PayToPubKeyHash: %+v", err)
	}

	// The block at height 3 is endorsed twice by A and once by B
	headers := testutils.BuildContextHeaders(params.IntermediateBootstrap, 3, 1)
	for i, endorsement := range []struct {
		containing   *model.BlockNode
		payoutScript []byte
	}{
		{tc.chain[3], tc.scriptA},
		{tc.chain[4], tc.scriptB},
		{tc.chain[5], tc.scriptA},
	} {
		tc.addEndorsement(t, &externalapi.Endorsement{
			Kind:            externalapi.FirstOrder,
			EndorsedBlock:   tc.chain[2].Ref,
			EndorsingHeader: headers[i],
			EndorsingBlock:  pophashing.HeaderRef(headers[i]),
			ContainingBlock: endorsement.containing.Ref,
			PayoutScript:    endorsement.payoutScript,
		})
	}
	return tc
}

func (tc *payoutTestContext) addEndorsement(t *testing.T, endorsement *externalapi.Endorsement) {
	containing, _ := tc.blockIndex.Lookup(endorsement.ContainingBlock.Hash)
	err := tc.blockIndex.AddEndorsement(containing, endorsement)
	if err != nil {
		t.Fatalf("AddEndorsement: %+v", err)
	}
	tc.endorsementIndex.Insert(endorsement)
	tc.popScoreCalculator.InvalidateCache()
}

func TestPopRewards(t *testing.T) {
	tc := setupPayoutTest(t)
	scriptA, scriptB := hex.EncodeToString(tc.scriptA), hex.EncodeToString(tc.scriptB)

	tests := []struct {
		name                   string
		subsidyHalvingInterval uint64
		tip                    *model.BlockNode
		expected               externalapi.PopRewards
	}{
		{
			name:                   "before the settlement interval",
			subsidyHalvingInterval: 100,
			tip:                    tc.chain[2],
			expected:               externalapi.PopRewards{},
		},
		{
			name:                   "no endorsements",
			subsidyHalvingInterval: 100,
			tip:                    tc.chain[5],
			expected:               externalapi.PopRewards{},
		},
		{
			// Weights are 1000 and 714 for A, 833 for B
			name:                   "split by weight",
			subsidyHalvingInterval: 100,
			tip:                    tc.chain[6],
			expected:               externalapi.PopRewards{scriptA: 392 + 280, scriptB: 327},
		},
		{
			name:                   "after two halvings",
			subsidyHalvingInterval: 4,
			tip:                    tc.chain[6],
			expected:               externalapi.PopRewards{scriptA: 98 + 70, scriptB: 81},
		},
		{
			// A reward of 3 leaves only one share above zero
			name:                   "shares rounded down",
			subsidyHalvingInterval: 1,
			tip:                    tc.chain[6],
			expected:               externalapi.PopRewards{scriptA: 1},
		},
	}
	for _, test := range tests {
		calculator := New(testRewardSettlementInterval, testPopRewardPerBlock, test.subsidyHalvingInterval,
			testScoringWindow, tc.popScoreCalculator)
		rewards, err := calculator.PopRewards(test.tip)
		if err != nil {
			t.Fatalf("%s: PopRewards: %+v", test.name, err)
		}
		if len(rewards) != len(test.expected) {
			t.Fatalf("%s: expected %d payouts, got %v", test.name, len(test.expected), rewards)
		}
		for payoutScript, amount := range test.expected {
			if rewards[payoutScript] != amount {
				t.Fatalf("%s: expected %d to %s, got %d", test.name, amount, payoutScript, rewards[payoutScript])
			}
		}
	}
}

func TestCheckPopPayouts(t *testing.T) {
	tc := setupPayoutTest(t)
	scriptA, scriptB := hex.EncodeToString(tc.scriptA), hex.EncodeToString(tc.scriptB)
	calculator := New(testRewardSettlementInterval, testPopRewardPerBlock, 100, testScoringWindow, tc.popScoreCalculator)
	tip := tc.chain[6]

	err := calculator.CheckPopPayouts(tip, externalapi.PopRewards{scriptA: 672, scriptB: 327})
	if err != nil {
		t.Fatalf("CheckPopPayouts: %+v", err)
	}

	err = calculator.CheckPopPayouts(tip, externalapi.PopRewards{scriptA: 672})
	var missingPayoutError ruleerrors.MissingPayoutError
	if !errors.As(err, &missingPayoutError) {
		t.Fatalf("expected a MissingPayoutError, got: %+v", err)
	}
	if len(missingPayoutError.MissingPayoutScripts) != 1 || missingPayoutError.MissingPayoutScripts[0] != scriptB {
		t.Fatalf("unexpected missing payouts %v", missingPayoutError.MissingPayoutScripts)
	}

	tests := []struct {
		name    string
		payouts externalapi.PopRewards
	}{
		{"wrong amount", externalapi.PopRewards{scriptA: 671, scriptB: 327}},
		{"unexpected payout", externalapi.PopRewards{scriptA: 672, scriptB: 327, "00": 1}},
	}
	for _, test := range tests {
		err := calculator.CheckPopPayouts(tip, test.payouts)
		if !errors.Is(err, ruleerrors.ErrWrongPopPayoutAmount) {
			t.Fatalf("%s: expected ErrWrongPopPayoutAmount, got: %+v", test.name, err)
		}
	}

	// A block with no PoP payout due must pay nothing
	err = calculator.CheckPopPayouts(tc.chain[2], externalapi.PopRewards{})
	if err != nil {
		t.Fatalf("CheckPopPayouts: %+v", err)
	}
}
