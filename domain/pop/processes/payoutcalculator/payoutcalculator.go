package payoutcalculator

import (
	"encoding/hex"
	"sort"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/processes/chaintraversal"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
)

// maxHalvings is the number of halvings after which no reward is left
const maxHalvings = 64

type payoutCalculator struct {
	rewardSettlementInterval uint64
	popRewardPerBlock        uint64
	subsidyHalvingInterval   uint64
	scoringWindow            uint64

	popScoreCalculator model.PopScoreCalculator
}

// New instantiates a new PayoutCalculator
func New(
	rewardSettlementInterval uint64,
	popRewardPerBlock uint64,
	subsidyHalvingInterval uint64,
	scoringWindow uint64,
	popScoreCalculator model.PopScoreCalculator) model.PayoutCalculator {

	return &payoutCalculator{
		rewardSettlementInterval: rewardSettlementInterval,
		popRewardPerBlock:        popRewardPerBlock,
		subsidyHalvingInterval:   subsidyHalvingInterval,
		scoringWindow:            scoringWindow,
		popScoreCalculator:       popScoreCalculator,
	}
}

// PopRewards returns the payouts the block following tip owes to the
// endorsers of the block RewardSettlementInterval blocks below it. The
// reward is split between the endorsers in proportion to the weight of
// their endorsements.
func (pc *payoutCalculator) PopRewards(tip *model.BlockNode) (externalapi.PopRewards, error) {
	rewards := externalapi.PopRewards{}
	nextHeight := tip.Height() + 1
	if nextHeight < pc.rewardSettlementInterval {
		return rewards, nil
	}
	halvings := nextHeight / pc.subsidyHalvingInterval
	if halvings >= maxHalvings {
		return rewards, nil
	}
	reward := pc.popRewardPerBlock >> halvings

	rewardedBlock := tip.Ancestor(nextHeight - pc.rewardSettlementInterval)
	view := pc.popScoreCalculator.ViewFor(tip)
	windowStart := chaintraversal.WindowStart(tip.Height(), pc.scoringWindow)

	type weightedPayout struct {
		payoutScript string
		weight       uint64
	}
	var payouts []weightedPayout
	totalWeight := uint64(0)
	for _, endorsement := range view.Query(rewardedBlock.Hash(), rewardedBlock.Height()+1, tip.Height()) {
		if endorsement.Kind != externalapi.FirstOrder {
			continue
		}
		weight := pc.popScoreCalculator.EndorsementWeight(endorsement, view, windowStart, tip.Height())
		if weight == 0 {
			continue
		}
		payouts = append(payouts, weightedPayout{
			payoutScript: hex.EncodeToString(endorsement.PayoutScript),
			weight:       weight,
		})
		totalWeight += weight
	}
	if totalWeight == 0 {
		return rewards, nil
	}

	total := uint256.NewInt(totalWeight)
	for _, payout := range payouts {
		share := uint256.NewInt(reward)
		share.Mul(share, uint256.NewInt(payout.weight))
		share.Div(share, total)
		if share.IsZero() {
			continue
		}
		rewards[payout.payoutScript] += share.Uint64()
	}
	return rewards, nil
}

// CheckPopPayouts verifies that payouts are exactly the PoP payouts the
// block following tip must pay
func (pc *payoutCalculator) CheckPopPayouts(tip *model.BlockNode, payouts externalapi.PopRewards) error {
	expected, err := pc.PopRewards(tip)
	if err != nil {
		return err
	}

	var missing []string
	for payoutScript, amount := range expected {
		paid, ok := payouts[payoutScript]
		if !ok {
			missing = append(missing, payoutScript)
			continue
		}
		if paid != amount {
			return ruleerrors.Errorf(ruleerrors.ErrWrongPopPayoutAmount,
				"payout to %s is %d while %d is expected", payoutScript, paid, amount)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return ruleerrors.NewErrMissingPopPayout(missing)
	}

	for payoutScript, paid := range payouts {
		if _, ok := expected[payoutScript]; !ok {
			return ruleerrors.Errorf(ruleerrors.ErrWrongPopPayoutAmount,
				"payout of %d to %s is not expected", paid, payoutScript)
		}
	}
	return nil
}
