package model

import "github.com/kaspanet/popd/domain/pop/model/externalapi"

// PayoutCalculator computes the PoP payouts the block following tip must pay
type PayoutCalculator interface {
	PopRewards(tip *BlockNode) (externalapi.PopRewards, error)
	CheckPopPayouts(tip *BlockNode, payouts externalapi.PopRewards) error
}
