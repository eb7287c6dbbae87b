package model

import "github.com/kaspanet/popd/domain/pop/model/externalapi"

// PopScoreCalculator scores candidate tips by the endorsements of their
// chains
type PopScoreCalculator interface {
	PopScore(tip *BlockNode) (uint64, error)
	EndorsementWeight(endorsement *externalapi.Endorsement, view EndorsementIndexReader,
		windowStart, windowEnd uint64) uint64
	ViewFor(tip *BlockNode) EndorsementIndexReader
	InvalidateCache()
}
