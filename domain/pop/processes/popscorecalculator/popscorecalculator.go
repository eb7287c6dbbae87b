package popscorecalculator

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/processes/chaintraversal"
	"github.com/pkg/errors"
)

// popScoreCalculator computes the PopScore of candidate tips from the
// endorsement index
type popScoreCalculator struct {
	keystoneInterval              uint64
	scoringWindow                 uint64
	endorsementSettlementInterval uint64
	baseEndorsementWeight         uint64
	secondOrderMultiplier         uint64

	blockIndex       model.BlockIndex
	endorsementIndex model.EndorsementIndex
	chainTraversal   model.ChainTraversal

	cache         *lru.Cache
	stateVersion  uint64
	onCacheLookup func(hit bool)
}

type cacheKey struct {
	tipHash      externalapi.DomainHash
	stateVersion uint64
}

// New instantiates a new PopScoreCalculator. onCacheLookup, if not nil, is
// called on every score cache lookup.
func New(
	keystoneInterval uint64,
	scoringWindow uint64,
	endorsementSettlementInterval uint64,
	baseEndorsementWeight uint64,
	secondOrderMultiplier uint64,
	cacheSize int,
	blockIndex model.BlockIndex,
	endorsementIndex model.EndorsementIndex,
	chainTraversal model.ChainTraversal,
	onCacheLookup func(hit bool)) (model.PopScoreCalculator, error) {

	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed creating a score cache of size %d", cacheSize)
	}
	return &popScoreCalculator{
		keystoneInterval:              keystoneInterval,
		scoringWindow:                 scoringWindow,
		endorsementSettlementInterval: endorsementSettlementInterval,
		baseEndorsementWeight:         baseEndorsementWeight,
		secondOrderMultiplier:         secondOrderMultiplier,

		blockIndex:       blockIndex,
		endorsementIndex: endorsementIndex,
		chainTraversal:   chainTraversal,

		cache:         cache,
		onCacheLookup: onCacheLookup,
	}, nil
}

// InvalidateCache makes every previously computed score stale. It must be
// called whenever the block index or the endorsement index change.
func (c *popScoreCalculator) InvalidateCache() {
	c.stateVersion++
}

// PopScore returns the sum of the weights of the first-order endorsements
// in the scoring window of tip's chain
func (c *popScoreCalculator) PopScore(tip *model.BlockNode) (uint64, error) {
	key := cacheKey{tipHash: *tip.Hash(), stateVersion: c.stateVersion}
	if cached, ok := c.cache.Get(key); ok {
		c.reportCacheLookup(true)
		return cached.(uint64), nil
	}
	c.reportCacheLookup(false)

	view := c.ViewFor(tip)
	windowStart := chaintraversal.WindowStart(tip.Height(), c.scoringWindow)
	windowEnd := tip.Height()

	score := uint64(0)
	for _, block := range c.chainTraversal.Window(tip, c.scoringWindow) {
		for _, endorsement := range view.Query(block.Hash(), windowStart, windowEnd) {
			if endorsement.Kind != externalapi.FirstOrder {
				continue
			}
			score += c.EndorsementWeight(endorsement, view, windowStart, windowEnd)
		}
	}

	c.cache.Add(key, score)
	return score, nil
}

// EndorsementWeight returns the weight of a first-order endorsement. The
// weight decreases with the distance between the endorsed and containing
// blocks, and is multiplied when the endorsing intermediate block is itself
// endorsed within the window.
func (c *popScoreCalculator) EndorsementWeight(endorsement *externalapi.Endorsement,
	view model.EndorsementIndexReader, windowStart, windowEnd uint64) uint64 {

	if endorsement.ContainingBlock.Height <= endorsement.EndorsedBlock.Height {
		return 0
	}
	distance := endorsement.ContainingBlock.Height - endorsement.EndorsedBlock.Height
	if distance > c.endorsementSettlementInterval {
		return 0
	}

	weight := c.baseEndorsementWeight * c.keystoneInterval / (c.keystoneInterval + distance - 1)
	for _, secondOrder := range view.Query(endorsement.EndorsingBlock.Hash, windowStart, windowEnd) {
		if secondOrder.Kind == externalapi.SecondOrder {
			weight *= c.secondOrderMultiplier
			break
		}
	}
	return weight
}

// ViewFor returns the endorsement index as it would be if tip were the
// selected tip. Endorsements contained above tip's height may remain in the
// view, so callers must bound their queries by tip's height.
func (c *popScoreCalculator) ViewFor(tip *model.BlockNode) model.EndorsementIndexReader {
	changes := c.chainTraversal.ChainChanges(c.blockIndex.SelectedTip(), tip)
	if len(changes.Removed) == 0 && len(changes.Added) == 0 {
		return c.endorsementIndex
	}

	var removed, added []*externalapi.Endorsement
	for _, block := range changes.Removed {
		removed = append(removed, block.Endorsements...)
	}
	for _, block := range changes.Added {
		added = append(added, block.Endorsements...)
	}
	return c.endorsementIndex.View(removed, added)
}

func (c *popScoreCalculator) reportCacheLookup(hit bool) {
	if c.onCacheLookup != nil {
		c.onCacheLookup(hit)
	}
}
