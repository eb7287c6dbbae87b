package forkselector

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/pkg/errors"
)

type forkSelector struct {
	popScoreCalculator model.PopScoreCalculator
}

// New instantiates a new ForkSelector
func New(popScoreCalculator model.PopScoreCalculator) model.ForkSelector {
	return &forkSelector{popScoreCalculator: popScoreCalculator}
}

// Compare orders a and b by PopScore, then by cumulative work, then by
// arrival, preferring the block that arrived first
func (fs *forkSelector) Compare(a, b *model.BlockNode) (int, error) {
	if a == b {
		return 0, nil
	}

	scoreA, err := fs.popScoreCalculator.PopScore(a)
	if err != nil {
		return 0, err
	}
	scoreB, err := fs.popScoreCalculator.PopScore(b)
	if err != nil {
		return 0, err
	}
	if scoreA != scoreB {
		if scoreA > scoreB {
			return 1, nil
		}
		return -1, nil
	}

	if workComparison := a.CumulativeWork.Cmp(b.CumulativeWork); workComparison != 0 {
		return workComparison, nil
	}

	if a.Arrival < b.Arrival {
		return 1, nil
	}
	return -1, nil
}

// SelectBest returns the most preferred of the given candidates
func (fs *forkSelector) SelectBest(candidates []*model.BlockNode) (*model.BlockNode, error) {
	if len(candidates) == 0 {
		return nil, errors.New("cannot select the best of no candidates")
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		comparison, err := fs.Compare(candidate, best)
		if err != nil {
			return nil, err
		}
		if comparison > 0 {
			best = candidate
		}
	}
	return best, nil
}
