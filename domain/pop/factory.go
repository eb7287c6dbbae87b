package pop

import (
	"github.com/kaspanet/popd/domain/pop/datastructures/contextstore"
	"github.com/kaspanet/popd/domain/pop/datastructures/endorsementindex"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/processes/chaintraversal"
	"github.com/kaspanet/popd/domain/pop/processes/endorsementvalidator"
	"github.com/kaspanet/popd/domain/pop/processes/forkselector"
	"github.com/kaspanet/popd/domain/pop/processes/misbehaviortracker"
	"github.com/kaspanet/popd/domain/pop/processes/payoutcalculator"
	"github.com/kaspanet/popd/domain/pop/processes/popscorecalculator"
	"github.com/kaspanet/popd/domain/pop/processes/reorgexecutor"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/kaspanet/popd/domain/popconfig"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultSubmitWorkers = 8

// Config holds the collaborators and settings of an Engine. Params and
// BaseChain are required, everything else is optional.
type Config struct {
	Params    *popconfig.Params
	BaseChain model.BaseChainValidator

	// SnapshotStore, if set, is loaded on creation and written by Flush
	SnapshotStore model.SnapshotStore

	// Registerer, if set, receives the engine's metrics
	Registerer prometheus.Registerer

	// BanThreshold is the ban score at which a peer is banned. Zero means
	// the default of a single malformed endorsement.
	BanThreshold   uint32
	DisableBanning bool

	// SubmitWorkers bounds the number of payloads SubmitEndorsements
	// validates concurrently
	SubmitWorkers int
}

// Factory instantiates new Engines
type Factory interface {
	NewEngine(config *Config) (Engine, error)
}

type factory struct{}

// NewEngine instantiates a new Engine
func (f *factory) NewEngine(config *Config) (Engine, error) {
	if config.Params == nil || config.BaseChain == nil {
		return nil, errors.New("an engine requires both params and a base chain")
	}
	params := *config.Params
	err := params.Validate()
	if err != nil {
		return nil, err
	}

	genesisWork, err := config.BaseChain.CumulativeWork(params.GenesisBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "failed getting the work of genesis %s", params.GenesisBlock.HeaderRef)
	}

	engineMetrics, err := newMetrics(config.Registerer)
	if err != nil {
		return nil, err
	}

	// Data Structures
	contextStore := contextstore.New(params.IntermediateBootstrap, params.SecurityBootstrap)
	blockIndex := contextstore.NewBlockIndex(params.GenesisBlock, genesisWork)
	endorsementIndex := endorsementindex.New()

	// Processes
	chainTraversal := chaintraversal.New()
	endorsementValidator := endorsementvalidator.New(
		params.MaxPayloadSize,
		params.MaxEndorsementsPerBlock,
		contextStore,
		blockIndex)
	popScoreCalculator, err := popscorecalculator.New(
		params.KeystoneInterval,
		params.ScoringWindow,
		params.EndorsementSettlementInterval,
		params.BaseEndorsementWeight,
		params.SecondOrderMultiplier,
		params.ScoreCacheSize,
		blockIndex,
		endorsementIndex,
		chainTraversal,
		engineMetrics.markScoreCacheLookup)
	if err != nil {
		return nil, err
	}
	forkSelector := forkselector.New(popScoreCalculator)
	reorgExecutor := reorgexecutor.New(
		blockIndex,
		endorsementIndex,
		chainTraversal,
		forkSelector,
		popScoreCalculator)
	payoutCalculator := payoutcalculator.New(
		params.RewardSettlementInterval,
		params.PopRewardPerBlock,
		params.SubsidyHalvingInterval,
		params.ScoringWindow,
		popScoreCalculator)

	banThreshold := config.BanThreshold
	if banThreshold == 0 {
		banThreshold = ruleerrors.BanScoreMalformedEndorsement
	}
	misbehaviorTracker := misbehaviortracker.New(banThreshold, config.DisableBanning)

	submitWorkers := config.SubmitWorkers
	if submitWorkers <= 0 {
		submitWorkers = defaultSubmitWorkers
	}

	e := &engine{
		params:        &params,
		submitWorkers: submitWorkers,

		baseChain:     config.BaseChain,
		snapshotStore: config.SnapshotStore,
		metrics:       engineMetrics,

		contextStore:     contextStore,
		blockIndex:       blockIndex,
		endorsementIndex: endorsementIndex,

		chainTraversal:       chainTraversal,
		endorsementValidator: endorsementValidator,
		popScoreCalculator:   popScoreCalculator,
		forkSelector:         forkSelector,
		reorgExecutor:        reorgExecutor,
		payoutCalculator:     payoutCalculator,
		misbehaviorTracker:   misbehaviorTracker,
	}

	if config.SnapshotStore != nil {
		snapshot, found, err := config.SnapshotStore.Load()
		if err != nil {
			return nil, err
		}
		if found {
			err = e.RestoreSnapshot(snapshot)
			if err != nil {
				return nil, err
			}
		}
	}

	log.Infof("PoP engine started on %s with selected tip %s", params.Name, e.CurrentBestTip())
	return e, nil
}

// NewFactory creates a new Engine factory
func NewFactory() Factory {
	return &factory{}
}
