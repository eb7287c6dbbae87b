package popconfig

import (
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

const (
	defaultMaxPayloadSize          = 1000000
	defaultMaxEndorsementsPerBlock = 50
	defaultBaseEndorsementWeight   = 1000
	defaultSecondOrderMultiplier   = 2
	defaultScoreCacheSize          = 1024
)

// Params defines a PoP-enabled network by its parameters. Every node of a
// network must use identical values, since they feed the scoring function
// that fork choice depends on.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// AddressVersion is the base58check version byte of payout addresses.
	AddressVersion byte

	// GenesisBlock is the first block of the local chain.
	GenesisBlock *externalapi.LocalBlock

	// IntermediateBootstrap and SecurityBootstrap are the trusted roots of
	// the two context chains. Every context path must eventually connect to them.
	IntermediateBootstrap *externalapi.ContextHeader
	SecurityBootstrap     *externalapi.ContextHeader

	// KeystoneInterval is the scale of the endorsement weight curve.
	KeystoneInterval uint64

	// ScoringWindow is the number of most recent blocks of a candidate chain
	// whose endorsements count towards its PopScore.
	ScoringWindow uint64

	// EndorsementSettlementInterval is the maximum distance between an
	// endorsed block and its containing block for the endorsement to carry weight.
	EndorsementSettlementInterval uint64

	// BaseEndorsementWeight is the weight of a first-order endorsement
	// contained right after the block it endorses.
	BaseEndorsementWeight uint64

	// SecondOrderMultiplier scales first-order endorsements whose endorsing
	// block is itself endorsed by the security chain.
	SecondOrderMultiplier uint64

	// MaxPayloadSize is the maximum size in bytes of a single endorsement payload.
	MaxPayloadSize int

	// MaxEndorsementsPerBlock is the maximum number of endorsements a
	// single local block may contain.
	MaxEndorsementsPerBlock int

	// ReorgSafetyDepth is the depth below the selected tip after which
	// competing candidate tips are discarded.
	ReorgSafetyDepth uint64

	// RewardSettlementInterval is the delay, in blocks, after which
	// endorsers of a block are paid.
	RewardSettlementInterval uint64

	// PopRewardPerBlock is the PoP payout budget of a single block before halvings.
	PopRewardPerBlock uint64

	// SubsidyHalvingInterval is the number of blocks between halvings of
	// PopRewardPerBlock.
	SubsidyHalvingInterval uint64

	// ScoreCacheSize is the number of PopScores kept in memory.
	ScoreCacheSize int
}

// Validate checks that the parameters describe a usable network
func (p *Params) Validate() error {
	if p.GenesisBlock == nil || p.IntermediateBootstrap == nil || p.SecurityBootstrap == nil {
		return errors.Errorf("%s: genesis block and bootstrap headers are required", p.Name)
	}
	if p.KeystoneInterval == 0 {
		return errors.Errorf("%s: KeystoneInterval must be positive", p.Name)
	}
	if p.ScoringWindow == 0 {
		return errors.Errorf("%s: ScoringWindow must be positive", p.Name)
	}
	if p.SecondOrderMultiplier == 0 {
		return errors.Errorf("%s: SecondOrderMultiplier must be positive", p.Name)
	}
	if p.RewardSettlementInterval == 0 || p.SubsidyHalvingInterval == 0 {
		return errors.Errorf("%s: reward intervals must be positive", p.Name)
	}
	return nil
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:                          "mainnet",
	AddressVersion:                0x00,
	GenesisBlock:                  mainnetGenesisBlock,
	IntermediateBootstrap:         mainnetIntermediateBootstrap,
	SecurityBootstrap:             mainnetSecurityBootstrap,
	KeystoneInterval:              20,
	ScoringWindow:                 400,
	EndorsementSettlementInterval: 400,
	BaseEndorsementWeight:         defaultBaseEndorsementWeight,
	SecondOrderMultiplier:         defaultSecondOrderMultiplier,
	MaxPayloadSize:                defaultMaxPayloadSize,
	MaxEndorsementsPerBlock:       defaultMaxEndorsementsPerBlock,
	ReorgSafetyDepth:              2000,
	RewardSettlementInterval:      400,
	PopRewardPerBlock:             5000000000,
	SubsidyHalvingInterval:        210000,
	ScoreCacheSize:                defaultScoreCacheSize,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:                          "testnet",
	AddressVersion:                0x6f,
	GenesisBlock:                  testnetGenesisBlock,
	IntermediateBootstrap:         testnetIntermediateBootstrap,
	SecurityBootstrap:             testnetSecurityBootstrap,
	KeystoneInterval:              10,
	ScoringWindow:                 200,
	EndorsementSettlementInterval: 200,
	BaseEndorsementWeight:         defaultBaseEndorsementWeight,
	SecondOrderMultiplier:         defaultSecondOrderMultiplier,
	MaxPayloadSize:                defaultMaxPayloadSize,
	MaxEndorsementsPerBlock:       defaultMaxEndorsementsPerBlock,
	ReorgSafetyDepth:              1000,
	RewardSettlementInterval:      200,
	PopRewardPerBlock:             5000000000,
	SubsidyHalvingInterval:        210000,
	ScoreCacheSize:                defaultScoreCacheSize,
}

// RegtestParams defines the network parameters for the regression test
// network. Its windows are short so that tests can cross them cheaply.
var RegtestParams = Params{
	Name:                          "regtest",
	AddressVersion:                0x6f,
	GenesisBlock:                  regtestGenesisBlock,
	IntermediateBootstrap:         regtestIntermediateBootstrap,
	SecurityBootstrap:             regtestSecurityBootstrap,
	KeystoneInterval:              5,
	ScoringWindow:                 100,
	EndorsementSettlementInterval: 50,
	BaseEndorsementWeight:         defaultBaseEndorsementWeight,
	SecondOrderMultiplier:         defaultSecondOrderMultiplier,
	MaxPayloadSize:                defaultMaxPayloadSize,
	MaxEndorsementsPerBlock:       defaultMaxEndorsementsPerBlock,
	ReorgSafetyDepth:              500,
	RewardSettlementInterval:      20,
	PopRewardPerBlock:             5000000000,
	SubsidyHalvingInterval:        150,
	ScoreCacheSize:                defaultScoreCacheSize,
}

// SimnetParams defines the network parameters for the simulation test network.
var SimnetParams = Params{
	Name:                          "simnet",
	AddressVersion:                0x3f,
	GenesisBlock:                  simnetGenesisBlock,
	IntermediateBootstrap:         simnetIntermediateBootstrap,
	SecurityBootstrap:             simnetSecurityBootstrap,
	KeystoneInterval:              5,
	ScoringWindow:                 150,
	EndorsementSettlementInterval: 100,
	BaseEndorsementWeight:         defaultBaseEndorsementWeight,
	SecondOrderMultiplier:         3,
	MaxPayloadSize:                defaultMaxPayloadSize,
	MaxEndorsementsPerBlock:       defaultMaxEndorsementsPerBlock,
	ReorgSafetyDepth:              500,
	RewardSettlementInterval:      50,
	PopRewardPerBlock:             5000000000,
	SubsidyHalvingInterval:        210000,
	ScoreCacheSize:                defaultScoreCacheSize,
}
