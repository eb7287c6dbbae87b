package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/popd/domain/popconfig"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet            bool   `long:"testnet" description:"Use the test network"`
	Regtest            bool   `long:"regtest" description:"Use the regression test network"`
	Simnet             bool   `long:"simnet" description:"Use the simulation test network"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides PoP params (allowed only on regtest and simnet)"`

	ActiveNetParams *popconfig.Params
}

type overrideParamsConfig struct {
	KeystoneInterval              *uint64 `json:"keystoneInterval"`
	ScoringWindow                 *uint64 `json:"scoringWindow"`
	EndorsementSettlementInterval *uint64 `json:"endorsementSettlementInterval"`
	BaseEndorsementWeight         *uint64 `json:"baseEndorsementWeight"`
	SecondOrderMultiplier         *uint64 `json:"secondOrderMultiplier"`
	MaxPayloadSize                *int    `json:"maxPayloadSize"`
	MaxEndorsementsPerBlock       *int    `json:"maxEndorsementsPerBlock"`
	ReorgSafetyDepth              *uint64 `json:"reorgSafetyDepth"`
	RewardSettlementInterval      *uint64 `json:"rewardSettlementInterval"`
	PopRewardPerBlock             *uint64 `json:"popRewardPerBlock"`
	SubsidyHalvingInterval        *uint64 `json:"subsidyHalvingInterval"`
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// Default net is main net
	selected := popconfig.MainnetParams
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		selected = popconfig.TestnetParams
	}
	if networkFlags.Regtest {
		numNets++
		selected = popconfig.RegtestParams
	}
	if networkFlags.Simnet {
		numNets++
		selected = popconfig.SimnetParams
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, regtest, simnet) cannot be used " +
			"together. Please choose only one network"
		err := errors.New(message)
		fmt.Fprintln(os.Stderr, err)
		if parser != nil {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	// Overrides must never leak into the package-level parameter sets
	networkFlags.ActiveNetParams = &selected

	err := networkFlags.overrideParams()
	if err != nil {
		return err
	}
	return networkFlags.ActiveNetParams.Validate()
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *popconfig.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideParams() error {
	if networkFlags.OverrideParamsFile == "" {
		return nil
	}

	if !networkFlags.Regtest && !networkFlags.Simnet {
		return errors.Errorf("override-params-file is allowed only when using regtest or simnet")
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideParamsFile.Close()

	decoder := json.NewDecoder(overrideParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "failed decoding %s", networkFlags.OverrideParamsFile)
	}

	params := networkFlags.ActiveNetParams
	if config.KeystoneInterval != nil {
		params.KeystoneInterval = *config.KeystoneInterval
	}
	if config.ScoringWindow != nil {
		params.ScoringWindow = *config.ScoringWindow
	}
	if config.EndorsementSettlementInterval != nil {
		params.EndorsementSettlementInterval = *config.EndorsementSettlementInterval
	}
	if config.BaseEndorsementWeight != nil {
		params.BaseEndorsementWeight = *config.BaseEndorsementWeight
	}
	if config.SecondOrderMultiplier != nil {
		params.SecondOrderMultiplier = *config.SecondOrderMultiplier
	}
	if config.MaxPayloadSize != nil {
		params.MaxPayloadSize = *config.MaxPayloadSize
	}
	if config.MaxEndorsementsPerBlock != nil {
		params.MaxEndorsementsPerBlock = *config.MaxEndorsementsPerBlock
	}
	if config.ReorgSafetyDepth != nil {
		params.ReorgSafetyDepth = *config.ReorgSafetyDepth
	}
	if config.RewardSettlementInterval != nil {
		params.RewardSettlementInterval = *config.RewardSettlementInterval
	}
	if config.PopRewardPerBlock != nil {
		params.PopRewardPerBlock = *config.PopRewardPerBlock
	}
	if config.SubsidyHalvingInterval != nil {
		params.SubsidyHalvingInterval = *config.SubsidyHalvingInterval
	}
	return nil
}
