package popconfig

import (
	"testing"

	"github.com/pkg/errors"
)

// TestMustRegisterPanic ensures the mustRegister function panics when used to
// register an invalid network.
func TestMustRegisterPanic(t *testing.T) {
	defer func() {
		if err := recover(); err == nil {
			t.Error("mustRegister did not panic as expected")
		}
	}()

	// Intentionally try to register duplicate params to force a panic.
	mustRegister(&MainnetParams)
}

func TestParamsByName(t *testing.T) {
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &RegtestParams, &SimnetParams} {
		found, err := ParamsByName(params.Name)
		if err != nil {
			t.Fatalf("ParamsByName(%s): %+v", params.Name, err)
		}
		if found != params {
			t.Fatalf("ParamsByName(%s) returned the wrong params", params.Name)
		}
	}

	_, err := ParamsByName("banana")
	if !errors.Is(err, ErrUnknownNet) {
		t.Fatalf("expected ErrUnknownNet, got %v", err)
	}
}

func TestGenesisBlocksDiffer(t *testing.T) {
	if MainnetParams.GenesisBlock.Hash.Equal(RegtestParams.GenesisBlock.Hash) {
		t.Fatalf("mainnet and regtest share a genesis hash")
	}
	if RegtestParams.GenesisBlock.Height != 0 || RegtestParams.GenesisBlock.ParentHash != nil {
		t.Fatalf("unexpected regtest genesis %+v", RegtestParams.GenesisBlock)
	}
}

func TestValidate(t *testing.T) {
	params := RegtestParams
	params.ScoringWindow = 0
	if err := params.Validate(); err == nil {
		t.Fatalf("expected a zero scoring window to be rejected")
	}
}
