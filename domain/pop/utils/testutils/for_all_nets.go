package testutils

import (
	"testing"

	"github.com/kaspanet/popd/domain/popconfig"
)

// ForAllNets runs the passed testFunc with all available networks. Every
// run gets its own copy of the network parameters.
func ForAllNets(t *testing.T, testFunc func(*testing.T, *popconfig.Params)) {
	allParams := []popconfig.Params{
		popconfig.MainnetParams,
		popconfig.TestnetParams,
		popconfig.RegtestParams,
		popconfig.SimnetParams,
	}

	for _, params := range allParams {
		params := params
		t.Run(params.Name, func(t *testing.T) {
			t.Parallel()
			t.Logf("Running test for %s", params.Name)
			testFunc(t, &params)
		})
	}
}
