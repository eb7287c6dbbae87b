package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/kaspanet/popd/domain/pop"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/testutils"
	"github.com/kaspanet/popd/infrastructure/config"
	"github.com/kaspanet/popd/infrastructure/db/popstore"
)

func prepareNodeForTest(t *testing.T) (cfg *config.Config, trunk, fork []*externalapi.LocalBlock, teardownFunc func()) {
	dataDir, err := ioutil.TempDir("", "popinspect")
	if err != nil {
		t.Fatalf("Failed creating a temporary directory: %v", err)
	}
	teardownFunc = func() {
		os.RemoveAll(dataDir)
	}

	cfg, _, err = config.LoadConfig([]string{"--configfile=", "--regtest", "--datadir=" + dataDir, "--logdir=" + dataDir})
	if err != nil {
		teardownFunc()
		t.Fatalf("LoadConfig: %+v", err)
	}

	store, err := popstore.New(cfg.PopStoreDir())
	if err != nil {
		teardownFunc()
		t.Fatalf("popstore.New: %+v", err)
	}
	defer store.Close()

	engine, err := pop.NewFactory().NewEngine(&pop.Config{
		Params:        cfg.NetParams(),
		BaseChain:     testutils.NewFakeBaseChain(),
		SnapshotStore: store,
	})
	if err != nil {
		teardownFunc()
		t.Fatalf("NewEngine: %+v", err)
	}

	genesis := cfg.NetParams().GenesisBlock
	trunk = testutils.BuildBlocks(genesis.HeaderRef, 6, "inspect")
	fork = testutils.BuildBlocks(trunk[1].HeaderRef, 2, "inspect-fork")
	for _, block := range append(trunk, fork...) {
		err := engine.OnBlockConnected(block)
		if err != nil {
			teardownFunc()
			t.Fatalf("OnBlockConnected: %+v", err)
		}
	}
	err = engine.Flush()
	if err != nil {
		teardownFunc()
		t.Fatalf("Flush: %+v", err)
	}
	return cfg, trunk, fork, teardownFunc
}

func TestInspectCommands(t *testing.T) {
	cfg, trunk, fork, teardownFunc := prepareNodeForTest(t)
	defer teardownFunc()

	tests := []struct {
		name             string
		args             []string
		expectedContents []string
	}{
		{
			name:             "summary by default",
			args:             nil,
			expectedContents: []string{"regtest", trunk[5].HeaderRef.String(), "Blocks:             9"},
		},
		{
			name:             "forks",
			args:             []string{"forks"},
			expectedContents: []string{trunk[5].HeaderRef.String(), fork[1].HeaderRef.String()},
		},
		{
			name:             "compare",
			args:             []string{"compare", fork[1].Hash.String(), trunk[5].Hash.String()},
			expectedContents: []string{trunk[5].Hash.String() + " is preferred over " + fork[1].Hash.String()},
		},
		{
			name:             "context",
			args:             []string{"context", "3"},
			expectedContents: []string{"intermediate:", "security:"},
		},
		{
			name:             "rewards",
			args:             []string{"rewards"},
			expectedContents: []string{"No PoP payouts are due"},
		},
	}
	for _, test := range tests {
		out := &bytes.Buffer{}
		err := run(cfg, test.args, out)
		if err != nil {
			t.Fatalf("%s: run: %+v", test.name, err)
		}
		for _, expected := range test.expectedContents {
			if !strings.Contains(out.String(), expected) {
				t.Fatalf("%s: output does not contain %q:\n%s", test.name, expected, out)
			}
		}
	}

	// The preferred fork is listed first
	out := &bytes.Buffer{}
	err := run(cfg, []string{"forks"}, out)
	if err != nil {
		t.Fatalf("run: %+v", err)
	}
	if !strings.HasPrefix(out.String(), trunk[5].HeaderRef.String()) {
		t.Fatalf("expected the selected tip to be listed first:\n%s", out)
	}
}

func TestInspectErrors(t *testing.T) {
	cfg, _, _, teardownFunc := prepareNodeForTest(t)
	defer teardownFunc()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"explode"}},
		{"bad context count", []string{"context", "-1"}},
		{"compare with one hash", []string{"compare", "00"}},
		{"compare unknown blocks", []string{"compare", strings.Repeat("11", 32), strings.Repeat("22", 32)}},
	}
	for _, test := range tests {
		err := run(cfg, test.args, &bytes.Buffer{})
		if err == nil {
			t.Fatalf("%s: run unexpectedly succeeded", test.name)
		}
	}

	emptyDir, err := ioutil.TempDir("", "popinspect-empty")
	if err != nil {
		t.Fatalf("Failed creating a temporary directory: %v", err)
	}
	defer os.RemoveAll(emptyDir)
	emptyCfg, _, err := config.LoadConfig([]string{"--configfile=", "--regtest", "--datadir=" + emptyDir})
	if err != nil {
		t.Fatalf("LoadConfig: %+v", err)
	}
	err = run(emptyCfg, nil, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("inspecting a node without a snapshot store unexpectedly succeeded")
	}
}
