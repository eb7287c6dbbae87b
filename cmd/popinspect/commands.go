package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/payoutscript"
	"github.com/pkg/errors"
)

const defaultContextCount = 10

type commandHandler func(i *inspector, args []string, out io.Writer) error

var commands = map[string]commandHandler{
	"summary": summary,
	"context": contextHeaders,
	"forks":   forks,
	"compare": compare,
	"rewards": rewards,
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func summary(i *inspector, _ []string, out io.Writer) error {
	tip := i.engine.CurrentBestTip()
	score, err := i.engine.PopScore(tip.Hash)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Network:            %s\n", i.params.Name)
	fmt.Fprintf(out, "Selected tip:       %s\n", tip)
	fmt.Fprintf(out, "PopScore:           %d\n", score)
	fmt.Fprintf(out, "Index commitment:   %s\n", i.engine.IndexCommitment())
	fmt.Fprintf(out, "Blocks:             %d\n", len(i.snapshot.Blocks))
	fmt.Fprintf(out, "Endorsements:       %d\n", len(i.snapshot.Endorsements))
	for _, chainID := range []externalapi.ContextChainID{externalapi.IntermediateChain, externalapi.SecurityChain} {
		fmt.Fprintf(out, "%-19s %s\n", chainID.String()+" tip:", i.engine.LastKnownContextHeaders(chainID, 1)[0])
	}
	return nil
}

// contextHeaders [count] prints the last known headers of both context chains
func contextHeaders(i *inspector, args []string, out io.Writer) error {
	count := defaultContextCount
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return errors.Errorf("count must be a positive number, got %s", args[0])
		}
		count = parsed
	}

	for _, chainID := range []externalapi.ContextChainID{externalapi.IntermediateChain, externalapi.SecurityChain} {
		fmt.Fprintf(out, "%s:\n", chainID)
		for _, ref := range i.engine.LastKnownContextHeaders(chainID, count) {
			fmt.Fprintf(out, "  %s\n", ref)
		}
	}
	return nil
}

// forks prints every leaf of the block tree, most preferred first
func forks(i *inspector, _ []string, out io.Writer) error {
	isParent := make(map[externalapi.DomainHash]struct{}, len(i.snapshot.Blocks))
	for _, block := range i.snapshot.Blocks {
		if block.Block.ParentHash != nil {
			isParent[*block.Block.ParentHash] = struct{}{}
		}
	}
	var leaves []*externalapi.HeaderRef
	for _, block := range i.snapshot.Blocks {
		if _, ok := isParent[*block.Block.Hash]; !ok {
			leaves = append(leaves, block.Block.HeaderRef)
		}
	}

	var compareErr error
	sort.SliceStable(leaves, func(a, b int) bool {
		comparison, err := i.engine.CompareForks(leaves[a].Hash, leaves[b].Hash)
		if err != nil && compareErr == nil {
			compareErr = err
		}
		return comparison > 0
	})
	if compareErr != nil {
		return compareErr
	}

	for _, leaf := range leaves {
		score, err := i.engine.PopScore(leaf.Hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  score %d\n", leaf, score)
	}
	return nil
}

// compare <hash> <hash> prints which of two chains is preferred
func compare(i *inspector, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("compare takes exactly two block hashes")
	}
	a, err := externalapi.NewDomainHashFromString(args[0])
	if err != nil {
		return errors.Wrapf(err, "could not parse %s", args[0])
	}
	b, err := externalapi.NewDomainHashFromString(args[1])
	if err != nil {
		return errors.Wrapf(err, "could not parse %s", args[1])
	}

	comparison, err := i.engine.CompareForks(a, b)
	if err != nil {
		return err
	}
	switch {
	case comparison > 0:
		fmt.Fprintf(out, "%s is preferred over %s\n", a, b)
	case comparison < 0:
		fmt.Fprintf(out, "%s is preferred over %s\n", b, a)
	default:
		fmt.Fprintf(out, "%s and %s are the same block\n", a, b)
	}
	return nil
}

// rewards [hash] prints the PoP payouts owed by the block following the
// given block, or the selected tip
func rewards(i *inspector, args []string, out io.Writer) error {
	tipHash := i.engine.CurrentBestTip().Hash
	if len(args) > 0 {
		var err error
		tipHash, err = externalapi.NewDomainHashFromString(args[0])
		if err != nil {
			return errors.Wrapf(err, "could not parse %s", args[0])
		}
	}

	popRewards, err := i.engine.PopRewards(tipHash)
	if err != nil {
		return err
	}
	if len(popRewards) == 0 {
		fmt.Fprintf(out, "No PoP payouts are due after %s\n", tipHash)
		return nil
	}

	scripts := make([]string, 0, len(popRewards))
	for script := range popRewards {
		scripts = append(scripts, script)
	}
	sort.Strings(scripts)
	for _, script := range scripts {
		fmt.Fprintf(out, "%s  %d\n", payoutDestination(script, i.params.AddressVersion), popRewards[script])
	}
	return nil
}

// payoutDestination returns the address of a hex encoded payout script,
// falling back to the script itself
func payoutDestination(scriptHex string, addressVersion byte) string {
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return scriptHex
	}
	address, err := payoutscript.Address(script, addressVersion)
	if err != nil {
		return scriptHex
	}
	return address
}

func unknownCommandError(command string) error {
	return errors.Errorf("unknown command %s, available commands are: %s",
		command, strings.Join(commandNames(), ", "))
}
