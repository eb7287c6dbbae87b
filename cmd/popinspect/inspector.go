package main

import (
	"os"

	"github.com/kaspanet/popd/domain/pop"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/popconfig"
	"github.com/kaspanet/popd/infrastructure/config"
	"github.com/kaspanet/popd/infrastructure/db/popstore"
	"github.com/pkg/errors"
)

// inspector is an engine restored from the snapshot store of a node
type inspector struct {
	params   *popconfig.Params
	store    model.SnapshotStore
	snapshot *model.Snapshot
	engine   pop.Engine
}

func openInspector(cfg *config.Config) (*inspector, error) {
	storeDir := cfg.PopStoreDir()
	if _, err := os.Stat(storeDir); err != nil {
		return nil, errors.Wrapf(err, "no snapshot store at %s", storeDir)
	}
	store, err := popstore.New(storeDir)
	if err != nil {
		return nil, err
	}

	snapshot, found, err := store.Load()
	if err != nil {
		store.Close()
		return nil, err
	}
	if !found {
		store.Close()
		return nil, errors.Errorf("the snapshot store at %s is empty", storeDir)
	}
	log.Debugf("Loaded a snapshot of %d blocks from %s", len(snapshot.Blocks), storeDir)

	engine, err := pop.NewFactory().NewEngine(&pop.Config{
		Params:         cfg.NetParams(),
		BaseChain:      newRecordedBaseChain(snapshot),
		BanThreshold:   cfg.BanThreshold,
		DisableBanning: cfg.DisableBanning,
		SubmitWorkers:  cfg.SubmitWorkers,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	err = engine.RestoreSnapshot(snapshot)
	if err != nil {
		store.Close()
		return nil, errors.Wrapf(err, "the snapshot at %s is inconsistent", storeDir)
	}

	return &inspector{
		params:   cfg.NetParams(),
		store:    store,
		snapshot: snapshot,
		engine:   engine,
	}, nil
}

func (i *inspector) close() {
	err := i.store.Close()
	if err != nil {
		log.Warnf("Failed closing the snapshot store: %s", err)
	}
}
