package popstore

import (
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
	"github.com/kaspanet/popd/infrastructure/db/database"
	"github.com/kaspanet/popd/infrastructure/db/database/ldb"
	"github.com/kaspanet/popd/infrastructure/logger"
	"github.com/pkg/errors"
)

type popStore struct {
	db database.Database
}

// New opens (or creates) a leveldb-backed snapshot store at the given path
func New(path string) (model.SnapshotStore, error) {
	db, err := ldb.NewLevelDB(path)
	if err != nil {
		return nil, err
	}
	return &popStore{db: db}, nil
}

// Save replaces the stored snapshot with the given one atomically
func (ps *popStore) Save(snapshot *model.Snapshot) (err error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "popStore.Save")
	defer onEnd()

	tx, err := ps.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		rollbackErr := tx.RollbackUnlessClosed()
		if err == nil {
			err = rollbackErr
		}
	}()

	for _, bucket := range dataBuckets {
		err = deleteBucket(tx, bucket)
		if err != nil {
			return err
		}
	}

	tipBytes, err := serializeHash(snapshot.SelectedTip)
	if err != nil {
		return err
	}
	err = tx.Put(selectedTipKey, tipBytes)
	if err != nil {
		return err
	}
	commitmentBytes, err := serializeHash(snapshot.Commitment)
	if err != nil {
		return err
	}
	err = tx.Put(commitmentKey, commitmentBytes)
	if err != nil {
		return err
	}

	for i, block := range snapshot.Blocks {
		data, err := serializeSnapshotBlock(block)
		if err != nil {
			return err
		}
		err = tx.Put(sequenceKey(blocksBucket, uint64(i)), data)
		if err != nil {
			return err
		}
	}

	err = putContextHeaders(tx, intermediateContextBucket, snapshot.IntermediateContext)
	if err != nil {
		return err
	}
	err = putContextHeaders(tx, securityContextBucket, snapshot.SecurityContext)
	if err != nil {
		return err
	}

	for i, endorsement := range snapshot.Endorsements {
		data, err := serializeEndorsement(endorsement)
		if err != nil {
			return err
		}
		err = tx.Put(sequenceKey(endorsementsBucket, uint64(i)), data)
		if err != nil {
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		return err
	}
	log.Debugf("Saved snapshot with %d blocks, %d endorsements and selected tip %s",
		len(snapshot.Blocks), len(snapshot.Endorsements), snapshot.SelectedTip)
	return nil
}

// Load reads the stored snapshot. found is false if nothing was ever saved.
func (ps *popStore) Load() (snapshot *model.Snapshot, found bool, err error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "popStore.Load")
	defer onEnd()

	tipBytes, err := ps.db.Get(selectedTipKey)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	snapshot = &model.Snapshot{}
	snapshot.SelectedTip, err = deserializeHash(tipBytes)
	if err != nil {
		return nil, false, err
	}
	commitmentBytes, err := ps.db.Get(commitmentKey)
	if err != nil {
		return nil, false, err
	}
	snapshot.Commitment, err = deserializeHash(commitmentBytes)
	if err != nil {
		return nil, false, err
	}

	err = forEachValue(ps.db, blocksBucket, func(value []byte) error {
		block, err := deserializeSnapshotBlock(value)
		if err != nil {
			return err
		}
		snapshot.Blocks = append(snapshot.Blocks, block)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	snapshot.IntermediateContext, err = loadContextHeaders(ps.db, intermediateContextBucket)
	if err != nil {
		return nil, false, err
	}
	snapshot.SecurityContext, err = loadContextHeaders(ps.db, securityContextBucket)
	if err != nil {
		return nil, false, err
	}

	err = forEachValue(ps.db, endorsementsBucket, func(value []byte) error {
		endorsement, err := deserializeEndorsement(value)
		if err != nil {
			return err
		}
		snapshot.Endorsements = append(snapshot.Endorsements, endorsement)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	log.Debugf("Loaded snapshot with %d blocks, %d endorsements and selected tip %s",
		len(snapshot.Blocks), len(snapshot.Endorsements), snapshot.SelectedTip)
	return snapshot, true, nil
}

// Close closes the underlying database
func (ps *popStore) Close() error {
	return ps.db.Close()
}

func putContextHeaders(tx database.Transaction, bucket *database.Bucket, headers []*externalapi.ContextHeader) error {
	for _, header := range headers {
		data, err := serializeContextHeader(header)
		if err != nil {
			return err
		}
		err = tx.Put(contextHeaderKey(bucket, header.Height, pophashing.HeaderHash(header)), data)
		if err != nil {
			return err
		}
	}
	return nil
}

func loadContextHeaders(accessor database.DataAccessor, bucket *database.Bucket) ([]*externalapi.ContextHeader, error) {
	var headers []*externalapi.ContextHeader
	err := forEachValue(accessor, bucket, func(value []byte) error {
		header, err := deserializeContextHeader(value)
		if err != nil {
			return err
		}
		headers = append(headers, header)
		return nil
	})
	return headers, err
}

func deleteBucket(tx database.Transaction, bucket *database.Bucket) error {
	cursor, err := tx.Cursor(bucket)
	if err != nil {
		return err
	}
	defer cursor.Close()

	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return err
		}
		err = tx.Delete(key)
		if err != nil {
			return err
		}
	}
	return nil
}

func forEachValue(accessor database.DataAccessor, bucket *database.Bucket, f func(value []byte) error) error {
	cursor, err := accessor.Cursor(bucket)
	if err != nil {
		return err
	}
	defer cursor.Close()

	for ok := cursor.First(); ok; ok = cursor.Next() {
		value, err := cursor.Value()
		if err != nil {
			return err
		}
		err = f(value)
		if err != nil {
			return errors.Wrapf(err, "failed reading an entry of bucket %s", bucket.Path())
		}
	}
	return nil
}
