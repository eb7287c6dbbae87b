package ldb

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/kaspanet/popd/infrastructure/db/database"
)

func prepareDatabaseForTest(t *testing.T, testName string) (ldb *LevelDB, teardownFunc func()) {
	// Create a temp db to run tests against
	path, err := ioutil.TempDir("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir unexpectedly "+
			"failed: %s", testName, err)
	}
	ldb, err = NewLevelDB(path)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly "+
			"failed: %s", testName, err)
	}
	teardownFunc = func() {
		err = ldb.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly "+
				"failed: %s", testName, err)
		}
		os.RemoveAll(path)
	}
	return ldb, teardownFunc
}

func TestLevelDBSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBSanity")
	defer teardownFunc()

	// Put something into the db
	key := database.MakeBucket([]byte("bucket")).Key([]byte("key"))
	putData := []byte("Hello world!")
	err := ldb.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned "+
			"unexpected error: %s", err)
	}

	// Get from the key previously put to
	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned "+
			"unexpected error: %s", err)
	}

	// Make sure that the put data and the get data are equal
	if !bytes.Equal(getData, putData) {
		t.Fatalf("TestLevelDBSanity: get data and "+
			"put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}

	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Delete returned "+
			"unexpected error: %s", err)
	}
	_, err = ldb.Get(key)
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestLevelDBSanity: Get after Delete "+
			"expected ErrNotFound, got: %v", err)
	}
}

func TestLevelDBTransactionSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBTransactionSanity")
	defer teardownFunc()

	// Case 1. Write in tx and then read directly from the DB
	// Begin a new transaction
	tx, err := ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Begin "+
			"unexpectedly failed: %s", err)
	}

	// Put something into the transaction
	key := database.MakeBucket([]byte("bucket")).Key([]byte("key"))
	putData := []byte("Hello world!")
	err = tx.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put "+
			"returned unexpected error: %s", err)
	}

	// Make sure the data is not visible before commit
	exists, err := ldb.Has(key)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Has "+
			"returned unexpected error: %s", err)
	}
	if exists {
		t.Fatalf("TestLevelDBTransactionSanity: Has " +
			"unexpectedly returned that the value exists")
	}

	// Commit the transaction
	err = tx.Commit()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Commit "+
			"returned unexpected error: %s", err)
	}

	// Get from the key previously put to. Since the tx got
	// committed, the value should now exist
	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Get "+
			"returned unexpected error: %s", err)
	}
	if !bytes.Equal(getData, putData) {
		t.Fatalf("TestLevelDBTransactionSanity: get "+
			"data and put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}

	// Case 2. Rolled back writes are discarded
	tx, err = ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Begin "+
			"unexpectedly failed: %s", err)
	}
	err = tx.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Delete "+
			"returned unexpected error: %s", err)
	}
	err = tx.Rollback()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Rollback "+
			"returned unexpected error: %s", err)
	}
	exists, err = ldb.Has(key)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Has "+
			"returned unexpected error: %s", err)
	}
	if !exists {
		t.Fatalf("TestLevelDBTransactionSanity: rolled back " +
			"delete unexpectedly removed the value")
	}

	// Using a closed transaction fails
	err = tx.Put(key, putData)
	if err == nil || !strings.Contains(err.Error(), "closed transaction") {
		t.Fatalf("TestLevelDBTransactionSanity: Put on a closed "+
			"transaction returned unexpected error: %v", err)
	}
	err = tx.RollbackUnlessClosed()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: RollbackUnlessClosed "+
			"returned unexpected error: %s", err)
	}
}

func TestCursorSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorSanity")
	defer teardownFunc()

	// Write some data to the database, plus one key outside the bucket
	bucket := database.MakeBucket([]byte("bucket"))
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key%d", i)
		value := fmt.Sprintf("value%d", i)
		err := ldb.Put(bucket.Key([]byte(key)), []byte(value))
		if err != nil {
			t.Fatalf("TestCursorSanity: Put "+
				"unexpectedly failed: %s", err)
		}
	}
	err := ldb.Put(database.MakeBucket([]byte("other")).Key([]byte("key0")), []byte("x"))
	if err != nil {
		t.Fatalf("TestCursorSanity: Put "+
			"unexpectedly failed: %s", err)
	}

	cursor, err := ldb.Cursor(bucket)
	if err != nil {
		t.Fatalf("TestCursorSanity: Cursor "+
			"unexpectedly failed: %s", err)
	}

	i := 0
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			t.Fatalf("TestCursorSanity: Key "+
				"unexpectedly failed: %s", err)
		}
		expectedKey := fmt.Sprintf("key%d", i)
		if string(key.Suffix()) != expectedKey {
			t.Fatalf("TestCursorSanity: Key "+
				"returned wrong suffix. Want: %s, got: %s",
				expectedKey, string(key.Suffix()))
		}
		value, err := cursor.Value()
		if err != nil {
			t.Fatalf("TestCursorSanity: Value "+
				"unexpectedly failed: %s", err)
		}
		expectedValue := fmt.Sprintf("value%d", i)
		if string(value) != expectedValue {
			t.Fatalf("TestCursorSanity: Value "+
				"returned wrong value. Want: %s, got: %s",
				expectedValue, string(value))
		}
		i++
	}
	if i != 10 {
		t.Fatalf("TestCursorSanity: cursor visited %d "+
			"entries, want 10", i)
	}

	err = cursor.Close()
	if err != nil {
		t.Fatalf("TestCursorSanity: Close "+
			"unexpectedly failed: %s", err)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("TestCursorSanity: Next on a closed " +
					"cursor unexpectedly didn't panic")
			}
		}()
		cursor.Next()
	}()
}
