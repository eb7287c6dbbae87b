package popstore

import (
	"encoding/binary"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/infrastructure/db/database"
)

var (
	rootBucket = database.MakeBucket([]byte("pop"))

	metaBucket                = rootBucket.Bucket([]byte("meta"))
	blocksBucket              = rootBucket.Bucket([]byte("blocks"))
	intermediateContextBucket = rootBucket.Bucket([]byte("ctx-i"))
	securityContextBucket     = rootBucket.Bucket([]byte("ctx-s"))
	endorsementsBucket        = rootBucket.Bucket([]byte("endorsements"))

	selectedTipKey = metaBucket.Key([]byte("tip"))
	commitmentKey  = metaBucket.Key([]byte("commitment"))

	dataBuckets = []*database.Bucket{
		blocksBucket,
		intermediateContextBucket,
		securityContextBucket,
		endorsementsBucket,
	}
)

// sequenceKey keys entries by their position so that cursors,
// which iterate in lexicographic order, return them in that order.
func sequenceKey(bucket *database.Bucket, sequence uint64) *database.Key {
	var suffix [8]byte
	binary.BigEndian.PutUint64(suffix[:], sequence)
	return bucket.Key(suffix[:])
}

func contextHeaderKey(bucket *database.Bucket, height uint64, hash *externalapi.DomainHash) *database.Key {
	suffix := make([]byte, 8+externalapi.DomainHashSize)
	binary.BigEndian.PutUint64(suffix[:8], height)
	copy(suffix[8:], hash.ByteSlice())
	return bucket.Key(suffix)
}
