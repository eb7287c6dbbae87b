package serialization

import (
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// DomainHashToDbHash converts a DomainHash to a DbHash
func DomainHashToDbHash(domainHash *externalapi.DomainHash) *DbHash {
	return &DbHash{Hash: domainHash.ByteSlice()}
}

// DbHashToDomainHash converts a DbHash to a DomainHash. A missing hash is
// an error.
func DbHashToDomainHash(dbHash *DbHash) (*externalapi.DomainHash, error) {
	if dbHash == nil {
		return nil, errors.New("missing hash")
	}
	return externalapi.NewDomainHashFromByteSlice(dbHash.Hash)
}
