package serialization

import (
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// HeaderRefToDbHeaderRef converts a HeaderRef to a DbHeaderRef
func HeaderRefToDbHeaderRef(ref *externalapi.HeaderRef) *DbHeaderRef {
	return &DbHeaderRef{
		Hash:   DomainHashToDbHash(ref.Hash),
		Height: ref.Height,
	}
}

// DbHeaderRefToHeaderRef converts a DbHeaderRef to a HeaderRef
func DbHeaderRefToHeaderRef(dbHeaderRef *DbHeaderRef) (*externalapi.HeaderRef, error) {
	if dbHeaderRef == nil {
		return nil, errors.New("missing header reference")
	}
	hash, err := DbHashToDomainHash(dbHeaderRef.Hash)
	if err != nil {
		return nil, err
	}
	return externalapi.NewHeaderRef(hash, dbHeaderRef.Height), nil
}
