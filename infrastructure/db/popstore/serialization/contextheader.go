package serialization

import (
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// ContextHeaderToDbContextHeader converts a ContextHeader to a DbContextHeader
func ContextHeaderToDbContextHeader(header *externalapi.ContextHeader) *DbContextHeader {
	return &DbContextHeader{
		Version:    header.Version,
		Height:     header.Height,
		PrevHash:   DomainHashToDbHash(header.PrevHash),
		MerkleRoot: DomainHashToDbHash(header.MerkleRoot),
		Timestamp:  header.Timestamp,
		Nonce:      header.Nonce,
	}
}

// DbContextHeaderToContextHeader converts a DbContextHeader to a ContextHeader
func DbContextHeaderToContextHeader(dbHeader *DbContextHeader) (*externalapi.ContextHeader, error) {
	if dbHeader == nil {
		return nil, errors.New("missing context header")
	}
	prevHash, err := DbHashToDomainHash(dbHeader.PrevHash)
	if err != nil {
		return nil, err
	}
	merkleRoot, err := DbHashToDomainHash(dbHeader.MerkleRoot)
	if err != nil {
		return nil, err
	}
	return &externalapi.ContextHeader{
		Version:    dbHeader.Version,
		Height:     dbHeader.Height,
		PrevHash:   prevHash,
		MerkleRoot: merkleRoot,
		Timestamp:  dbHeader.Timestamp,
		Nonce:      dbHeader.Nonce,
	}, nil
}

// ContextHeadersToDbContextHeaders converts a slice of ContextHeaders
func ContextHeadersToDbContextHeaders(headers []*externalapi.ContextHeader) []*DbContextHeader {
	dbHeaders := make([]*DbContextHeader, len(headers))
	for i, header := range headers {
		dbHeaders[i] = ContextHeaderToDbContextHeader(header)
	}
	return dbHeaders
}

// DbContextHeadersToContextHeaders converts a slice of DbContextHeaders
func DbContextHeadersToContextHeaders(dbHeaders []*DbContextHeader) ([]*externalapi.ContextHeader, error) {
	headers := make([]*externalapi.ContextHeader, len(dbHeaders))
	for i, dbHeader := range dbHeaders {
		header, err := DbContextHeaderToContextHeader(dbHeader)
		if err != nil {
			return nil, err
		}
		headers[i] = header
	}
	return headers, nil
}
