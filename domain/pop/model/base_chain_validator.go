package model

import (
	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
)

// BaseChainValidator is the base chain's own consensus, which validates
// headers and proof of work. Blocks it rejects are never connected.
type BaseChainValidator interface {
	IsValidHeader(block *externalapi.LocalBlock) error
	CumulativeWork(block *externalapi.LocalBlock) (*uint256.Int, error)
}
