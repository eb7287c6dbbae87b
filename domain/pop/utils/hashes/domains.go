package hashes

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	contextHeaderDomain      = "ContextHeaderHash"
	endorsementIDDomain      = "EndorsementID"
	endorsementSigningDomain = "EndorsementSigningHash"
	localBlockDomain         = "LocalBlockHash"
)

func newHashWriter(domain string) HashWriter {
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}

// NewContextHeaderHashWriter returns a new HashWriter used for hashing
// headers of the intermediate and security chains
func NewContextHeaderHashWriter() HashWriter {
	return newHashWriter(contextHeaderDomain)
}

// NewEndorsementIDWriter returns a new HashWriter used for endorsement IDs
func NewEndorsementIDWriter() HashWriter {
	return newHashWriter(endorsementIDDomain)
}

// NewEndorsementSigningHashWriter returns a new HashWriter used for the
// digest an endorser signs
func NewEndorsementSigningHashWriter() HashWriter {
	return newHashWriter(endorsementSigningDomain)
}

// NewLocalBlockHashWriter returns a new HashWriter used by tooling that
// fabricates local block identifiers
func NewLocalBlockHashWriter() HashWriter {
	return newHashWriter(localBlockDomain)
}
