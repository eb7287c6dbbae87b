package testutils

import (
	"encoding/binary"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/hashes"
	"github.com/kaspanet/popd/domain/pop/utils/pophashing"
)

// BuildBlocks returns count local blocks extending parent. Blocks built with
// a different tag get different hashes, so tags distinguish forks.
func BuildBlocks(parent *externalapi.HeaderRef, count int, tag string) []*externalapi.LocalBlock {
	blocks := make([]*externalapi.LocalBlock, count)
	parentHash, parentHeight := parent.Hash, parent.Height
	for i := range blocks {
		height := parentHeight + 1
		writer := hashes.NewLocalBlockHashWriter()
		writer.InfallibleWrite(parentHash.ByteSlice())
		var heightBytes [8]byte
		binary.LittleEndian.PutUint64(heightBytes[:], height)
		writer.InfallibleWrite(heightBytes[:])
		writer.InfallibleWrite([]byte(tag))

		blocks[i] = &externalapi.LocalBlock{
			HeaderRef:  externalapi.NewHeaderRef(writer.Finalize(), height),
			ParentHash: parentHash,
		}
		parentHash, parentHeight = blocks[i].Hash, height
	}
	return blocks
}

// BuildContextHeaders returns count context headers extending parent. The
// nonce distinguishes forks of the same context chain.
func BuildContextHeaders(parent *externalapi.ContextHeader, count int, nonce uint64) []*externalapi.ContextHeader {
	headers := make([]*externalapi.ContextHeader, count)
	previous := parent
	for i := range headers {
		headers[i] = &externalapi.ContextHeader{
			Version:    previous.Version,
			Height:     previous.Height + 1,
			PrevHash:   pophashing.HeaderHash(previous),
			MerkleRoot: previous.MerkleRoot,
			Timestamp:  previous.Timestamp + 600,
			Nonce:      nonce,
		}
		previous = headers[i]
	}
	return headers
}

// Refs returns the HeaderRefs of the given blocks
func Refs(blocks []*externalapi.LocalBlock) []*externalapi.HeaderRef {
	refs := make([]*externalapi.HeaderRef, len(blocks))
	for i, block := range blocks {
		refs[i] = block.HeaderRef
	}
	return refs
}
