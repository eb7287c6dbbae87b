package popconfig

import (
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/utils/hashes"
)

var zeroHash = externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{})

func genesisBlock(netName string) *externalapi.LocalBlock {
	writer := hashes.NewLocalBlockHashWriter()
	writer.InfallibleWrite([]byte("genesis/" + netName))
	return &externalapi.LocalBlock{
		HeaderRef:  externalapi.NewHeaderRef(writer.Finalize(), 0),
		ParentHash: nil,
	}
}

func bootstrapHeader(height uint64, timestamp int64, nonce uint64) *externalapi.ContextHeader {
	return &externalapi.ContextHeader{
		Version:    1,
		Height:     height,
		PrevHash:   zeroHash,
		MerkleRoot: zeroHash,
		Timestamp:  timestamp,
		Nonce:      nonce,
	}
}

var (
	mainnetGenesisBlock          = genesisBlock("mainnet")
	mainnetIntermediateBootstrap = bootstrapHeader(1200000, 1590000000, 0x1a2b3c)
	mainnetSecurityBootstrap     = bootstrapHeader(630000, 1589225023, 0x7c2f5d)

	testnetGenesisBlock          = genesisBlock("testnet")
	testnetIntermediateBootstrap = bootstrapHeader(400000, 1590000000, 0x2b3c4d)
	testnetSecurityBootstrap     = bootstrapHeader(1700000, 1589225023, 0x3e4f50)

	regtestGenesisBlock          = genesisBlock("regtest")
	regtestIntermediateBootstrap = bootstrapHeader(0, 1553699059, 0x01)
	regtestSecurityBootstrap     = bootstrapHeader(0, 1296688602, 0x02)

	simnetGenesisBlock          = genesisBlock("simnet")
	simnetIntermediateBootstrap = bootstrapHeader(0, 1553699059, 0x03)
	simnetSecurityBootstrap     = bootstrapHeader(0, 1296688602, 0x04)
)
