package serialization

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"google.golang.org/protobuf/proto"
)

func hashForTest(b byte) *externalapi.DomainHash {
	return externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{b})
}

func contextHeaderForTest(height uint64) *externalapi.ContextHeader {
	return &externalapi.ContextHeader{
		Version:    1,
		Height:     height,
		PrevHash:   hashForTest(byte(height)),
		MerkleRoot: hashForTest(0xee),
		Timestamp:  -int64(height),
		Nonce:      height * 3,
	}
}

func TestSnapshotBlockConversion(t *testing.T) {
	maxWork := new(uint256.Int).SetAllOne()
	tests := []struct {
		name  string
		block *model.SnapshotBlock
	}{
		{
			name: "genesis",
			block: &model.SnapshotBlock{
				Block:          &externalapi.LocalBlock{HeaderRef: externalapi.NewHeaderRef(hashForTest(1), 0)},
				CumulativeWork: uint256.NewInt(0),
			},
		},
		{
			name: "with parent and maximal work",
			block: &model.SnapshotBlock{
				Block: &externalapi.LocalBlock{
					HeaderRef:  externalapi.NewHeaderRef(hashForTest(2), 12),
					ParentHash: hashForTest(3),
				},
				CumulativeWork: maxWork,
				Arrival:        44,
			},
		},
	}
	for _, test := range tests {
		blockBytes, err := proto.Marshal(SnapshotBlockToDbSnapshotBlock(test.block))
		if err != nil {
			t.Fatalf("%s: Marshal: %s", test.name, err)
		}
		dbBlock := &DbSnapshotBlock{}
		err = proto.Unmarshal(blockBytes, dbBlock)
		if err != nil {
			t.Fatalf("%s: Unmarshal: %s", test.name, err)
		}
		block, err := DbSnapshotBlockToSnapshotBlock(dbBlock)
		if err != nil {
			t.Fatalf("%s: DbSnapshotBlockToSnapshotBlock: %s", test.name, err)
		}
		if !block.Block.HeaderRef.Equal(test.block.Block.HeaderRef) ||
			!block.Block.ParentHash.Equal(test.block.Block.ParentHash) ||
			block.CumulativeWork.Cmp(test.block.CumulativeWork) != 0 ||
			block.Arrival != test.block.Arrival {
			t.Fatalf("%s: expected %+v, got %+v", test.name, test.block, block)
		}
	}
}

func TestEndorsementConversion(t *testing.T) {
	endorsement := &externalapi.Endorsement{
		Kind:            externalapi.SecondOrder,
		EndorsedBlock:   externalapi.NewHeaderRef(hashForTest(4), 10),
		EndorsingHeader: contextHeaderForTest(20),
		EndorsingBlock:  externalapi.NewHeaderRef(hashForTest(5), 20),
		ContainingBlock: externalapi.NewHeaderRef(hashForTest(6), 30),
		PayoutScript:    []byte{0x76, 0xa9},
		PublicKey:       make([]byte, 32),
		Signature:       make([]byte, 64),
		ContextBlocks:   []*externalapi.ContextHeader{contextHeaderForTest(18), contextHeaderForTest(19)},
	}
	endorsementBytes, err := proto.Marshal(EndorsementToDbEndorsement(endorsement))
	if err != nil {
		t.Fatalf("Marshal: %s", err)
	}
	dbEndorsement := &DbEndorsement{}
	err = proto.Unmarshal(endorsementBytes, dbEndorsement)
	if err != nil {
		t.Fatalf("Unmarshal: %s", err)
	}
	converted, err := DbEndorsementToEndorsement(dbEndorsement)
	if err != nil {
		t.Fatalf("DbEndorsementToEndorsement: %s", err)
	}
	if converted.Kind != endorsement.Kind ||
		!converted.EndorsedBlock.Equal(endorsement.EndorsedBlock) ||
		!converted.EndorsingHeader.Equal(endorsement.EndorsingHeader) ||
		!converted.EndorsingBlock.Equal(endorsement.EndorsingBlock) ||
		!converted.ContainingBlock.Equal(endorsement.ContainingBlock) ||
		string(converted.PayoutScript) != string(endorsement.PayoutScript) ||
		len(converted.PublicKey) != 32 || len(converted.Signature) != 64 {
		t.Fatalf("expected %s, got %s", endorsement, converted)
	}
	if len(converted.ContextBlocks) != 2 || !converted.ContextBlocks[1].Equal(endorsement.ContextBlocks[1]) {
		t.Fatalf("unexpected context blocks %+v", converted.ContextBlocks)
	}
}

func TestConversionErrors(t *testing.T) {
	validHeader := ContextHeaderToDbContextHeader(contextHeaderForTest(1))
	validRef := HeaderRefToDbHeaderRef(externalapi.NewHeaderRef(hashForTest(1), 1))

	tests := []struct {
		name    string
		convert func() error
	}{
		{"short hash", func() error {
			_, err := DbHashToDomainHash(&DbHash{Hash: []byte{1, 2, 3}})
			return err
		}},
		{"missing hash", func() error {
			_, err := DbHeaderRefToHeaderRef(&DbHeaderRef{Height: 3})
			return err
		}},
		{"missing header ref", func() error {
			_, err := DbSnapshotBlockToSnapshotBlock(&DbSnapshotBlock{})
			return err
		}},
		{"work above 256 bits", func() error {
			_, err := DbSnapshotBlockToSnapshotBlock(&DbSnapshotBlock{HeaderRef: validRef, CumulativeWork: make([]byte, 33)})
			return err
		}},
		{"header without merkle root", func() error {
			_, err := DbContextHeaderToContextHeader(&DbContextHeader{PrevHash: validHeader.PrevHash})
			return err
		}},
		{"endorsement kind out of range", func() error {
			_, err := DbEndorsementToEndorsement(&DbEndorsement{Kind: 300})
			return err
		}},
		{"endorsement without endorsing header", func() error {
			_, err := DbEndorsementToEndorsement(&DbEndorsement{
				Kind:            1,
				EndorsedBlock:   validRef,
				EndorsingBlock:  validRef,
				ContainingBlock: validRef,
			})
			return err
		}},
		{"endorsement with a broken context block", func() error {
			_, err := DbEndorsementToEndorsement(&DbEndorsement{
				Kind:            1,
				EndorsedBlock:   validRef,
				EndorsingHeader: validHeader,
				EndorsingBlock:  validRef,
				ContainingBlock: validRef,
				ContextBlocks:   []*DbContextHeader{validHeader, {}},
			})
			return err
		}},
	}
	for _, test := range tests {
		if test.convert() == nil {
			t.Errorf("%s: conversion unexpectedly succeeded", test.name)
		}
	}
}
