package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}

func CompressTile(t Tile) ([]byte, error) {
	encoded, err := binary.Marshal(t)
	if err != nil {
		return []byte{}, err
	}
	return Compress(encoded)
}

func LoadTile(bb []byte) (Tile, error) {
	decompressed, err := Decompress(bb)
	if err != nil {
		return Tile{}, err
	}
	var t Tile
	if err := binary.Unmarshal(decompressed, &t); err != nil {
		return Tile{}, err
	}
	return t, nil
}

func CompressCandidates(cands []CandidateRecord) ([]byte, error) {
	encoded, err := binary.Marshal(cands)
	if err != nil {
		return []byte{}, err
	}
	return Compress(encoded)
}

func LoadCandidates(bb []byte) ([]CandidateRecord, error) {
	decompressed, err := Decompress(bb)
	if err != nil {
		return []CandidateRecord{}, err
	}
	var cands []CandidateRecord
	if err := binary.Unmarshal(decompressed, &cands); err != nil {
		return []CandidateRecord{}, err
	}
	return cands, nil
}
