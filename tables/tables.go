// Package tables builds the deterministic byte→integer lookup tables
// the rolling hashes in package hash key themselves with: a SHA-256
// derived table (one entry per byte value, independent of algorithm)
// and a balance-guaranteed table for BuzHash, where each bit position
// must be set in exactly half of the 256 entries so that XOR-folding
// many table entries together doesn't bias the digest toward any one
// bit pattern.
package tables

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"

	"github.com/kalbasit/cdc/width"
)

// Sha256U32 builds a 256-entry table where entry i is the first 4 bytes
// (big-endian) of SHA-256(bytes filled with value i, 64 of them).
func Sha256U32() (table [256]width.U32) {
	for i := range table {
		table[i] = width.U32(binary.BigEndian.Uint32(sha256Of(byte(i))[:4]))
	}

	return table
}

// Sha256U64 builds the 64-bit analogue of Sha256U32.
func Sha256U64() (table [256]width.U64) {
	for i := range table {
		table[i] = width.U64(binary.BigEndian.Uint64(sha256Of(byte(i))[:8]))
	}

	return table
}

// Sha256U128 builds the 128-bit analogue, taking the first 16 bytes of
// the digest as Hi||Lo, each big-endian.
func Sha256U128() (table [256]width.U128) {
	for i := range table {
		d := sha256Of(byte(i))
		table[i] = width.U128{
			Hi: binary.BigEndian.Uint64(d[:8]),
			Lo: binary.BigEndian.Uint64(d[8:16]),
		}
	}

	return table
}

// SeedExpandedU64 builds a 256-entry 64-bit table by repeatedly hashing
// a little-endian seed concatenated with a block counter and reading 4
// little-endian uint64s out of each 32-byte digest, 64 blocks filling
// the 256 entries. Grounded on duplicacy.rs's generate_table, seeded
// from Duplicacy's own published constant 8419361; unlike that
// original, the block counter is folded into each hash input (the
// original rehashes the bare seed on every iteration, producing 64
// repeated groups of 4 identical entries) so the table is actually
// well-distributed across all 256 entries.
func SeedExpandedU64(seed uint32) (table [256]width.U64) {
	var seedBytes [4]byte
	binary.LittleEndian.PutUint32(seedBytes[:], seed)

	for block := 0; block < 64; block++ {
		var blockBytes [4]byte
		binary.LittleEndian.PutUint32(blockBytes[:], uint32(block))

		h := sha256.New()
		h.Write(seedBytes[:])
		h.Write(blockBytes[:])
		digest := h.Sum(nil)

		for j := 0; j < 4; j++ {
			table[4*block+j] = width.U64(binary.LittleEndian.Uint64(digest[8*j : 8*j+8]))
		}
	}

	return table
}

func sha256Of(b byte) [32]byte {
	var seed [64]byte
	for i := range seed {
		seed[i] = b
	}

	return sha256.Sum256(seed[:])
}

// BalancedU32 builds a balanced BuzHash table for a 32-bit digest: for
// each of the 32 bit positions, a seeded shuffle of the 256
// table indices picks 128 of them to carry that bit, guaranteeing each
// bit is set in exactly half the entries. Determinism comes entirely
// from the seed, so two processes building the table with the same
// seed get byte-identical tables.
func BalancedU32(seed int64) (table [256]width.U32) {
	rng := rand.New(rand.NewSource(seed))

	for bit := 0; bit < 32; bit++ {
		for _, idx := range shuffledHalf(rng) {
			table[idx] |= 1 << uint(bit)
		}
	}

	return table
}

// BalancedU64 is the 64-bit analogue of BalancedU32.
func BalancedU64(seed int64) (table [256]width.U64) {
	rng := rand.New(rand.NewSource(seed))

	for bit := 0; bit < 64; bit++ {
		for _, idx := range shuffledHalf(rng) {
			table[idx] |= 1 << uint(bit)
		}
	}

	return table
}

// BalancedU128 is the 128-bit analogue of BalancedU32.
func BalancedU128(seed int64) (table [256]width.U128) {
	rng := rand.New(rand.NewSource(seed))

	for bit := 0; bit < 128; bit++ {
		for _, idx := range shuffledHalf(rng) {
			if bit < 64 {
				table[idx].Lo |= 1 << uint(bit)
			} else {
				table[idx].Hi |= 1 << uint(bit-64)
			}
		}
	}

	return table
}

// shuffledHalf returns 128 of the 256 byte-table indices, chosen by a
// Fisher-Yates shuffle of rng and keeping the first half.
func shuffledHalf(rng *rand.Rand) []int {
	idx := make([]int, 256)
	for i := range idx {
		idx[i] = i
	}

	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	return idx[:128]
}
