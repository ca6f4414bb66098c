package chunker

import (
	"github.com/kalbasit/cdc"
	"github.com/kalbasit/cdc/hash"
	"github.com/kalbasit/cdc/mask"
	"github.com/kalbasit/cdc/polynomial"
	"github.com/kalbasit/cdc/tables"
	"github.com/kalbasit/cdc/width"
)

// This file wires the rolling-hash family (package hash), the byte
// tables (package tables) and the mask builders (package mask) into
// named NormalizedChunker instances — one per published CDC algorithm in
// the corpus, per spec.md §9's "presets are plain constructor
// functions" design note. Every preset returns a *NormalizedChunker[T]
// or, for the two genuinely bespoke algorithms (BuzHash32Reg, Fixed), a
// standalone cdc.SplitFinder.

// DefaultTableSeed is the PRNG seed used by every preset below that
// builds its own table, chosen once so presets built in different
// processes (e.g. a benchmark driver and its report generator) see
// byte-identical tables.
const DefaultTableSeed = 0x6b616c62 // "kalb"

// FastCDC2016 wires the left-Gear hash into the normalized chunker with
// the SHA-256-derived table, matching the pre-2020 FastCDC paper: no
// normalization by default (level 0). Grounded on
// chunkers/ported/fast_cdc2020.rs's Gear wiring, minus the normalization
// the 2020 revision added — see FastCDC2020.
func FastCDC2016() *NormalizedChunker[width.U64] {
	return New[width.U64](
		hash.NewLeftGearBuilder(tables.Sha256U64()),
		mask.Simple[width.U64](),
		MaskZeroPredicate[width.U64],
		SimpleCenter,
		0,
	)
}

// FastCDC2020 is FastCDC2016 with the 2020 revision's normalized
// chunking enabled at level 2, the paper's published default. Grounded
// on chunkers/ported/fast_cdc2020.rs.
func FastCDC2020() *NormalizedChunker[width.U64] {
	return New[width.U64](
		hash.NewLeftGearBuilder(tables.Sha256U64()),
		mask.Simple[width.U64](),
		MaskZeroPredicate[width.U64],
		SimpleCenter,
		2,
	)
}

// Gear is the bare left-Gear preset at a caller-chosen normalization
// level, for callers that want the Gear hash without the "FastCDC"
// branding or its pinned defaults.
func Gear(level uint8) *NormalizedChunker[width.U64] {
	return New[width.U64](
		hash.NewLeftGearBuilder(tables.Sha256U64()),
		mask.Simple[width.U64](),
		MaskZeroPredicate[width.U64],
		SimpleCenter,
		level,
	)
}

// Ronomon wires the right-Gear hash with the Ronomon center finder.
// Grounded on chunkers/ported/ronomon.rs.
func Ronomon(level uint8) *NormalizedChunker[width.U64] {
	return New[width.U64](
		hash.NewRightGearBuilder(tables.Sha256U64()),
		mask.Simple[width.U64](),
		MaskZeroPredicate[width.U64],
		RonomonCenter,
		level,
	)
}

// BuzHash32 wires a 32-bit BuzHash over a balance-guaranteed table and a
// spread mask — the combination spec.md §4.3 suggests for rolling
// hashes whose bits are all equally random. Grounded on
// original_source/src/hashes/buzhash.rs plus util/mask_builder.rs's
// spread-mask variant.
func BuzHash32(windowSize int, level uint8) *NormalizedChunker[width.U32] {
	return New[width.U32](
		hash.NewBuzHashBuilder(tables.BalancedU32(DefaultTableSeed), windowSize),
		mask.Spread[width.U32](DefaultTableSeed),
		MaskZeroPredicate[width.U32],
		SimpleCenter,
		level,
	)
}

// BuzHash64 is the 64-bit analogue of BuzHash32.
func BuzHash64(windowSize int, level uint8) *NormalizedChunker[width.U64] {
	return New[width.U64](
		hash.NewBuzHashBuilder(tables.BalancedU64(DefaultTableSeed), windowSize),
		mask.Spread[width.U64](DefaultTableSeed),
		MaskZeroPredicate[width.U64],
		SimpleCenter,
		level,
	)
}

// BuzHash128 is the 128-bit analogue of BuzHash32.
func BuzHash128(windowSize int, level uint8) *NormalizedChunker[width.U128] {
	return New[width.U128](
		hash.NewBuzHashBuilder(tables.BalancedU128(DefaultTableSeed), windowSize),
		mask.Spread[width.U128](DefaultTableSeed),
		MaskZeroPredicate[width.U128],
		SimpleCenter,
		level,
	)
}

// BuzHash32Plain is a direct port of the non-normalized buzhash32.rs: a
// SHA-256-derived table, a single contiguous mask, and a single search
// region spanning the whole buffer past min (level 0, center pinned to
// min via AtMin). Kept distinct from BuzHash32 because it exercises the
// SHA-256 table + Simple mask combination rather than Balanced + Spread.
func BuzHash32Plain(windowSize int) *NormalizedChunker[width.U32] {
	return New[width.U32](
		hash.NewBuzHashBuilder(tables.Sha256U32(), windowSize),
		mask.Simple[width.U32](),
		MaskZeroPredicate[width.U32],
		AtMin,
		0,
	)
}

// borgTable is the published 256-entry BuzHash table from
// borgbackup/borg's _chunker.c, used verbatim so the Borg preset's
// output matches the real backup tool's chunk boundaries.
var borgTable = [256]width.U32{
	0xe7f831ec, 0xf4026465, 0xafb50cae, 0x6d553c7a, 0xd639efe3, 0x19a7b895, 0x9aba5b21, 0x5417d6d4,
	0x35fd2b84, 0xd1f6a159, 0x3f8e323f, 0xb419551c, 0xf444cebf, 0x21dc3b80, 0xde8d1e36, 0x84a32436,
	0xbeb35a9d, 0xa36f24aa, 0xa4e60186, 0x98d18ffe, 0x3f042f9e, 0xdb228bcd, 0x096474b7, 0x5c20c2f7,
	0xf9eec872, 0xe8625275, 0xb9d38f80, 0xd48eb716, 0x22a950b4, 0x3cbaaeaa, 0xc37cddd3, 0x8fea6f6a,
	0x1d55d526, 0x7fd6d3b3, 0xdaa072ee, 0x4345ac40, 0xa077c642, 0x8f2bd45b, 0x28509110, 0x55557613,
	0xffc17311, 0xd961ffef, 0xe532c287, 0xaab95937, 0x46d38365, 0xb065c703, 0xf2d91d0f, 0x92cd4bb0,
	0x4007c712, 0xf35509dd, 0x505b2f69, 0x557ead81, 0x310f4563, 0xbddc5be8, 0x9760f38c, 0x701e0205,
	0x00157244, 0x14912826, 0xdc4ca32b, 0x67b196de, 0x5db292e8, 0x8c1b406b, 0x01f34075, 0xfa2520f7,
	0x73bc37ab, 0x1e18bc30, 0xfe2c6cb3, 0x20c522d0, 0x5639e3db, 0x942bda35, 0x899af9d1, 0xced44035,
	0x98cc025b, 0x255f5771, 0x70fefa24, 0xe928fa4d, 0x2c030405, 0xb9325590, 0x20cb63bd, 0xa166305d,
	0x80e52c0a, 0xa8fafe2f, 0x1ad13f7d, 0xcfaf3685, 0x6c83a199, 0x7d26718a, 0xde5dfcd9, 0x79cf7355,
	0x8979d7fb, 0xebf8c55e, 0xebe408e4, 0xcd2affba, 0xe483be6e, 0xe239d6de, 0x5dc1e9e0, 0x0473931f,
	0x851b097c, 0xac5db249, 0x09c0f9f2, 0xd8d2f134, 0xe6f38e41, 0xb1c71bf1, 0x52b6e4db, 0x07224424,
	0x6cf73e85, 0x4f25d89c, 0x782a7d74, 0x10a68dcd, 0x3a868189, 0xd570d2dc, 0x69630745, 0x9542ed86,
	0x331cd6b2, 0xa84b5b28, 0x07879c9d, 0x38372f64, 0x7185db11, 0x25ba7c83, 0x01061523, 0xe6792f9f,
	0xe5df07d1, 0x4321b47f, 0x7d2469d8, 0x1a3a4f90, 0x48be29a3, 0x669071af, 0x8ec8dd31, 0x0810bfbf,
	0x813a06b4, 0x68538345, 0x65865ddc, 0x43a71b8e, 0x78619a56, 0x5a34451d, 0x5bdaa3ed, 0x71edc7e9,
	0x17ac9a20, 0x78d10bfa, 0x6c1e7f35, 0xd51839d9, 0x240cbc51, 0x33513cc1, 0xd2b4f795, 0xccaa8186,
	0x0babe682, 0xa33cf164, 0x18c643ea, 0xc1ca105f, 0x9959147a, 0x6d3d94de, 0x0b654fbe, 0xed902ca0,
	0x7d835cb5, 0x99ba1509, 0x6445c922, 0x495e76c2, 0xf07194bc, 0xa1631d7e, 0x677076a5, 0x89fffe35,
	0x1a49bcf3, 0x8e6c948a, 0x0144c917, 0x8d93aea1, 0x16f87ddf, 0xc8f25d49, 0x1fb11297, 0x27e750cd,
	0x2f422da1, 0xdee89a77, 0x1534c643, 0x457b7b8b, 0xaf172f7a, 0x6b9b09d6, 0x33573f7f, 0xf14e15c4,
	0x526467d5, 0xaf488241, 0x87c3ee0d, 0x33be490c, 0x95aa6e52, 0x43ec242e, 0xd77de99b, 0xd018334f,
	0x5b78d407, 0x498eb66b, 0xb1279fa8, 0xb38b0ea6, 0x90718376, 0xe325dee2, 0x8e2f2cba, 0xcaa5bdec,
	0x9d652c56, 0xad68f5cb, 0xa77591af, 0x88e37ee8, 0xf8faa221, 0xfcbbbe47, 0x4f407786, 0xaf393889,
	0xf444a1d9, 0x15ae1a2f, 0x40aa7097, 0x6f9486ac, 0x29d232a3, 0xe47609e9, 0xe8b631ff, 0xba8565f4,
	0x11288749, 0x46c9a838, 0xeb1b7cd8, 0xf516bbb1, 0xfb74fda0, 0x010996e6, 0x4c994653, 0x1d889512,
	0x53dcd9a3, 0xdd074697, 0x1e78e17c, 0x637c98bf, 0x930bb219, 0xcf7f75b0, 0xcb9355fb, 0x9e623009,
	0xe466d82c, 0x28f968d3, 0xfeb385d9, 0x238e026c, 0xb8ed0560, 0x0c6a027a, 0x3d6fec4b, 0xbb4b2ec2,
	0xe715031c, 0xeded011d, 0xcdc4d3b9, 0xc456fc96, 0xdd0eea20, 0xb3df8ec9, 0x12351993, 0xd9cbb01c,
	0x603147a2, 0xcf37d17d, 0xf7fcd9dc, 0xd8556fa3, 0x104c8131, 0x13152774, 0xb4715811, 0x6a72c2c9,
	0xc5ae37bb, 0xa76ce12a, 0x8150d8f3, 0x2ec29218, 0xa35f0984, 0x48c0647e, 0x0b5ff98c, 0x71893f7b,
}

// BorgWindowSize is the fixed window borg's chunker hardcodes — not
// divisible by 64, to keep the hash's own seeding from cancelling out.
const BorgWindowSize = 4095

// Borg wires the published Borg BuzHash table at its fixed 4095-byte
// window with no normalization, reproducing borgbackup's own chunker.
// Grounded on chunkers/ported/borg.rs.
func Borg() *NormalizedChunker[width.U32] {
	return New[width.U32](
		hash.NewBuzHashBuilder(borgTable, BorgWindowSize),
		mask.Simple[width.U32](),
		MaskZeroPredicate[width.U32],
		SimpleCenter,
		0,
	)
}

// DuplicacySeed is Duplicacy's own published table seed.
const DuplicacySeed = 8419361

// Duplicacy wires a 64-bit BuzHash whose window equals sizes.Min (so it
// must be constructed per ChunkSizes, unlike every other preset here)
// and a single contiguous mask sized to avg, no two-region
// normalization. Grounded on duplicacy.rs.
func Duplicacy(sizes cdc.ChunkSizes) *NormalizedChunker[width.U64] {
	return New[width.U64](
		hash.NewBuzHashBuilder(tables.SeedExpandedU64(DuplicacySeed), int(sizes.Min)),
		mask.Simple[width.U64](),
		MaskZeroPredicate[width.U64],
		AtMin,
		0,
	)
}

// Adler32 wires the rolling Adler-32 checksum into the normalized
// chunker. Grounded on original_source/src/hashes/adler32.rs.
func Adler32(windowSize int, level uint8) *NormalizedChunker[width.U32] {
	return New[width.U32](
		hash.NewAdler32Builder(windowSize),
		mask.Simple[width.U32](),
		MaskZeroPredicate[width.U32],
		SimpleCenter,
		level,
	)
}

// pciMaskBuilder adapts mask.PCIThreshold (which wants a byte chunk
// size) to the mask.Builder[T] shape (bits uint8) every other preset
// uses, so PCI can share NormalizedChunker's two-region machinery
// instead of needing its own chunker type.
func pciMaskBuilder(windowSize int) mask.Builder[width.U32] {
	return func(bits uint8) width.U32 {
		chunkSize := uint64(1) << bits
		return width.U32(mask.PCIThreshold(windowSize, chunkSize))
	}
}

// PCI wires the popcount rolling hash with its threshold predicate.
// Grounded on chunkers/ported/pci.rs.
func PCI(windowSize int, level uint8) *NormalizedChunker[width.U32] {
	return New[width.U32](
		hash.NewPCIBuilder(windowSize),
		pciMaskBuilder(windowSize),
		PCIThresholdPredicate[width.U32],
		SimpleCenter,
		level,
	)
}

// ResticPolynomial is restic's own default irreducible polynomial,
// 0x3DA3358B4DC173, degree 53.
const ResticPolynomial polynomial.Pol = 0x3DA3358B4DC173

// Restic wires the Polynomial (Rabin) rolling hash at level 0: a single
// mask built from log2(avg) applied across the whole buffer, matching
// restic's own chunker.go exactly (restic predates two-region
// normalization — see DESIGN.md). Passing a non-default pol lets callers
// cross-validate against other restic-family deployments.
func Restic(pol polynomial.Pol) *NormalizedChunker[width.U64] {
	return New[width.U64](
		hash.NewPolynomialBuilder(pol),
		mask.Simple[width.U64](),
		MaskZeroPredicate[width.U64],
		SimpleCenter,
		0,
	)
}
