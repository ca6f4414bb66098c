package tables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/cdc/tables"
	"github.com/kalbasit/cdc/width"
)

// TestSha256TableZeroEntryIsPinned pins the well-known value of
// SHA256(zero-filled 64 bytes), the table's entry 0, exactly as
// spec.md §8's "Determinism of hash tables" property requires.
func TestSha256TableZeroEntryIsPinned(t *testing.T) {
	u32 := tables.Sha256U32()
	require.Equal(t, width.U32(4121296194), u32[0])

	u64 := tables.Sha256U64()
	require.Equal(t, width.U64(17700832373872664624), u64[0])
}

func TestSha256TableIsDeterministic(t *testing.T) {
	assert.Equal(t, tables.Sha256U32(), tables.Sha256U32())
	assert.Equal(t, tables.Sha256U64(), tables.Sha256U64())
	assert.Equal(t, tables.Sha256U128(), tables.Sha256U128())
}

func TestBalancedTableIsBitBalanced(t *testing.T) {
	table := tables.BalancedU32(1)

	for bit := uint(0); bit < 32; bit++ {
		count := 0
		for _, entry := range table {
			if entry.Shr(bit).And(1) == 1 {
				count++
			}
		}

		assert.Equal(t, 128, count, "bit %d should be set in exactly half the table", bit)
	}
}

func TestBalancedTableDeterministicPerSeed(t *testing.T) {
	assert.Equal(t, tables.BalancedU64(99), tables.BalancedU64(99))
	assert.NotEqual(t, tables.BalancedU64(1), tables.BalancedU64(2))
}
