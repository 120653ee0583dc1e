package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

func TestInitSplit(t *testing.T) {
	t.Run("seeds a single credit line equal to the total", func(t *testing.T) {
		set := InitSplit(1000)
		require.Len(t, set.Components, 1)
		assert.Equal(t, enum.PaymentKindCredit, set.Components[0].Kind)
		assert.Equal(t, int64(1000), set.Components[0].Amount)
		assert.True(t, ValidateTotal(set, 1000))
	})

	t.Run("zero total yields an empty set", func(t *testing.T) {
		assert.Empty(t, InitSplit(0).Components)
	})
}

func TestAdd(t *testing.T) {
	t.Run("builds a valid cash/upi/credit split", func(t *testing.T) {
		set := SplitSet{}
		set, err := Add(set, 1000, enum.PaymentKindCash, 300, 0)
		require.NoError(t, err)
		set, err = Add(set, 1000, enum.PaymentKindUPI, 200, 0)
		require.NoError(t, err)
		set, err = Add(set, 1000, enum.PaymentKindCredit, 500, 0)
		require.NoError(t, err)

		assert.True(t, ValidateTotal(set, 1000))
		remaining, err := Remaining(set, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), remaining)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := Add(SplitSet{}, 1000, enum.PaymentKindCash, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = Add(SplitSet{}, 1000, enum.PaymentKindCash, -50, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects a second credit line", func(t *testing.T) {
		set := InitSplit(1000)
		set = Remove(set, set.Components[0].ID)
		set, err := Add(set, 1000, enum.PaymentKindCredit, 400, 0)
		require.NoError(t, err)

		_, err = Add(set, 1000, enum.PaymentKindCredit, 100, 0)
		assert.ErrorIs(t, err, ErrDuplicateCredit)
	})

	t.Run("rejects over-allocation", func(t *testing.T) {
		set, err := Add(SplitSet{}, 1000, enum.PaymentKindCash, 800, 0)
		require.NoError(t, err)

		_, err = Add(set, 1000, enum.PaymentKindUPI, 300, 0)
		assert.ErrorIs(t, err, ErrOverAllocation)
	})

	t.Run("caps advance use at the balance passed in at add time", func(t *testing.T) {
		_, err := Add(SplitSet{}, 1000, enum.PaymentKindAdvanceUse, 200, 150)
		assert.ErrorIs(t, err, ErrInsufficientAdvance)

		set, err := Add(SplitSet{}, 1000, enum.PaymentKindAdvanceUse, 100, 150)
		require.NoError(t, err)

		// staged advance use counts against the same balance
		_, err = Add(set, 1000, enum.PaymentKindAdvanceUse, 100, 150)
		assert.ErrorIs(t, err, ErrInsufficientAdvance)
	})

	t.Run("advance top-ups do not consume the remaining total", func(t *testing.T) {
		set, err := Add(SplitSet{}, 500, enum.PaymentKindAdvanceAddCash, 2000, 0)
		require.NoError(t, err)

		remaining, err := Remaining(set, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(500), remaining)
	})

	t.Run("does not mutate the input set", func(t *testing.T) {
		original, err := Add(SplitSet{}, 1000, enum.PaymentKindCash, 300, 0)
		require.NoError(t, err)

		_, err = Add(original, 1000, enum.PaymentKindUPI, 200, 0)
		require.NoError(t, err)
		assert.Len(t, original.Components, 1)
	})
}

func TestRemove(t *testing.T) {
	set, err := Add(SplitSet{}, 1000, enum.PaymentKindCash, 300, 0)
	require.NoError(t, err)
	set, err = Add(set, 1000, enum.PaymentKindUPI, 200, 0)
	require.NoError(t, err)

	t.Run("removes by id", func(t *testing.T) {
		out := Remove(set, set.Components[0].ID)
		require.Len(t, out.Components, 1)
		assert.Equal(t, enum.PaymentKindUPI, out.Components[0].Kind)
		assert.False(t, ValidateTotal(out, 1000))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		out := Remove(set, set.Components[0].ID)
		out = Remove(out, set.Components[0].ID)
		assert.Len(t, out.Components, 1)
	})
}

func TestRemaining(t *testing.T) {
	t.Run("never surfaces a negative remainder", func(t *testing.T) {
		// A set can only become over-allocated against a smaller total,
		// e.g. when KOTs are removed from an open bill after staging.
		set, err := Add(SplitSet{}, 1000, enum.PaymentKindCash, 900, 0)
		require.NoError(t, err)

		remaining, err := Remaining(set, 500)
		assert.ErrorIs(t, err, ErrOverAllocation)
		assert.Equal(t, int64(0), remaining)
	})
}

func TestValidateTotal(t *testing.T) {
	set, err := Add(SplitSet{}, 1000, enum.PaymentKindCash, 999, 0)
	require.NoError(t, err)

	t.Run("tolerates one minor unit of rounding", func(t *testing.T) {
		assert.True(t, ValidateTotal(set, 1000))
	})

	t.Run("fails when a contributing component is missing", func(t *testing.T) {
		assert.False(t, ValidateTotal(set, 1500))
		assert.False(t, ValidateTotal(SplitSet{}, 1000))
	})
}

func TestNormalize(t *testing.T) {
	t.Run("first non-advance component absorbs the remainder", func(t *testing.T) {
		set, err := Add(SplitSet{}, 1001, enum.PaymentKindAdvanceUse, 500, 500)
		require.NoError(t, err)
		set, err = Add(set, 1001, enum.PaymentKindCash, 250, 0)
		require.NoError(t, err)
		set, err = Add(set, 1001, enum.PaymentKindUPI, 250, 0)
		require.NoError(t, err)

		out := Normalize(set, 1001)
		assert.Equal(t, int64(251), out.Components[1].Amount) // cash, not advance
		assert.Equal(t, int64(250), out.Components[2].Amount)
		assert.Equal(t, int64(1001), out.Contributing())
	})

	t.Run("deterministic across repeated runs", func(t *testing.T) {
		build := func() SplitSet {
			set, err := Add(SplitSet{}, 1001, enum.PaymentKindCash, 500, 0)
			require.NoError(t, err)
			set, err = Add(set, 1001, enum.PaymentKindUPI, 500, 0)
			require.NoError(t, err)
			return Normalize(set, 1001)
		}
		a, b := build(), build()
		require.Len(t, a.Components, len(b.Components))
		for i := range a.Components {
			assert.Equal(t, a.Components[i].Amount, b.Components[i].Amount)
			assert.Equal(t, a.Components[i].Kind, b.Components[i].Kind)
		}
	})

	t.Run("leaves out-of-tolerance sets unchanged", func(t *testing.T) {
		set, err := Add(SplitSet{}, 1000, enum.PaymentKindCash, 500, 0)
		require.NoError(t, err)

		out := Normalize(set, 1000)
		assert.Equal(t, int64(500), out.Contributing())
	})
}
