package spending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milad/energyusage/internal/domain"
)

func reading(days, hours int, value string) domain.Reading {
	return domain.Reading{Time: at(days, hours), Value: domain.MustDecimal(value)}
}

func TestBuildIntervals(t *testing.T) {
	t.Run("fewer than two readings", func(t *testing.T) {
		assert.Empty(t, BuildIntervals(nil))
		assert.Empty(t, BuildIntervals([]domain.Reading{reading(1, 0, "5")}))
	})

	t.Run("decrease is consumption", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{
			reading(1, 0, "100"),
			reading(2, 0, "90"),
			reading(3, 0, "75.5"),
		})
		require.Len(t, got, 2)
		assert.Equal(t, at(1, 0), got[0].Start)
		assert.Equal(t, at(2, 0), got[0].End)
		assert.Equal(t, "10", got[0].Usage.String())
		assert.Equal(t, "14.5", got[1].Usage.String())
	})

	t.Run("increase is a reset", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{
			reading(1, 0, "10"),
			reading(2, 0, "100"),
			reading(3, 0, "80"),
		})
		require.Len(t, got, 1)
		assert.Equal(t, at(2, 0), got[0].Start)
		assert.Equal(t, "20", got[0].Usage.String())
	})

	t.Run("unordered input is sorted", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{
			reading(3, 0, "80"),
			reading(1, 0, "100"),
			reading(2, 0, "90"),
		})
		require.Len(t, got, 2)
		assert.True(t, got[0].End.Equal(got[1].Start))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{
			reading(1, 0, "100"),
			reading(1, 0, "100.0"),
			reading(2, 0, "90"),
			reading(2, 0, "90"),
		})
		require.Len(t, got, 1)
		assert.Equal(t, "10", got[0].Usage.String())
	})

	t.Run("only duplicates", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{reading(1, 0, "5"), reading(1, 0, "5")})
		assert.Empty(t, got)
	})

	t.Run("same timestamp different value yields nothing", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{
			reading(1, 0, "100"),
			reading(1, 0, "95"),
			reading(2, 0, "90"),
		})
		require.Len(t, got, 1)
		assert.Equal(t, at(1, 0), got[0].Start)
		assert.Equal(t, "10", got[0].Usage.String())
	})

	t.Run("same timestamp keeps highest value whatever the input order", func(t *testing.T) {
		forward := BuildIntervals([]domain.Reading{
			reading(1, 0, "100"), reading(1, 0, "95"), reading(2, 0, "90"),
		})
		reversed := BuildIntervals([]domain.Reading{
			reading(2, 0, "90"), reading(1, 0, "95"), reading(1, 0, "100"),
		})
		require.Len(t, forward, 1)
		require.Len(t, reversed, 1)
		assert.Equal(t, forward[0].Start, reversed[0].Start)
		assert.Equal(t, forward[0].End, reversed[0].End)
		assert.Equal(t, "10", reversed[0].Usage.String())
	})

	t.Run("flat value yields zero usage", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{reading(1, 0, "7"), reading(2, 0, "7")})
		require.Len(t, got, 1)
		assert.True(t, got[0].Usage.IsZero())
	})

	t.Run("result is a valid store", func(t *testing.T) {
		got := BuildIntervals([]domain.Reading{
			reading(5, 0, "1"), reading(1, 0, "50"), reading(2, 0, "40"),
			reading(3, 0, "60"), reading(4, 0, "30"), reading(4, 0, "30"),
		})
		_, err := NewStore(got)
		require.NoError(t, err)
		for _, iv := range got {
			assert.True(t, iv.Start.Before(iv.End))
			assert.GreaterOrEqual(t, iv.Usage.Sign(), 0)
		}
	})
}
