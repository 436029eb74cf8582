package verification

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billRecord(amount string, delayDays int64) ExtractedBillRecord {
	return ExtractedBillRecord{
		AccountNo: "ACC-001",
		Amount:    decimal.RequireFromString(amount),
		DelayDays: delayDays,
	}
}

func TestAggregate(t *testing.T) {
	t.Run("empty input is not aggregable", func(t *testing.T) {
		_, ok := Aggregate(nil)
		assert.False(t, ok)
	})

	t.Run("three month summary", func(t *testing.T) {
		records := []ExtractedBillRecord{
			billRecord("1000", 0),
			billRecord("1100", 2),
			billRecord("800", 5),
		}
		records[2].Outstanding = decimal.NewFromInt(350)

		stats, ok := Aggregate(records)
		require.True(t, ok)

		assert.Equal(t, int64(3), stats.TotalBills)
		assert.True(t, stats.TotalAmount.Equal(decimal.NewFromInt(2900)))
		assert.True(t, stats.AverageAmount.Equal(decimal.NewFromInt(967)), "got %s", stats.AverageAmount)
		assert.Equal(t, int64(1), stats.OnTimeBills)
		assert.Equal(t, int64(2), stats.LateBills)
		assert.Equal(t, int64(7), stats.TotalDelayDays)
		assert.Equal(t, int64(5), stats.MaxDelayDays)
		assert.True(t, stats.CurrentOutstanding.Equal(decimal.NewFromInt(350)))
	})

	t.Run("average rounds to whole currency units", func(t *testing.T) {
		stats, ok := Aggregate([]ExtractedBillRecord{
			billRecord("100", 0),
			billRecord("101", 0),
		})
		require.True(t, ok)
		// 100.5 rounds half away from zero.
		assert.True(t, stats.AverageAmount.Equal(decimal.NewFromInt(101)), "got %s", stats.AverageAmount)
	})

	t.Run("outstanding comes from the last record in input order", func(t *testing.T) {
		first := billRecord("500", 0)
		first.Outstanding = decimal.NewFromInt(999)
		last := billRecord("500", 0)
		last.Outstanding = decimal.NewFromInt(123)

		stats, ok := Aggregate([]ExtractedBillRecord{first, last})
		require.True(t, ok)
		assert.True(t, stats.CurrentOutstanding.Equal(decimal.NewFromInt(123)))
	})

	t.Run("sudden drop index from second and third records", func(t *testing.T) {
		stats, ok := Aggregate([]ExtractedBillRecord{
			billRecord("1000", 0),
			billRecord("1000", 0),
			billRecord("600", 0),
		})
		require.True(t, ok)
		assert.True(t, stats.SuddenDropIndex.Equal(decimal.RequireFromString("-0.4")), "got %s", stats.SuddenDropIndex)
	})

	t.Run("sudden drop index zero with fewer than three records", func(t *testing.T) {
		stats, ok := Aggregate([]ExtractedBillRecord{
			billRecord("1000", 0),
			billRecord("600", 0),
		})
		require.True(t, ok)
		assert.True(t, stats.SuddenDropIndex.IsZero())
	})

	t.Run("sudden drop index zero when reference amount is zero", func(t *testing.T) {
		stats, ok := Aggregate([]ExtractedBillRecord{
			billRecord("1000", 0),
			billRecord("0", 0),
			billRecord("600", 0),
		})
		require.True(t, ok)
		assert.True(t, stats.SuddenDropIndex.IsZero())
	})
}
