package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/easymed/billing/internal/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id, invoiceID int64, liability string, createdAt time.Time) entity.InvoiceItem {
	return entity.InvoiceItem{
		ID:               id,
		InvoiceID:        invoiceID,
		ItemID:           id * 100,
		ListedAmount:     dec(liability),
		PatientLiability: dec(liability),
		CreatedAt:        createdAt,
	}
}

func TestPlanAllocation_SingleItemExactAmount(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{item(1, 10, "1000", now)}

	plan := entity.PlanAllocation(items, nil, dec("1000"))

	require.Len(t, plan.Allocations, 1)
	require.Equal(t, int64(1), plan.Allocations[0].InvoiceItemID)
	require.True(t, plan.Allocations[0].AmountApplied.Equal(dec("1000")))
	require.True(t, plan.Remaining.IsZero())
	require.True(t, plan.PerInvoice[10].Equal(dec("1000")))
}

func TestPlanAllocation_OldestFirst(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(3, 10, "300", now.Add(2*time.Hour)),
		item(1, 10, "500", now),
		item(2, 20, "200", now.Add(time.Hour)),
	}

	plan := entity.PlanAllocation(items, nil, dec("600"))

	require.Len(t, plan.Allocations, 2)
	require.Equal(t, int64(1), plan.Allocations[0].InvoiceItemID)
	require.True(t, plan.Allocations[0].AmountApplied.Equal(dec("500")))
	require.Equal(t, int64(2), plan.Allocations[1].InvoiceItemID)
	require.True(t, plan.Allocations[1].AmountApplied.Equal(dec("100")))

	require.True(t, plan.Remaining.IsZero())
	require.True(t, plan.PerInvoice[10].Equal(dec("500")))
	require.True(t, plan.PerInvoice[20].Equal(dec("100")))
}

func TestPlanAllocation_IDBreaksCreatedAtTie(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(7, 10, "100", now),
		item(2, 10, "100", now),
	}

	plan := entity.PlanAllocation(items, nil, dec("100"))

	require.Len(t, plan.Allocations, 1)
	require.Equal(t, int64(2), plan.Allocations[0].InvoiceItemID)
}

func TestPlanAllocation_SkipsFullyPaidWithoutConsumingFunds(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(1, 10, "400", now),
		item(2, 10, "300", now.Add(time.Minute)),
	}

	applied := map[int64]decimal.Decimal{1: dec("400")}

	plan := entity.PlanAllocation(items, applied, dec("300"))

	require.Len(t, plan.Allocations, 1)
	require.Equal(t, int64(2), plan.Allocations[0].InvoiceItemID)
	require.True(t, plan.Allocations[0].AmountApplied.Equal(dec("300")))
	require.True(t, plan.Remaining.IsZero())
}

func TestPlanAllocation_PartiallyPaidItem(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{item(1, 10, "500", now)}
	applied := map[int64]decimal.Decimal{1: dec("350")}

	plan := entity.PlanAllocation(items, applied, dec("500"))

	require.Len(t, plan.Allocations, 1)
	require.True(t, plan.Allocations[0].AmountApplied.Equal(dec("150")))
	require.True(t, plan.Remaining.Equal(dec("350")))
}

func TestPlanAllocation_SurplusLeftUnapplied(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(1, 10, "100", now),
		item(2, 20, "200", now.Add(time.Minute)),
	}

	plan := entity.PlanAllocation(items, nil, dec("1000"))

	require.Len(t, plan.Allocations, 2)
	require.True(t, plan.Remaining.Equal(dec("700")))
}

func TestPlanAllocation_AllItemsPaid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(1, 10, "100", now),
		item(2, 10, "200", now),
	}

	applied := map[int64]decimal.Decimal{1: dec("100"), 2: dec("200")}

	plan := entity.PlanAllocation(items, applied, dec("500"))

	require.Empty(t, plan.Allocations)
	require.Empty(t, plan.PerInvoice)
	require.True(t, plan.Remaining.Equal(dec("500")))
}

func TestPlanAllocation_AmountExhaustedMidWalk(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(1, 10, "300", now),
		item(2, 10, "300", now.Add(time.Minute)),
		item(3, 20, "300", now.Add(2*time.Minute)),
	}

	plan := entity.PlanAllocation(items, nil, dec("450"))

	require.Len(t, plan.Allocations, 2)
	require.True(t, plan.Allocations[0].AmountApplied.Equal(dec("300")))
	require.True(t, plan.Allocations[1].AmountApplied.Equal(dec("150")))
	require.True(t, plan.Remaining.IsZero())

	_, ok := plan.PerInvoice[20]
	require.False(t, ok)
}

func TestPlanAllocation_ZeroLiabilityItem(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(1, 10, "0", now),
		item(2, 10, "250", now.Add(time.Minute)),
	}

	plan := entity.PlanAllocation(items, nil, dec("250"))

	require.Len(t, plan.Allocations, 1)
	require.Equal(t, int64(2), plan.Allocations[0].InvoiceItemID)
}

func TestPlanAllocation_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(2, 10, "100", now.Add(time.Minute)),
		item(1, 10, "100", now),
	}

	entity.PlanAllocation(items, nil, dec("200"))

	require.Equal(t, int64(2), items[0].ID)
	require.Equal(t, int64(1), items[1].ID)
}

func TestPlanAllocation_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Now()
	items := []entity.InvoiceItem{
		item(1, 10, "123.45", now),
		item(2, 20, "67.89", now.Add(time.Second)),
		item(3, 10, "10.00", now.Add(2*time.Second)),
	}

	first := entity.PlanAllocation(items, nil, dec("150.00"))
	second := entity.PlanAllocation(items, nil, dec("150.00"))

	require.Equal(t, len(first.Allocations), len(second.Allocations))

	for i := range first.Allocations {
		require.Equal(t, first.Allocations[i].InvoiceItemID, second.Allocations[i].InvoiceItemID)
		require.True(t, first.Allocations[i].AmountApplied.Equal(second.Allocations[i].AmountApplied))
	}
}
