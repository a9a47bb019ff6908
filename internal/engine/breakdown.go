package engine

import (
	"sort"
	"time"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/utils"
)

// ComputeBreakdown derives the full cost picture of an order as of a
// date. It is a pure function of the snapshot: calling it twice with
// the same inputs yields the same output, and it never mutates the
// order. All arithmetic stays in whole cents; the discount percentage
// is the single fractional step and is rounded exactly once.
func ComputeBreakdown(order *domain.RentalOrder, asOf time.Time) domain.CostBreakdown {
	bd := domain.CostBreakdown{
		AsOf:            utils.DateOnly(asOf),
		DiscountPercent: order.DiscountPercent,
	}

	lines := make([]domain.LineAccrual, 0, len(order.Lines))
	idx := make([]int, len(order.Lines))
	for i := range idx {
		idx[i] = i
	}
	// Cost is order-insignificant, but the breakdown lists lines in
	// their original insertion order for display.
	sort.SliceStable(idx, func(a, b int) bool {
		return order.Lines[idx[a]].Position < order.Lines[idx[b]].Position
	})

	var damages int64
	for _, i := range idx {
		line := &order.Lines[i]
		acc := AccrueLine(line, order.StartDate, asOf)
		bd.ItemsSubtotalCents += acc.SubtotalCents
		lines = append(lines, acc)
		for j := range line.Returns {
			damages += line.Returns[j].DamageCostCents
		}
	}
	bd.Lines = lines

	bd.DiscountCents = utils.PercentOf(bd.ItemsSubtotalCents, order.DiscountPercent)
	bd.SubtotalAfterDiscountCents = bd.ItemsSubtotalCents - bd.DiscountCents
	bd.TransportCents = order.TransportTotalCents()
	bd.DamagesCents = damages
	bd.GrossTotalCents = bd.SubtotalAfterDiscountCents + bd.TransportCents + bd.DamagesCents

	bd.DaysElapsed = utils.InclusiveDayCount(order.StartDate, asOf)

	if order.ExpectedReturnDate != nil && order.HasOutstanding() {
		if over := utils.DaysBetween(*order.ExpectedReturnDate, asOf); over > 0 {
			bd.IsOverdue = true
			bd.DaysOverdue = over
		}
	}

	bd.AdvancesPaidCents = TotalAdvancePaid(order)
	bd.BalanceDueCents = bd.GrossTotalCents - bd.AdvancesPaidCents
	return bd
}
