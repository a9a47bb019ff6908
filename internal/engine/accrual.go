package engine

import (
	"time"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/utils"
)

// AccrueLine computes the cost owed for one line as of a date by
// partitioning the quantity into cohorts. Each return event closes a
// cohort on its return date; whatever is still outstanding forms a
// final cohort ending at asOf. A cohort of q units open from startDate
// to endDate accrues q * inclusive_day_count * daily rate.
//
// The return processor rejects return dates before the order start, so
// every cohort window here is at least one day.
func AccrueLine(line *domain.RentalOrderLine, startDate, asOf time.Time) domain.LineAccrual {
	acc := domain.LineAccrual{
		LineID:              line.ID,
		RentalItemID:        line.RentalItemID,
		ItemName:            line.ItemName,
		Quantity:            line.Quantity,
		QuantityReturned:    line.QuantityReturned,
		QuantityOutstanding: line.QuantityOutstanding(),
	}

	var subtotal int64
	for i := range line.Returns {
		ev := &line.Returns[i]
		days := utils.InclusiveDayCount(startDate, ev.ReturnDate)
		subtotal += int64(ev.Quantity) * int64(days) * line.DailyRateCents
	}

	if outstanding := line.QuantityOutstanding(); outstanding > 0 {
		days := utils.InclusiveDayCount(startDate, asOf)
		acc.DaysRented = days
		subtotal += int64(outstanding) * int64(days) * line.DailyRateCents
	}

	acc.SubtotalCents = subtotal
	return acc
}
