package jobs

import (
	"context"
	"time"

	"siteledger-backend/internal/logger"
	"siteledger-backend/internal/utils"
)

// SendOverdueReminders emails each vendor whose active order is past its
// expected return date with items still out. Overdue is computed from
// the order's dates at run time; the job never changes order status.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		ids, err := jr.store.ListActiveOverdueCandidates(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue candidates", "error", err)
			return
		}

		sent := 0
		for _, id := range ids {
			order, breakdown, err := jr.services.Orders.GetOrder(ctx, id, time.Time{})
			if err != nil {
				logger.Error("Failed to load order for reminder", "order_id", id, "error", err)
				continue
			}
			if !breakdown.IsOverdue {
				continue
			}

			vendor, err := jr.store.VendorRepository.GetByID(ctx, order.VendorID)
			if err != nil {
				logger.Error("Failed to load vendor for reminder", "order_id", id, "vendor_id", order.VendorID, "error", err)
				continue
			}
			if vendor.Email == "" {
				logger.Debug("Vendor has no email, skipping reminder", "order_no", order.OrderNo, "vendor_id", vendor.ID)
				continue
			}

			if err := jr.services.Email.SendOverdueReminder(ctx, vendor.Email, vendor.Name, order.OrderNo,
				breakdown.DaysOverdue, breakdown.BalanceDueCents); err != nil {
				logger.Error("Failed to send overdue reminder", "order_no", order.OrderNo, "error", err)
				continue
			}
			sent++
			logger.Debug("Sent overdue reminder",
				"order_no", order.OrderNo,
				"vendor_id", vendor.ID,
				"days_overdue", breakdown.DaysOverdue,
				"balance_due", utils.FormatCents(breakdown.BalanceDueCents))
		}

		logger.Info("Sent overdue reminders", "candidates", len(ids), "sent", sent)
	})
}
