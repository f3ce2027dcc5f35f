package jobs

import (
	"context"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/notify"
)

// SendOverdueReminders emails every user holding an open rental past its
// planned return date. Rentals without a known email are only logged.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.rentals.ListOverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		sent, skipped, failed := 0, 0, 0
		for _, rd := range overdue {
			logger.Debug("Overdue rental",
				"rental_id", rd.ID,
				"user_id", rd.UserID,
				"car_id", rd.CarID,
				"return_date", rd.ReturnDate)

			if rd.UserEmail == nil || *rd.UserEmail == "" {
				skipped++
				continue
			}
			if err := jr.notifier.SendOverdueReminder(ctx, reminderFor(rd)); err != nil {
				logger.Error("Failed to send overdue reminder", "rental_id", rd.ID, "error", err)
				failed++
				continue
			}
			sent++
		}

		logger.Info("Overdue reminders processed",
			"overdue", len(overdue), "sent", sent, "skipped", skipped, "failed", failed)
	})
}

func reminderFor(rd domain.RentalDetails) notify.OverdueReminder {
	return notify.OverdueReminder{
		RentalID:   rd.ID,
		Email:      *rd.UserEmail,
		UserName:   deref(rd.UserName),
		CarBrand:   deref(rd.CarBrand),
		CarModel:   deref(rd.CarModel),
		ReturnDate: rd.ReturnDate,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
