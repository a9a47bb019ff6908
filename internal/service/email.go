package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/utils"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, vendorName, orderNo string, daysOverdue int32, balanceDueCents int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Rental order %s is overdue", orderNo))

	body := fmt.Sprintf("Hello %s,\n\nRental order %s is %d day(s) past its expected return date and still has items outstanding.\n\nEstimated balance due as of today: %s.\n\nPlease arrange the return of the remaining items or contact the site to settle the order.\n\nBest regards,\nThe SiteLedger Team", vendorName, orderNo, daysOverdue, utils.FormatCents(balanceDueCents))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}

	return nil
}

func (s *emailService) SendSettlementReceipt(ctx context.Context, email, vendorName, orderNo string, rec *domain.SettlementRecord) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Settlement receipt for rental order %s", orderNo))

	body := fmt.Sprintf("Hello %s,\n\nRental order %s has been settled on %s.\n\nFinal amount: %s\nAdvances paid: %s\nBalance: %s",
		vendorName, orderNo, utils.FormatDate(rec.SettlementDate),
		utils.FormatCents(rec.FinalAmountCents),
		utils.FormatCents(rec.AdvancesPaidCents),
		utils.FormatCents(rec.BalanceCents))
	if rec.NegotiatedFinalCents != nil {
		body += fmt.Sprintf("\n\nThe final amount was agreed at settlement (computed total was %s).", utils.FormatCents(rec.Breakdown.GrossTotalCents))
	}
	body += "\n\nBest regards,\nThe SiteLedger Team"

	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send settlement receipt: %w", err)
	}

	return nil
}
