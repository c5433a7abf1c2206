// Package notify holds the collaborator interfaces the commitment core
// invokes but does not implement: email delivery, the donor
// points/total ledger and the activity log. Internals live elsewhere;
// the default implementations here only log.
package notify

import (
	"context"
	"log"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type DonorLedger interface {
	AwardPoints(ctx context.Context, donorID string, points int) error
	AddDonationTotal(ctx context.Context, donorID string, amount float64) error
}

type ActivityLog interface {
	Append(ctx context.Context, userID, action, details string) error
}

type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("mail: to=%s subject=%q", to, subject)
	return nil
}

type LogDonorLedger struct{}

func (LogDonorLedger) AwardPoints(_ context.Context, donorID string, points int) error {
	log.Printf("donor ledger: +%d points for %s", points, donorID)
	return nil
}

func (LogDonorLedger) AddDonationTotal(_ context.Context, donorID string, amount float64) error {
	log.Printf("donor ledger: +%.2f total for %s", amount, donorID)
	return nil
}

type LogActivityLog struct{}

func (LogActivityLog) Append(_ context.Context, userID, action, details string) error {
	log.Printf("activity: user=%s action=%s details=%s", userID, action, details)
	return nil
}
