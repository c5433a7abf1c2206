// Package notifymock provides function-backed mocks for the external
// collaborators (mailer, donor ledger, activity log, image store).
// Fill in only the fields a test needs; unfilled ones succeed silently.
package notifymock

import "context"

type Mailer struct {
	SendFn func(ctx context.Context, to, subject, body string) error
	Sent   []string
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	m.Sent = append(m.Sent, subject)
	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, body)
	}
	return nil
}

type DonorLedger struct {
	AwardPointsFn      func(ctx context.Context, donorID string, points int) error
	AddDonationTotalFn func(ctx context.Context, donorID string, amount float64) error

	PointsAwarded map[string]int
	TotalsAdded   map[string]float64
}

func (m *DonorLedger) AwardPoints(ctx context.Context, donorID string, points int) error {
	if m.PointsAwarded == nil {
		m.PointsAwarded = map[string]int{}
	}
	m.PointsAwarded[donorID] += points
	if m.AwardPointsFn != nil {
		return m.AwardPointsFn(ctx, donorID, points)
	}
	return nil
}

func (m *DonorLedger) AddDonationTotal(ctx context.Context, donorID string, amount float64) error {
	if m.TotalsAdded == nil {
		m.TotalsAdded = map[string]float64{}
	}
	m.TotalsAdded[donorID] += amount
	if m.AddDonationTotalFn != nil {
		return m.AddDonationTotalFn(ctx, donorID, amount)
	}
	return nil
}

type ActivityLog struct {
	AppendFn func(ctx context.Context, userID, action, details string) error
	Actions  []string
}

func (m *ActivityLog) Append(ctx context.Context, userID, action, details string) error {
	m.Actions = append(m.Actions, action)
	if m.AppendFn != nil {
		return m.AppendFn(ctx, userID, action, details)
	}
	return nil
}

type ImageStore struct {
	PutFn func(ctx context.Context, name string, png []byte) (string, error)
	Puts  int
}

func (m *ImageStore) Put(ctx context.Context, name string, png []byte) (string, error) {
	m.Puts++
	if m.PutFn != nil {
		return m.PutFn(ctx, name, png)
	}
	return "/qr/" + name, nil
}
