package donation

import "context"

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	Save(ctx context.Context, d *Donation) error
	GetByDonationID(ctx context.Context, donationID string) (*Donation, error)
	GetByDonationIDForUpdate(ctx context.Context, donationID string) (*Donation, error)
	// GetByIDForUpdate locks the donation row; item decisions serialize
	// behind it so aggregation never reads a stale snapshot.
	GetByIDForUpdate(ctx context.Context, numericID uint64) (*Donation, error)
	GetByQRCodeRef(ctx context.Context, ref string) (*Donation, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *DonationItem) error
	Save(ctx context.Context, it *DonationItem) error
	GetByItemID(ctx context.Context, itemID string) (*DonationItem, error)
	GetByItemIDForUpdate(ctx context.Context, itemID string) (*DonationItem, error)
	// ListByDonationID must observe all committed item writes plus the
	// caller's own in-transaction write; the aggregator depends on it.
	ListByDonationID(ctx context.Context, donationNumericID uint64) ([]DonationItem, error)
}
