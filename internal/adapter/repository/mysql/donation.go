package mysql

import (
	"context"

	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"

	"gorm.io/gorm"
)

type DonationRepository struct{ db *gorm.DB }

func NewDonationRepository(db *gorm.DB) *DonationRepository { return &DonationRepository{db: db} }

func (r *DonationRepository) Create(ctx context.Context, d *donationDomain.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DonationRepository) Save(ctx context.Context, d *donationDomain.Donation) error {
	return r.db.WithContext(ctx).Omit("Items").Save(d).Error
}

func (r *DonationRepository) GetByDonationID(ctx context.Context, donationID string) (*donationDomain.Donation, error) {
	var out donationDomain.Donation
	res := r.db.WithContext(ctx).Preload("Items").Where("donation_id = ?", donationID).First(&out)
	return &out, res.Error
}

func (r *DonationRepository) GetByDonationIDForUpdate(ctx context.Context, donationID string) (*donationDomain.Donation, error) {
	var out donationDomain.Donation
	res := forUpdate(r.db.WithContext(ctx)).Where("donation_id = ?", donationID).First(&out)
	return &out, res.Error
}

func (r *DonationRepository) GetByIDForUpdate(ctx context.Context, numericID uint64) (*donationDomain.Donation, error) {
	var out donationDomain.Donation
	res := forUpdate(r.db.WithContext(ctx)).Where("id = ?", numericID).First(&out)
	return &out, res.Error
}

func (r *DonationRepository) GetByQRCodeRef(ctx context.Context, ref string) (*donationDomain.Donation, error) {
	var out donationDomain.Donation
	res := r.db.WithContext(ctx).Where("qr_code_ref = ?", ref).First(&out)
	return &out, res.Error
}

type ItemRepository struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) *ItemRepository { return &ItemRepository{db: db} }

func (r *ItemRepository) Create(ctx context.Context, it *donationDomain.DonationItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *ItemRepository) Save(ctx context.Context, it *donationDomain.DonationItem) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *ItemRepository) GetByItemID(ctx context.Context, itemID string) (*donationDomain.DonationItem, error) {
	var out donationDomain.DonationItem
	res := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&out)
	return &out, res.Error
}

func (r *ItemRepository) GetByItemIDForUpdate(ctx context.Context, itemID string) (*donationDomain.DonationItem, error) {
	var out donationDomain.DonationItem
	res := forUpdate(r.db.WithContext(ctx)).Where("item_id = ?", itemID).First(&out)
	return &out, res.Error
}

func (r *ItemRepository) ListByDonationID(ctx context.Context, donationNumericID uint64) ([]donationDomain.DonationItem, error) {
	var out []donationDomain.DonationItem
	res := r.db.WithContext(ctx).Where("donation_id = ?", donationNumericID).Find(&out)
	return out, res.Error
}
