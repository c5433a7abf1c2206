package qr

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/zoraEmon/food-o-nation-sub001/pkg/id"
)

// ImageStore persists rendered QR images. File/image storage is an
// external collaborator; only this interface is part of the core.
type ImageStore interface {
	Put(ctx context.Context, name string, png []byte) (url string, err error)
}

const imageSize = 256

type Service struct {
	store ImageStore
}

func NewService(store ImageStore) *Service { return &Service{store: store} }

// Minted carries everything the caller persists onto the commitment row.
type Minted struct {
	Token    string
	ImageURL string
}

// Mint generates a fresh opaque token, renders the payload as a PNG and
// stores it. The token is immutable once persisted by the caller;
// re-minting for the same subject goes through Regenerate.
func (s *Service) Mint(ctx context.Context, p Payload) (*Minted, error) {
	return s.mint(ctx, p, id.NewID32())
}

// Regenerate mints a replacement token and image for a record that lost
// or never had one. The payload keeps the original subject linkage; the
// caller overwrites the stored token on the SAME row, never creating a
// new commitment.
func (s *Service) Regenerate(ctx context.Context, p Payload) (*Minted, error) {
	return s.mint(ctx, p, id.NewID32())
}

func (s *Service) mint(ctx context.Context, p Payload, token string) (*Minted, error) {
	body, err := p.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}
	png, err := qrcode.Encode(string(body), qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("render qr image: %w", err)
	}
	url, err := s.store.Put(ctx, token+".png", png)
	if err != nil {
		return nil, fmt.Errorf("store qr image: %w", err)
	}
	return &Minted{Token: token, ImageURL: url}, nil
}
