package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

const providerStripe = "stripe"

type CardConfig struct {
	SecretKey string
	BaseURL   string // e.g. https://api.stripe.com
}

// CardVerifier covers the Stripe-class card methods (credit, debit,
// mastercard, visa, stripe). The amount check compares integer minor
// units: amount_received must be at least round(amount * 100).
type CardVerifier struct {
	cfg        CardConfig
	httpClient *http.Client
}

func NewCardVerifier(cfg CardConfig) *CardVerifier {
	return &CardVerifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type paymentIntent struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	AmountReceived int64  `json:"amount_received"`
	Currency       string `json:"currency"`
	LatestCharge   string `json:"latest_charge"`
}

func (v *CardVerifier) Verify(ctx context.Context, amount float64, reference string) Result {
	if v.cfg.SecretKey == "" {
		return failure(providerStripe, ReasonMissingCredentials)
	}

	pi, err := v.fetchIntent(ctx, reference)
	if err != nil {
		return failure(providerStripe, ReasonProviderError)
	}

	if pi.Status != "succeeded" {
		return failure(providerStripe, ReasonNotCompleted)
	}
	want := int64(math.Round(amount * 100))
	if pi.AmountReceived < want {
		return failure(providerStripe, ReasonAmountMismatch)
	}

	now := time.Now().UTC()
	return Result{
		Success:       true,
		Provider:      providerStripe,
		TransactionID: pi.ID,
		VerifiedAt:    &now,
	}
}

func (v *CardVerifier) fetchIntent(ctx context.Context, intentID string) (*paymentIntent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		v.cfg.BaseURL+"/v1/payment_intents/"+url.PathEscape(intentID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+v.cfg.SecretKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("stripe intent %s: status %d: %s", intentID, resp.StatusCode, body)
	}
	var pi paymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&pi); err != nil {
		return nil, err
	}
	return &pi, nil
}
