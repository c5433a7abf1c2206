// Package payment verifies that a pledged monetary donation was actually
// paid, against exactly one external provider per payment method. Every
// upstream problem (missing credentials, non-2xx, network error) comes
// back as a classified failure so callers can always tell the donor why.
package payment

import (
	"context"
	"strings"
	"time"
)

// Failure reasons surfaced to callers. Wire-visible, case-sensitive.
const (
	ReasonAmountMismatch     = "AmountMismatch"
	ReasonNotCompleted       = "NotCompleted"
	ReasonReferenceTooShort  = "ReferenceTooShort"
	ReasonUnsupportedMethod  = "UnsupportedMethod"
	ReasonMissingCredentials = "MissingCredentials"
	ReasonProviderError      = "ProviderError"
)

type Result struct {
	Success       bool       `json:"success"`
	Provider      string     `json:"provider"`
	TransactionID string     `json:"transaction_id,omitempty"`
	ReceiptURL    string     `json:"receipt_url,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
}

func failure(provider, reason string) Result {
	return Result{Provider: provider, FailureReason: reason}
}

// Verifier confirms one payment against one provider. Implementations
// must never return an error for a verification that merely failed;
// errors are reserved for nothing — classification is the contract.
type Verifier interface {
	Verify(ctx context.Context, amount float64, reference string) Result
}

// Gateway dispatches by normalized method name to exactly one verifier.
type Gateway struct {
	paypal    Verifier
	card      Verifier
	reference Verifier
}

func NewGateway(paypal, card, reference Verifier) *Gateway {
	return &Gateway{paypal: paypal, card: card, reference: reference}
}

// normalizeMethod maps a user-facing payment method to a dispatch key.
// Pure; identical inputs always pick the identical verifier.
func normalizeMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "paypal":
		return "paypal"
	case "credit", "credit card", "debit", "debit card", "mastercard", "visa", "stripe":
		return "card"
	case "gcash", "bank transfer", "bank_transfer":
		return "reference"
	default:
		return ""
	}
}

func (g *Gateway) Verify(ctx context.Context, method string, amount float64, reference string) Result {
	switch normalizeMethod(method) {
	case "paypal":
		return g.paypal.Verify(ctx, amount, reference)
	case "card":
		return g.card.Verify(ctx, amount, reference)
	case "reference":
		return g.reference.Verify(ctx, amount, reference)
	default:
		return failure(method, ReasonUnsupportedMethod)
	}
}
