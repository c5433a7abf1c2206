package payment

import (
	"context"
	"strings"
	"time"
)

const providerReference = "reference"

const minReferenceLen = 5

// ReferenceVerifier covers the reference-only methods (gcash, bank
// transfer): no upstream API exists, so the only check is that the
// presented reference is long enough to be a real receipt number.
// Reconciliation happens later, out of band.
type ReferenceVerifier struct{}

func NewReferenceVerifier() *ReferenceVerifier { return &ReferenceVerifier{} }

func (v *ReferenceVerifier) Verify(_ context.Context, _ float64, reference string) Result {
	if len(strings.TrimSpace(reference)) < minReferenceLen {
		return failure(providerReference, ReasonReferenceTooShort)
	}
	now := time.Now().UTC()
	return Result{
		Success:       true,
		Provider:      providerReference,
		TransactionID: strings.TrimSpace(reference),
		VerifiedAt:    &now,
	}
}
