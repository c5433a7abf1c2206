package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/zoraEmon/food-o-nation-sub001/internal/payment"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/donation"
	"github.com/zoraEmon/food-o-nation-sub001/pkg/id"
)

func produceBody(donor string) map[string]any {
	return map[string]any{
		"donor_id":       donor,
		"scheduled_date": time.Now().Add(72 * time.Hour).Format("2006-01-02"),
		"items": []map[string]any{
			{"name": "Rice", "category": "grains", "quantity": 25, "unit": "kg"},
			{"name": "Canned tuna", "category": "canned", "quantity": 48, "unit": "pcs"},
		},
	}
}

func monetaryBody(donor string) map[string]any {
	return map[string]any{
		"donor_id":          donor,
		"scheduled_date":    time.Now().Format("2006-01-02"),
		"monetary_amount":   500.00,
		"payment_method":    "PayPal",
		"payment_reference": "PAYID-TEST-0001",
	}
}

func TestCreateDonation_Produce(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/donations", produceBody(id.NewID32()), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var dto donation.DonationDTO
	decodeJSON(t, rec, &dto)
	if dto.Status != "SCHEDULED" || len(dto.Items) != 2 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if len(dto.QRCodeRef) != 32 || dto.QRCodeImageURL == "" {
		t.Fatalf("produce donation must carry a QR artifact: %+v", dto)
	}
}

func TestCreateDonation_RejectsBadDate(t *testing.T) {
	h := newHarness(t)
	body := produceBody(id.NewID32())
	body["scheduled_date"] = "next tuesday"

	rec := h.do(t, http.MethodPost, "/donations", body, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateDonation_EmptyIs400(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/donations", map[string]any{
		"donor_id":       id.NewID32(),
		"scheduled_date": time.Now().Format("2006-01-02"),
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}

func TestVerifyPayment_OutcomesAre200(t *testing.T) {
	h := newHarness(t)
	h.gateway.VerifyFn = func(ctx context.Context, method string, amount float64, reference string) payment.Result {
		now := time.Now().UTC()
		return payment.Result{Success: true, Provider: "paypal", TransactionID: reference, VerifiedAt: &now}
	}

	var dto donation.DonationDTO
	created := h.do(t, http.MethodPost, "/donations", monetaryBody(id.NewID32()), nil)
	decodeJSON(t, created, &dto)

	rec := h.do(t, http.MethodPost, "/donations/"+dto.DonationID+"/payment", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var out donation.PaymentOutcome
	decodeJSON(t, rec, &out)
	if !out.Result.Success || out.Status != "COMPLETED" {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	// A declined payment is still a 200 with the classified reason.
	h.gateway.VerifyFn = func(ctx context.Context, method string, amount float64, reference string) payment.Result {
		return payment.Result{Provider: "paypal", FailureReason: payment.ReasonAmountMismatch}
	}
	created = h.do(t, http.MethodPost, "/donations", monetaryBody(id.NewID32()), nil)
	decodeJSON(t, created, &dto)

	rec = h.do(t, http.MethodPost, "/donations/"+dto.DonationID+"/payment", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed verify = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	decodeJSON(t, rec, &out)
	if out.Result.Success || out.Result.FailureReason != payment.ReasonAmountMismatch {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Status != "SCHEDULED" {
		t.Fatalf("failed payment must not complete the donation: %+v", out)
	}
}

func TestVerifyPayment_UnknownDonationIs404(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/donations/nope/payment", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpdateItemStatus_VerdictLandsWithLastDecision(t *testing.T) {
	h := newHarness(t)

	var dto donation.DonationDTO
	created := h.do(t, http.MethodPost, "/donations", produceBody(id.NewID32()), nil)
	decodeJSON(t, created, &dto)
	if len(dto.Items) != 2 {
		t.Fatalf("want 2 items, got %+v", dto.Items)
	}

	// first decision: verdict still withheld
	rec := h.do(t, http.MethodPatch, "/items/"+dto.Items[0].ItemID+"/status",
		map[string]string{"status": "APPROVED"}, adminHdr())
	if rec.Code != http.StatusOK {
		t.Fatalf("first decision = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var dec donation.ItemDecision
	decodeJSON(t, rec, &dec)
	if dec.Item.Status != "APPROVED" || dec.Verdict != nil {
		t.Fatalf("verdict must wait for all items: %+v", dec)
	}

	// last decision: verdict resolves
	rec = h.do(t, http.MethodPatch, "/items/"+dto.Items[1].ItemID+"/status",
		map[string]string{"status": "APPROVED"}, adminHdr())
	if rec.Code != http.StatusOK {
		t.Fatalf("last decision = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	decodeJSON(t, rec, &dec)
	if dec.Verdict == nil || string(*dec.Verdict) != "COMPLETELY_APPROVED" {
		t.Fatalf("expected COMPLETELY_APPROVED verdict, got %+v", dec.Verdict)
	}
}

func TestUpdateItemStatus_Guards(t *testing.T) {
	h := newHarness(t)

	var dto donation.DonationDTO
	created := h.do(t, http.MethodPost, "/donations", produceBody(id.NewID32()), nil)
	decodeJSON(t, created, &dto)
	itemID := dto.Items[0].ItemID

	// non-terminal status
	rec := h.do(t, http.MethodPatch, "/items/"+itemID+"/status",
		map[string]string{"status": "PENDING"}, adminHdr())
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("PENDING decision = %d, want 422", rec.Code)
	}

	// missing admin header
	rec = h.do(t, http.MethodPatch, "/items/"+itemID+"/status",
		map[string]string{"status": "APPROVED"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no admin = %d, want 400", rec.Code)
	}

	// unknown item
	rec = h.do(t, http.MethodPatch, "/items/nope/status",
		map[string]string{"status": "APPROVED"}, adminHdr())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown item = %d, want 404; body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetDonation(t *testing.T) {
	h := newHarness(t)

	var dto donation.DonationDTO
	created := h.do(t, http.MethodPost, "/donations", produceBody(id.NewID32()), nil)
	decodeJSON(t, created, &dto)

	rec := h.do(t, http.MethodGet, "/donations/"+dto.DonationID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get = %d, want 200", rec.Code)
	}
	var got donation.DonationDTO
	decodeJSON(t, rec, &got)
	if got.DonationID != dto.DonationID || len(got.Items) != 2 {
		t.Fatalf("unexpected dto: %+v", got)
	}

	rec = h.do(t, http.MethodGet, "/donations/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown get = %d, want 404", rec.Code)
	}
}
