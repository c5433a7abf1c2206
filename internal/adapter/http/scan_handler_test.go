package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/checkin"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/stall"
	"github.com/zoraEmon/food-o-nation-sub001/pkg/id"
)

func (h *harness) reserve(t *testing.T, programID, donorID string) *stall.ReservationDTO {
	t.Helper()
	dto, err := h.stallUC.Reserve(context.Background(), stall.ReserveInput{
		ProgramID: programID,
		DonorID:   donorID,
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	return dto
}

func adminHdr() map[string]string {
	return map[string]string{"X-Admin-Id": strings.Repeat("e", 32)}
}

func TestScanApplication_CompletesAndIsIdempotent(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 2)
	dto := h.reserve(t, p.ProgramID, id.NewID32())

	body := map[string]string{"qr_code_value": dto.Application.QRCodeValue}

	rec := h.do(t, http.MethodPost, "/scans/application", body, adminHdr())
	if rec.Code != http.StatusOK {
		t.Fatalf("scan = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var res checkin.ScanResult
	decodeJSON(t, rec, &res)
	if res.ApplicationStatus != "COMPLETED" || res.ReservationStatus != "CHECKED_IN" {
		t.Fatalf("unexpected scan result: %+v", res)
	}
	if res.AlreadyCompleted {
		t.Fatalf("first scan must not be marked as a repeat")
	}

	// repeat scan replays the terminal state
	rec = h.do(t, http.MethodPost, "/scans/application", body, adminHdr())
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat scan = %d, want 200", rec.Code)
	}
	decodeJSON(t, rec, &res)
	if !res.AlreadyCompleted || res.ApplicationStatus != "COMPLETED" {
		t.Fatalf("repeat scan should be idempotent: %+v", res)
	}
}

func TestScanApplication_MissingAdminIs400(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/scans/application",
		map[string]string{"qr_code_value": strings.Repeat("a", 32)}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestScanApplication_UnknownTokenIs404(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/scans/application",
		map[string]string{"qr_code_value": strings.Repeat("a", 32)}, adminHdr())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body=%s", rec.Code, rec.Body.String())
	}
}

func TestScanApplication_MalformedTokenIs422(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/scans/application",
		map[string]string{"qr_code_value": "garbage"}, adminHdr())
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestScanReference_Reservation(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 2)
	dto := h.reserve(t, p.ProgramID, id.NewID32())

	rec := h.do(t, http.MethodPost, "/scans/reference",
		map[string]string{"qr_code_ref": dto.QRCodeRef}, adminHdr())
	if rec.Code != http.StatusOK {
		t.Fatalf("ref scan = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var res checkin.RefScanResult
	decodeJSON(t, rec, &res)
	if res.Kind != "stall-reservation" || res.Status != "CHECKED_IN" {
		t.Fatalf("unexpected ref scan result: %+v", res)
	}
}

func TestStats_CountsApplications(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 3)
	a := h.reserve(t, p.ProgramID, id.NewID32())
	h.reserve(t, p.ProgramID, id.NewID32())

	// complete one of the two
	scan := h.do(t, http.MethodPost, "/scans/application",
		map[string]string{"qr_code_value": a.Application.QRCodeValue}, adminHdr())
	if scan.Code != http.StatusOK {
		t.Fatalf("scan: %d", scan.Code)
	}

	rec := h.do(t, http.MethodGet, "/applications/stats", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats = %d, want 200", rec.Code)
	}
	var stats checkin.StatsDTO
	decodeJSON(t, rec, &stats)
	if stats.Pending != 1 || stats.Completed != 1 || stats.Total != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
