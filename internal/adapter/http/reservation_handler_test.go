package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/stall"
	"github.com/zoraEmon/food-o-nation-sub001/pkg/id"
)

func TestReserve_CreatesReservationWithQR(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 3)

	rec := h.do(t, http.MethodPost, "/programs/"+p.ProgramID+"/reservations",
		map[string]string{"donor_id": id.NewID32()}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}

	var dto stall.ReservationDTO
	decodeJSON(t, rec, &dto)
	if dto.SlotNumber != 1 || dto.Status != "APPROVED" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if len(dto.QRCodeRef) != 32 || dto.QRCodeURL == "" {
		t.Fatalf("reservation must carry a QR artifact: %+v", dto)
	}
	if dto.Application == nil || dto.Application.ApplicationStatus != "PENDING" {
		t.Fatalf("missing pending application: %+v", dto.Application)
	}
}

func TestReserve_RejectsBadDonorID(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 3)

	rec := h.do(t, http.MethodPost, "/programs/"+p.ProgramID+"/reservations",
		map[string]string{"donor_id": "not-hex"}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}

	var resp ErrorResponse
	decodeJSON(t, rec, &resp)
	if !containsFieldMsg(resp.Details, "DonorID", "32-char lowercase hex") {
		t.Fatalf("expected hex32 detail, got %+v", resp.Details)
	}
}

func TestReserve_UnknownProgramIs404(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/programs/nope/reservations",
		map[string]string{"donor_id": id.NewID32()}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body=%s", rec.Code, rec.Body.String())
	}
}

func TestReserve_FullProgramIs409(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 1)

	first := h.do(t, http.MethodPost, "/programs/"+p.ProgramID+"/reservations",
		map[string]string{"donor_id": id.NewID32()}, nil)
	if first.Code != http.StatusCreated {
		t.Fatalf("first reserve: %d", first.Code)
	}
	second := h.do(t, http.MethodPost, "/programs/"+p.ProgramID+"/reservations",
		map[string]string{"donor_id": id.NewID32()}, nil)
	if second.Code != http.StatusConflict {
		t.Fatalf("second reserve = %d, want 409; body=%s", second.Code, second.Body.String())
	}
}

func TestCancel_RequiresActorAndIsTerminal(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 1)
	donor := id.NewID32()

	var dto stall.ReservationDTO
	created := h.do(t, http.MethodPost, "/programs/"+p.ProgramID+"/reservations",
		map[string]string{"donor_id": donor}, nil)
	decodeJSON(t, created, &dto)

	// no actor header
	rec := h.do(t, http.MethodDelete, "/reservations/"+dto.ReservationID, nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("cancel without actor = %d, want 400", rec.Code)
	}

	hdr := map[string]string{"X-Actor-Id": donor}
	rec = h.do(t, http.MethodDelete, "/reservations/"+dto.ReservationID, nil, hdr)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var cancelled stall.ReservationDTO
	decodeJSON(t, rec, &cancelled)
	if cancelled.Status != "CANCELLED" || cancelled.CanceledAt == nil {
		t.Fatalf("unexpected cancel dto: %+v", cancelled)
	}

	// cancel twice -> conflict
	rec = h.do(t, http.MethodDelete, "/reservations/"+dto.ReservationID, nil, hdr)
	if rec.Code != http.StatusConflict {
		t.Fatalf("double cancel = %d, want 409", rec.Code)
	}

	// the freed slot is reservable again
	rec = h.do(t, http.MethodPost, "/programs/"+p.ProgramID+"/reservations",
		map[string]string{"donor_id": id.NewID32()}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("reserve after cancel = %d, want 201", rec.Code)
	}
}

func TestSetCapacity(t *testing.T) {
	h := newHarness(t)
	p := h.seedProgram(t, 2)
	admin := map[string]string{"X-Admin-Id": strings.Repeat("e", 32)}

	// missing admin header
	rec := h.do(t, http.MethodPut, "/programs/"+p.ProgramID+"/capacity",
		map[string]int{"stall_capacity": 5}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no admin = %d, want 400", rec.Code)
	}

	rec = h.do(t, http.MethodPut, "/programs/"+p.ProgramID+"/capacity",
		map[string]int{"stall_capacity": 5}, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("set capacity = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		StallCapacity int `json:"stall_capacity"`
	}
	decodeJSON(t, rec, &out)
	if out.StallCapacity != 5 {
		t.Fatalf("stall_capacity = %d, want 5", out.StallCapacity)
	}

	// shrinking below the reserved count is rejected
	h.do(t, http.MethodPost, "/programs/"+p.ProgramID+"/reservations",
		map[string]string{"donor_id": id.NewID32()}, nil)
	rec = h.do(t, http.MethodPut, "/programs/"+p.ProgramID+"/capacity",
		map[string]int{"stall_capacity": 0}, admin)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("shrink below reserved = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}

func TestSweep_ReturnsReport(t *testing.T) {
	h := newHarness(t)
	admin := map[string]string{"X-Admin-Id": strings.Repeat("e", 32)}

	rec := h.do(t, http.MethodPost, "/sweeps", nil, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("sweep = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var report stall.SweepReport
	decodeJSON(t, rec, &report)
	if report.CancelledReservations != 0 || report.ProgramsTouched != 0 {
		t.Fatalf("empty db sweep should be a no-op: %+v", report)
	}
}
