package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	mysqlRepo "github.com/zoraEmon/food-o-nation-sub001/internal/adapter/repository/mysql"
	programDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"
	"github.com/zoraEmon/food-o-nation-sub001/internal/payment"
	"github.com/zoraEmon/food-o-nation-sub001/internal/qr"
	"github.com/zoraEmon/food-o-nation-sub001/internal/testutil/notifymock"
	"github.com/zoraEmon/food-o-nation-sub001/internal/testutil/testdb"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/checkin"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/donation"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/stall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type gwMock struct {
	VerifyFn func(ctx context.Context, method string, amount float64, reference string) payment.Result
}

func (m *gwMock) Verify(ctx context.Context, method string, amount float64, reference string) payment.Result {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, method, amount, reference)
	}
	return payment.Result{Success: false, FailureReason: payment.ReasonProviderError}
}

// harness wires the full route table against an in-memory database, so
// handler tests exercise binding, validation and error mapping over the
// real usecases.
type harness struct {
	e          *echo.Echo
	db         *gorm.DB
	gateway    *gwMock
	stallUC    *stall.Usecase
	checkinUC  *checkin.Usecase
	donationUC *donation.Usecase
	programs   *mysqlRepo.ProgramRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testdb.Open(t)
	gw := &gwMock{}
	qrSvc := qr.NewService(&notifymock.ImageStore{})
	mailer := &notifymock.Mailer{}
	donors := &notifymock.DonorLedger{}
	activity := &notifymock.ActivityLog{}
	u := mysqlRepo.NewGormUoW(db)

	stallUC := stall.NewUsecase(u, qrSvc, mailer, activity)
	checkinUC := checkin.NewUsecase(u, donors, mailer, activity)
	donationUC := donation.NewUsecase(u, gw, qrSvc, donors, mailer, activity)

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()

	h := NewHandler()
	rh := NewReservationHandler(stallUC)
	sh := NewScanHandler(checkinUC)
	dh := NewDonationHandler(donationUC)

	e.GET("/health", h.Health)
	e.POST("/programs/:program_id/reservations", rh.Reserve)
	e.DELETE("/reservations/:reservation_id", rh.Cancel)
	e.PUT("/programs/:program_id/capacity", rh.SetCapacity)
	e.POST("/sweeps", rh.Sweep)
	e.POST("/scans/application", sh.ScanApplication)
	e.POST("/scans/reference", sh.ScanReference)
	e.GET("/applications/stats", sh.Stats)
	e.POST("/donations", dh.Create)
	e.POST("/donations/:donation_id/payment", dh.VerifyPayment)
	e.GET("/donations/:donation_id", dh.Get)
	e.PATCH("/items/:item_id/status", dh.UpdateItemStatus)

	return &harness{
		e:          e,
		db:         db,
		gateway:    gw,
		stallUC:    stallUC,
		checkinUC:  checkinUC,
		donationUC: donationUC,
		programs:   mysqlRepo.NewProgramRepository(db),
	}
}

func (h *harness) seedProgram(t *testing.T, capacity int) *programDomain.Program {
	t.Helper()
	p := &programDomain.Program{
		ProgramID:       uuid.NewString(),
		Name:            "Community Feeding Day",
		Date:            time.Now().Add(72 * time.Hour),
		StallCapacity:   capacity,
		MaxParticipants: 50,
	}
	if err := h.programs.Create(context.Background(), p); err != nil {
		t.Fatalf("seed program: %v", err)
	}
	return p
}

func (h *harness) do(t *testing.T, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
}
