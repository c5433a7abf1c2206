package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/checkin"
)

type ScanHandler struct{ uc *checkin.Usecase }

func NewScanHandler(uc *checkin.Usecase) *ScanHandler { return &ScanHandler{uc: uc} }

type scanApplicationReq struct {
	QRCodeValue string `json:"qr_code_value" validate:"required,hex32"`
	Notes       string `json:"notes"`
}

// ScanApplication resolves an application QR token and completes the
// check-in. Repeat scans of a completed pair come back with
// already_completed=true and leave no new audit row.
func (h *ScanHandler) ScanApplication(c echo.Context) error {
	adminID, ok := adminFromHeader(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Admin-Id"})
	}
	var req scanApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.ScanApplication(c.Request().Context(), checkin.ScanInput{
		QRCodeValue: req.QRCodeValue,
		AdminID:     adminID,
		Notes:       req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type scanReferenceReq struct {
	QRCodeRef string `json:"qr_code_ref" validate:"required,hex32"`
}

// ScanReference accepts a bare QR reference and dispatches on what it
// names: a stall reservation or a produce donation drop-off.
func (h *ScanHandler) ScanReference(c echo.Context) error {
	adminID, ok := adminFromHeader(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Admin-Id"})
	}
	var req scanReferenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.ScanByReference(c.Request().Context(), checkin.RefScanInput{
		QRCodeRef: req.QRCodeRef,
		AdminID:   adminID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ScanHandler) Stats(c echo.Context) error {
	stats, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
