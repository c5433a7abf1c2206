package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/stall"
)

type ReservationHandler struct{ uc *stall.Usecase }

func NewReservationHandler(uc *stall.Usecase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

type reserveReq struct {
	DonorID string `json:"donor_id" validate:"required,hex32"`
}

// Reserve claims the lowest free stall slot for the donor and hands back
// the reservation together with its pending application and QR code.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	programID := c.Param("program_id")
	if programID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing program_id path param"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Reserve(c.Request().Context(), stall.ReserveInput{
		ProgramID: programID,
		DonorID:   req.DonorID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	reservationID := c.Param("reservation_id")
	if reservationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing reservation_id path param"})
	}
	actorID := strings.TrimSpace(c.Request().Header.Get("X-Actor-Id"))
	if actorID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Actor-Id"})
	}

	dto, err := h.uc.Cancel(c.Request().Context(), reservationID, actorID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type setCapacityReq struct {
	StallCapacity int `json:"stall_capacity" validate:"gte=0"`
}

func (h *ReservationHandler) SetCapacity(c echo.Context) error {
	programID := c.Param("program_id")
	if programID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing program_id path param"})
	}
	if _, ok := adminFromHeader(c); !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Admin-Id"})
	}
	var req setCapacityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	p, err := h.uc.SetCapacity(c.Request().Context(), programID, req.StallCapacity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"program_id":      p.ProgramID,
		"stall_capacity":  p.StallCapacity,
		"reserved_stalls": p.ReservedStalls,
	})
}

// Sweep runs the expiry pass on demand. The cron schedule calls the same
// usecase; this endpoint exists for operators.
func (h *ReservationHandler) Sweep(c echo.Context) error {
	if _, ok := adminFromHeader(c); !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Admin-Id"})
	}
	report, err := h.uc.SweepExpired(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
