package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/donation"
)

type DonationHandler struct{ uc *donation.Usecase }

func NewDonationHandler(uc *donation.Usecase) *DonationHandler {
	return &DonationHandler{uc: uc}
}

type donationItemReq struct {
	Name     string  `json:"name"      validate:"required"`
	Category string  `json:"category"  validate:"required"`
	Quantity float64 `json:"quantity"  validate:"gt=0"`
	Unit     string  `json:"unit"      validate:"required"`
	ImageURL string  `json:"image_url" validate:"omitempty,url"`
}

type createDonationReq struct {
	DonorID          string `json:"donor_id"           validate:"omitempty,hex32"`
	DonationCenterID string `json:"donation_center_id" validate:"omitempty,hex32"`
	// Canonical date `YYYY-MM-DD`, same shape the schema stores.
	ScheduledDate    string            `json:"scheduled_date"     validate:"required,datetime=2006-01-02"`
	MonetaryAmount   float64           `json:"monetary_amount"    validate:"omitempty,gt=0,dec2"`
	PaymentMethod    string            `json:"payment_method"`
	PaymentReference string            `json:"payment_reference"`
	Items            []donationItemReq `json:"items"              validate:"omitempty,min=1,dive"`
}

func (h *DonationHandler) Create(c echo.Context) error {
	var req createDonationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	scheduled, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid scheduled_date"})
	}

	in := donation.CreateInput{
		DonorID:          req.DonorID,
		DonationCenterID: req.DonationCenterID,
		ScheduledDate:    scheduled,
		MonetaryAmount:   req.MonetaryAmount,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, donation.ItemInput{
			Name:     it.Name,
			Category: it.Category,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			ImageURL: it.ImageURL,
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// VerifyPayment runs the gateway against the recorded payment details.
// A declined or mismatched payment is a normal outcome, not an HTTP
// error: the response carries success=false and the classified reason.
func (h *DonationHandler) VerifyPayment(c echo.Context) error {
	donationID := c.Param("donation_id")
	if donationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing donation_id path param"})
	}
	out, err := h.uc.VerifyPayment(c.Request().Context(), donationID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateItemStatusReq struct {
	Status string `json:"status" validate:"required,decision"`
}

func (h *DonationHandler) UpdateItemStatus(c echo.Context) error {
	itemID := c.Param("item_id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing item_id path param"})
	}
	adminID, ok := adminFromHeader(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Admin-Id"})
	}
	var req updateItemStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	decision, err := h.uc.UpdateItemStatus(c.Request().Context(), donation.UpdateItemInput{
		ItemID:  itemID,
		Status:  req.Status,
		AdminID: adminID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, decision)
}

func (h *DonationHandler) Get(c echo.Context) error {
	donationID := c.Param("donation_id")
	dto, err := h.uc.Get(c.Request().Context(), donationID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
