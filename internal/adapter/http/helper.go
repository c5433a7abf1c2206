package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
	programDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"
	stallDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/stall"
)

// writeDomainError maps a usecase error onto the HTTP surface:
//
//	not found                      -> 404
//	duplicate / capacity / cancel  -> 409
//	invalid transition             -> 422
//	validation                     -> 400
//
// Anything unrecognized is a 500 with a generic body so internals never
// leak to clients.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, programDomain.ErrNotFound),
		errors.Is(err, stallDomain.ErrNotFound),
		errors.Is(err, donationDomain.ErrNotFound),
		errors.Is(err, donationDomain.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, stallDomain.ErrDuplicateReservation),
		errors.Is(err, programDomain.ErrCapacityExceeded),
		errors.Is(err, stallDomain.ErrAlreadyCancelled),
		errors.Is(err, donationDomain.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, stallDomain.ErrInvalidTransition),
		errors.Is(err, donationDomain.ErrInvalidTransition):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, programDomain.ErrValidation),
		errors.Is(err, donationDomain.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// adminFromHeader pulls the acting admin out of X-Admin-Id. Scan and
// decision endpoints refuse to run without one.
func adminFromHeader(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get("X-Admin-Id"))
	return id, id != ""
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
