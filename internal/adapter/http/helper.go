package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	listingDomain "realty-escrow/internal/domain/listing"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// callerAddr pulls the authenticated principal from Ax-Caller-Addr. The
// idempotency middleware has already validated it on mutating routes, but
// handlers re-check so they stay safe to mount without it.
func callerAddr(c echo.Context) (string, bool) {
	addr := strings.ToLower(strings.TrimSpace(c.Request().Header.Get("Ax-Caller-Addr")))
	if !reAddr40.MatchString(addr) {
		return "", false
	}
	return addr, true
}

func assetIDParam(c echo.Context) (uint64, bool) {
	raw := c.Param("asset_id")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// statusFor maps domain errors to HTTP codes. Unrecognized errors are 500s.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, listingDomain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, listingDomain.ErrNotListed):
		return http.StatusNotFound
	case errors.Is(err, listingDomain.ErrAlreadyListed):
		return http.StatusConflict
	case errors.Is(err, listingDomain.ErrInvalidPrice),
		errors.Is(err, listingDomain.ErrInvalidDepositAmount):
		return http.StatusUnprocessableEntity
	default:
		if _, ok := listingDomain.BlockedReason(err); ok {
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	}
}
