package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils/response"
)

const (
	GuestCartHeader = "X-Guest-Cart-Id"
	GuestCartQuery  = "guestCartId"
)

// guestCartID reads the guest identity from the header first, then the query string.
func guestCartID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(GuestCartHeader)); id != "" {
		return id
	}

	return strings.TrimSpace(r.URL.Query().Get(GuestCartQuery))
}

// cartOwner resolves the cart identity for a request that may or may not be authenticated.
func cartOwner(r *http.Request) (models.CartOwner, *models.Principal) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if ok {
		userID := principal.UserID
		return models.CartOwner{UserID: &userID}, principal
	}

	return models.CartOwner{GuestID: guestCartID(r)}, nil
}

func requirePrincipal(w http.ResponseWriter, r *http.Request) (*models.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Warn("Unauthorized access attempt: missing principal")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return principal, true
}

// pageParams reads page/pageSize. Bad or missing values fall through as zero and
// are normalised by the service.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	return page, pageSize
}
