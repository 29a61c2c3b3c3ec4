// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/validation"
)

// ValidateFundMiddleware validates the fund URL parameter.
// The "All funds" selection always passes; any other fund must fit the fund
// column. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.With(middleware.ValidateFundMiddleware).Get("/generate_report/{fund}", handler.Report)
func ValidateFundMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fund := request.ParseFundSelection(chi.URLParam(r, "fund"))

		if !model.IsAllFunds(fund) {
			if err := validation.ValidateFundCode(fund); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid fund", err.Error())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
