package handlers

import (
	"net/http"
	"net/url"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/response"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// redirectWithMessage sends the client back to the landing page, carrying msg
// as the status message path segment.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, msg string) {
	response.Redirect(w, r, "/"+url.PathEscape(msg))
}
