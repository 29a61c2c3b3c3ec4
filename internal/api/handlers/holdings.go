package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/logging"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/service"
)

// HoldingHandler handles HTTP requests for uploading, listing, exporting and
// deleting holdings. It parses requests and delegates to the services.
type HoldingHandler struct {
	ingestService  *service.IngestService
	holdingService *service.HoldingService
	maxUploadBytes int64
}

// NewHoldingHandler creates a new HoldingHandler. Uploads larger than
// maxUploadBytes are rejected.
func NewHoldingHandler(
	ingestService *service.IngestService,
	holdingService *service.HoldingService,
	maxUploadBytes int64,
) *HoldingHandler {
	return &HoldingHandler{
		ingestService:  ingestService,
		holdingService: holdingService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Index handles GET requests for the landing view.
//
// Endpoint: GET / and GET /{update}
// Response: 200 OK with model.FundOverview; {update} becomes its message
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) Index(w http.ResponseWriter, r *http.Request) {
	overview, err := h.holdingService.Overview(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("failed to build overview")
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	overview.Message = request.ParseUpdateMessage(chi.URLParam(r, "update"))
	respondJSON(w, http.StatusOK, overview)
}

// Upload handles multipart uploads of holdings files.
//
// Endpoint: POST /input (form field "file")
// Response: 303 See Other to /{message} describing the outcome, on success
// and on failure alike
func (h *HoldingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		log.WithError(err).Warn("upload without a readable file")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			redirectWithMessage(w, r, fmt.Sprintf("Upload failed: file exceeds %d bytes", tooLarge.Limit))
			return
		}
		redirectWithMessage(w, r, "Upload failed: "+apperrors.ErrMissingFile.Error())
		return
	}
	defer file.Close()

	result, err := h.ingestService.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		redirectWithMessage(w, r, fmt.Sprintf("Upload of %s failed: %v", header.Filename, err))
		return
	}

	redirectWithMessage(w, r, result.Summary())
}

// Delete handles removal of one fund's holdings, or of everything.
//
// Endpoint: GET /delete_data and GET /delete_data/{fund}
// Response: 303 See Other to /{message}
func (h *HoldingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fund := request.ParseFundSelection(chi.URLParam(r, "fund"))

	deleted, err := h.holdingService.Delete(r.Context(), fund)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("failed to delete holdings")
		redirectWithMessage(w, r, fmt.Sprintf("Delete of %s failed", model.FundLabel(fund)))
		return
	}

	redirectWithMessage(w, r, fmt.Sprintf("Deleted %d holdings of %s", deleted, model.FundLabel(fund)))
}

// Export handles downloads of stored holdings in upload format.
//
// Endpoint: GET /export_data and GET /export_data/{fund}
// Response: 200 OK with a text/csv attachment
// Error: 404 Not Found if the selection is empty
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) Export(w http.ResponseWriter, r *http.Request) {
	fund := request.ParseFundSelection(chi.URLParam(r, "fund"))

	var buf bytes.Buffer
	if _, err := h.holdingService.Export(r.Context(), fund, &buf); err != nil {
		if errors.Is(err, apperrors.ErrNoData) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoData.Error(), model.FundLabel(fund))
			return
		}
		logging.FromContext(r.Context()).WithError(err).Error("failed to export holdings")
		response.RespondError(w, http.StatusInternalServerError, "failed to export holdings", err.Error())
		return
	}

	filename := "holdings_" + strings.ReplaceAll(model.FundLabel(fund), " ", "_") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("failed to write export")
	}
}
