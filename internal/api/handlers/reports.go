package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/request"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/logging"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/service"
)

// ReportHandler serves chart data.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler with the provided service dependency.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Report handles GET requests for a fund report.
//
// Endpoint: GET /generate_report and GET /generate_report/{fund}
// Response: 200 OK with model.ChartBundle
// Error: 404 Not Found if the selection holds no records
// Error: 500 Internal Server Error if retrieval fails
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	fund := request.ParseFundSelection(chi.URLParam(r, "fund"))

	bundle, err := h.reportService.Report(r.Context(), fund)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoData) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoData.Error(), model.FundLabel(fund))
			return
		}
		logging.FromContext(r.Context()).WithError(err).Error("failed to build report")
		response.RespondError(w, http.StatusInternalServerError, "failed to build report", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, bundle)
}
