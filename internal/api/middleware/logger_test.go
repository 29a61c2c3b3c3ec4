package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/middleware"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/logging"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithOutput("info", "json", &buf)
	if err != nil {
		t.Fatalf("NewWithOutput() returned unexpected error: %v", err)
	}

	var sawRequestID bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawRequestID = logging.FromContext(r.Context()).Data["request_id"]
		w.WriteHeader(http.StatusTeapot)
	})

	handler := chimiddleware.RequestID(middleware.Logger(logger)(next))

	req := httptest.NewRequest(http.MethodGet, "/generate_report/ARKK", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !sawRequestID {
		t.Error("Expected request scoped logger in context")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["path"] != "/generate_report/ARKK" {
		t.Errorf("Expected path to be logged, got %v", entry["path"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("Expected status 418, got %v", entry["status"])
	}
	if entry["request_id"] == "" || entry["request_id"] == nil {
		t.Error("Expected request_id to be logged")
	}
	if entry["level"] != "warning" {
		t.Errorf("Expected warning level for 4xx, got %v", entry["level"])
	}
}
