package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-booking/internal/usecase"

	"go.uber.org/zap"
)

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", usecase.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("reservation abc: %w", usecase.ErrNotFound), http.StatusNotFound},
		{"inactive room", usecase.ErrRoomInactive, http.StatusBadRequest},
		{"invalid date range", usecase.ErrInvalidDateRange, http.StatusBadRequest},
		{"guest count exceeded", usecase.ErrGuestCountExceeded, http.StatusBadRequest},
		{"capacity exceeded", usecase.ErrCapacityExceeded, http.StatusConflict},
		{"invalid transition", usecase.ErrInvalidTransition, http.StatusConflict},
		{"already terminal", usecase.ErrAlreadyTerminal, http.StatusConflict},
		{"unexpected error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test operation")

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Status  bool   `json:"status"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response body is not JSON: %v", err)
			}
			if body.Status {
				t.Error("body status = true, want false")
			}
			if body.Message == "" {
				t.Error("body message is empty")
			}
		})
	}
}
