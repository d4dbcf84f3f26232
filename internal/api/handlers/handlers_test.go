package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

func TestRespondOutcome(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrLeadTimeViolation, http.StatusUnprocessableEntity, "lead_time_violation"},
		{domain.ErrClosedDay, http.StatusUnprocessableEntity, "closed_day"},
		{domain.ErrOutOfHours, http.StatusUnprocessableEntity, "out_of_hours"},
		{domain.ErrSlotConflict, http.StatusConflict, "slot_conflict"},
		{domain.ErrCapacityExceeded, http.StatusConflict, "capacity_exceeded"},
		{domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{fmt.Errorf("%w: TryCreate: conn refused", domain.ErrStorageUnavailable), http.StatusServiceUnavailable, "storage_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()

			require.True(t, RespondOutcome(rec, tt.err))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status, StatusOf(tt.err))
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
			assert.NotContains(t, body.Message, "booking:")
		})
	}
}

func TestRespondOutcome_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()

	assert.False(t, RespondOutcome(rec, fmt.Errorf("boom")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(fmt.Errorf("boom")))
	assert.Zero(t, rec.Body.Len())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var ok payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &ok))
	assert.Equal(t, "x", ok.Name)

	for _, body := range []string{`{"name":"x","extra":1}`, `{"name":"x"}{}`, `not json`} {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		assert.Error(t, DecodeJSON(r, &p), body)
	}
}

func TestValidateStruct(t *testing.T) {
	type model struct {
		Kind  string `validate:"required,service_kind"`
		Date  string `validate:"required,datetime=2006-01-02"`
		Notes string `validate:"max=5"`
	}

	assert.NoError(t, ValidateStruct(model{Kind: "photo", Date: "2026-03-09"}))

	err := ValidateStruct(model{Kind: "drone", Date: "09/03/2026", Notes: "toolong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Kind(service_kind)")
	assert.Contains(t, err.Error(), "Date(datetime)")
	assert.Contains(t, err.Error(), "Notes(max)")
}
