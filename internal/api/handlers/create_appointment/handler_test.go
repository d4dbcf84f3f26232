package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CaptureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CaptureBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CaptureBooking/pkg/logger"
)

type fakeUseCase struct {
	got       *createBooking.Request
	executeFn func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.executeFn(ctx, req)
}

func created(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return &createBooking.Response{
		ID:          uuid.MustParse("0195a3c4-1111-7000-8000-000000000001"),
		OwnerID:     req.OwnerID,
		Date:        req.Date,
		Time:        req.Time,
		ServiceKind: req.ServiceKind,
		Status:      domain.StatusScheduled,
		CreatedAt:   time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC),
	}, nil
}

func failing(err error) func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return nil, err
	}
}

func serve(uc *fakeUseCase, owner, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if owner != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), owner))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{executeFn: created}

	rec := serve(uc, "user-1", `{"date":"2026-03-09","time":"10:00","serviceKind":"photo","notes":"fachada"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.OwnerID)
	assert.Equal(t, "2026-03-09", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, "photo", resp.ServiceKind)
	assert.Equal(t, "scheduled", resp.Status)

	require.NotNil(t, uc.got)
	assert.Equal(t, "user-1", uc.got.OwnerID)
	require.NotNil(t, uc.got.Notes)
	assert.Equal(t, "fachada", *uc.got.Notes)
}

func TestHandle_Outcomes(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrClosedDay, http.StatusUnprocessableEntity, "closed_day"},
		{domain.ErrLeadTimeViolation, http.StatusUnprocessableEntity, "lead_time_violation"},
		{domain.ErrOutOfHours, http.StatusUnprocessableEntity, "out_of_hours"},
		{domain.ErrSlotConflict, http.StatusConflict, "slot_conflict"},
		{domain.ErrCapacityExceeded, http.StatusConflict, "capacity_exceeded"},
		{domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
		{createBooking.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidInput},
		{errors.New("unexpected"), http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := serve(&fakeUseCase{executeFn: failing(tt.err)}, "user-1",
				`{"date":"2026-03-09","time":"10:00","serviceKind":"video"}`)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `date=2026-03-09`},
		{name: "unknown field", body: `{"date":"2026-03-09","time":"10:00","serviceKind":"video","price":1}`},
		{name: "missing date", body: `{"time":"10:00","serviceKind":"video"}`},
		{name: "bad date", body: `{"date":"09/03/2026","time":"10:00","serviceKind":"video"}`},
		{name: "unknown kind", body: `{"date":"2026-03-09","time":"10:00","serviceKind":"drone"}`},
		{name: "missing time", body: `{"date":"2026-03-09","serviceKind":"video"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{executeFn: created}

			rec := serve(uc, "user-1", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UnparseableTimeReachesUseCase(t *testing.T) {
	uc := &fakeUseCase{executeFn: failing(domain.ErrOutOfHours)}

	rec := serve(uc, "user-1", `{"date":"2026-03-09","time":"ten","serviceKind":"video"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "ten", uc.got.Time.String())
}

func TestHandle_MissingUser(t *testing.T) {
	uc := &fakeUseCase{executeFn: created}

	rec := serve(uc, "", `{"date":"2026-03-09","time":"10:00","serviceKind":"video"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
