package get_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CaptureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-CaptureBooking/pkg/logger"
)

type fakeService struct {
	getByIDFn func(ctx context.Context, id uuid.UUID, ownerID string) (*models.AppointmentResponse, error)
}

func (f *fakeService) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.AppointmentResponse, error) {
	return f.getByIDFn(ctx, id, ownerID)
}

func serve(svc *fakeService, id, owner string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, "/appointments/"+id, nil)
	if owner != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), owner))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()
	svc := &fakeService{getByIDFn: func(ctx context.Context, got uuid.UUID, ownerID string) (*models.AppointmentResponse, error) {
		if got != id || ownerID != "user-1" {
			return nil, domain.ErrNotFound
		}
		return &models.AppointmentResponse{ID: id, OwnerID: ownerID, Date: "2026-03-09", Time: "10:00", Status: "scheduled"}, nil
	}}

	rec := serve(svc, id.String(), "user-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"time":"10:00"`)

	rec = serve(svc, id.String(), "user-2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(svc, "not-a-uuid", "user-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(svc, id.String(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &fakeService{getByIDFn: func(ctx context.Context, id uuid.UUID, ownerID string) (*models.AppointmentResponse, error) {
			return nil, tt.err
		}}

		rec := serve(svc, uuid.NewString(), "user-1")
		assert.Equal(t, tt.status, rec.Code)
	}
}
