package list_services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
	"github.com/m04kA/SMC-RepairBookingService/internal/service/shop/models"
)

type fakeService struct {
	services []*domain.Service
	err      error
}

func (f *fakeService) ListServices(context.Context) (*models.ServiceListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.FromDomainServiceList(f.services), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	svc := &fakeService{services: []*domain.Service{
		{ID: 1, Name: "Замена масла", DurationMinutes: 30, Price: 1500},
		{ID: 2, Name: "Диагностика подвески", DurationMinutes: 90, Price: 3000},
	}}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ServiceListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "Замена масла", resp.Services[0].Name)
	assert.Equal(t, 90, resp.Services[1].DurationMinutes)
}

func TestHandle_Empty(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHandler(&fakeService{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"services":[]}`, rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHandler(&fakeService{err: errors.New("db down")}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
