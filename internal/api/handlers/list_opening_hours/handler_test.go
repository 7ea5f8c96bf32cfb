package list_opening_hours

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

type fakeShop struct {
	err error
}

func (f fakeShop) ListOpeningHours(context.Context) (*models.OpeningHoursResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.FromDomainWeek([]*domain.OpeningWindow{
		{Weekday: 1, StartTime: "09:00", EndTime: "18:00"},
	}), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeShop{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/opening-hours", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.OpeningHoursResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Days, 7)
	assert.False(t, body.Days[0].IsOpen)
	assert.True(t, body.Days[1].IsOpen)
	assert.Equal(t, "18:00", *body.Days[1].End)
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeShop{err: errors.New("boom")}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/opening-hours", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
