package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	getAvailableSlots "github.com/avykhr/CareerDay-BookingService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	gotReq *getAvailableSlots.Request
	resp   *getAvailableSlots.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/events/{eventId}/companies/{companyId}/available-slots", h.Handle).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/offers/{offerId}/available-slots", h.HandleByOffer).Methods(http.MethodGet)
	return r
}

func TestHandleByOffer(t *testing.T) {
	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	offerID := int64(7)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Phase: domain.PhaseOne,
		Slots: []getAvailableSlots.Slot{
			{ID: 1, EventID: 1, CompanyID: 10, OfferID: &offerID, StartTime: start, EndTime: start.Add(30 * time.Minute), Capacity: 2, AvailableSpots: 1},
		},
	}}
	router := newRouter(NewHandler(uc, nopLogger{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/offers/7/available-slots?onlyFree=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.gotReq)
	require.NotNil(t, uc.gotReq.OfferID)
	assert.Equal(t, int64(7), *uc.gotReq.OfferID)
	assert.True(t, uc.gotReq.OnlyFree)

	var body SlotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Phase)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, int64(1), body.Slots[0].ID)
}

func TestHandleByOffer_InvalidOfferID(t *testing.T) {
	uc := &fakeUseCase{}
	router := newRouter(NewHandler(uc, nopLogger{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/offers/abc/available-slots", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandleByCompany_PassesPathParams(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Phase: domain.PhaseTwo}}
	router := newRouter(NewHandler(uc, nopLogger{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/1/companies/10/available-slots", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.EventID)
	assert.Equal(t, int64(10), uc.gotReq.CompanyID)
	assert.Nil(t, uc.gotReq.OfferID)
}
