package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogarridot/transfersol-backend/internal/models"
	"github.com/ogarridot/transfersol-backend/internal/services"
	"github.com/ogarridot/transfersol-backend/internal/store"
)

type stubBookingStore struct {
	bookings map[string]*models.Booking
}

func (s *stubBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	s.bookings[booking.ID] = booking
	return nil
}

func (s *stubBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *stubBookingStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	updated := *b
	if status, ok := fields["status"]; ok {
		updated.Status = status.(models.BookingStatus)
	}
	if destination, ok := fields["destination"]; ok {
		updated.Destination = destination.(string)
	}
	s.bookings[id] = &updated
	copied := updated
	return &copied, nil
}

type stubMailer struct {
	sent int
	err  error
}

func (m *stubMailer) Send(to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

type noopPush struct{}

func (noopPush) Send(services.PushPayload) {}

type noopHub struct{}

func (noopHub) Emit(string, interface{}) {}

func setupBookingRouter(t *testing.T, bookings ...*models.Booking) (*gin.Engine, *stubBookingStore, *stubMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := &stubBookingStore{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		st.bookings[b.ID] = b
	}
	mail := &stubMailer{}
	engine := services.NewBookingService(st, mail, noopPush{}, noopHub{}, services.NewTranslationService("en"))

	r := gin.New()
	r.POST("/api/bookings", CreateBooking(engine))
	r.POST("/api/bookings/:id/confirm", ConfirmBooking(engine))
	r.POST("/api/bookings/:id/cancel", CancelBooking(engine))
	r.PUT("/api/bookings/:id", UpdateBooking(engine))
	r.POST("/api/bookings/:id/request-info", RequestInfo(engine))
	return r, st, mail
}

func performJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func storedBooking(id string) *models.Booking {
	return &models.Booking{
		ID:          id,
		Status:      models.BookingStatusPending,
		Name:        "Alice Smith",
		Phone:       "+34600111222",
		Email:       "alice@example.com",
		People:      2,
		ArrivalDate: "2026-09-01",
		ArrivalTime: "14:30",
		Destination: "Marbella",
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	r, st, _ := setupBookingRouter(t)

	w := performJSON(r, http.MethodPost, "/api/bookings", gin.H{
		"name":         "Alice Smith",
		"phone":        "+34600111222",
		"people":       2,
		"arrival_date": "2026-09-01",
		"arrival_time": "14:30",
		"destination":  "Marbella",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Len(t, created.ID, 8)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Contains(t, st.bookings, created.ID)
}

func TestCreateBookingValidation(t *testing.T) {
	r, st, _ := setupBookingRouter(t)

	cases := []struct {
		name    string
		payload gin.H
	}{
		{"missing name", gin.H{"phone": "+34600111222", "people": 2, "arrival_date": "2026-09-01", "arrival_time": "14:30", "destination": "Marbella"}},
		{"name too short", gin.H{"name": "Al", "phone": "+34600111222", "people": 2, "arrival_date": "2026-09-01", "arrival_time": "14:30", "destination": "Marbella"}},
		{"zero people", gin.H{"name": "Alice Smith", "phone": "+34600111222", "people": 0, "arrival_date": "2026-09-01", "arrival_time": "14:30", "destination": "Marbella"}},
		{"bad email", gin.H{"name": "Alice Smith", "phone": "+34600111222", "email": "not-an-email", "people": 2, "arrival_date": "2026-09-01", "arrival_time": "14:30", "destination": "Marbella"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performJSON(r, http.MethodPost, "/api/bookings", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, st.bookings)
}

func TestConfirmBookingEndpoint(t *testing.T) {
	r, st, mail := setupBookingRouter(t, storedBooking("AbCd1234"))

	w := performJSON(r, http.MethodPost, "/api/bookings/AbCd1234/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking confirmed and email sent")
	assert.Equal(t, models.BookingStatusConfirmed, st.bookings["AbCd1234"].Status)
	assert.Equal(t, 1, mail.sent)
}

func TestConfirmBookingNotFound(t *testing.T) {
	r, _, _ := setupBookingRouter(t)

	w := performJSON(r, http.MethodPost, "/api/bookings/missing1/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmBookingEmailFailureIsPartialSuccess(t *testing.T) {
	r, st, mail := setupBookingRouter(t, storedBooking("AbCd1234"))
	mail.err = errors.New("smtp: connection reset")

	w := performJSON(r, http.MethodPost, "/api/bookings/AbCd1234/confirm", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var response struct {
		Message string          `json:"message"`
		Booking *models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Booking status updated, but failed to send email.", response.Message)
	require.NotNil(t, response.Booking)
	assert.Equal(t, models.BookingStatusConfirmed, response.Booking.Status)

	// The status change survived the failed email.
	assert.Equal(t, models.BookingStatusConfirmed, st.bookings["AbCd1234"].Status)
}

func TestCancelBookingEndpoint(t *testing.T) {
	r, st, mail := setupBookingRouter(t, storedBooking("AbCd1234"))

	w := performJSON(r, http.MethodPost, "/api/bookings/AbCd1234/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.BookingStatusCancelled, st.bookings["AbCd1234"].Status)
	assert.Zero(t, mail.sent)
}

func TestUpdateBookingEndpoint(t *testing.T) {
	r, st, mail := setupBookingRouter(t, storedBooking("AbCd1234"))

	w := performJSON(r, http.MethodPut, "/api/bookings/AbCd1234", gin.H{"destination": "Estepona"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Estepona", st.bookings["AbCd1234"].Destination)
	assert.Equal(t, 1, mail.sent)
}

func TestUpdateBookingEmailFailureFailsRequest(t *testing.T) {
	r, _, mail := setupBookingRouter(t, storedBooking("AbCd1234"))
	mail.err = errors.New("smtp: timeout")

	w := performJSON(r, http.MethodPut, "/api/bookings/AbCd1234", gin.H{"destination": "Estepona"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error updating booking")
}

func TestRequestInfoEndpoint(t *testing.T) {
	r, _, mail := setupBookingRouter(t, storedBooking("AbCd1234"))

	w := performJSON(r, http.MethodPost, "/api/bookings/AbCd1234/request-info", gin.H{"message": "Which terminal?"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mail.sent)
}

func TestRequestInfoRequiresMessage(t *testing.T) {
	r, _, mail := setupBookingRouter(t, storedBooking("AbCd1234"))

	w := performJSON(r, http.MethodPost, "/api/bookings/AbCd1234/request-info", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mail.sent)
}

func TestRequestInfoWithoutEmailOnFile(t *testing.T) {
	b := storedBooking("AbCd1234")
	b.Email = ""
	r, _, _ := setupBookingRouter(t, b)

	w := performJSON(r, http.MethodPost, "/api/bookings/AbCd1234/request-info", gin.H{"message": "ping"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "does not have an email address")
}
