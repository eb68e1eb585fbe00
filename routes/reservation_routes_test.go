package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/work-spot/api-go/models"
)

type reservationPayload struct {
	ID       uint   `json:"id"`
	OfficeID uint   `json:"office_id"`
	UserID   uint   `json:"user_id"`
	Price    int    `json:"price"`
	Status   string `json:"status"`
	Office   struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	} `json:"office"`
}

func TestCreateReservation(t *testing.T) {
	r, db, _ := newTestApp(t)

	owner := createUser(t, db, "host", false)
	visitor := createUser(t, db, "visitor", false)
	office := createOffice(t, db, owner, func(o *models.Office) { o.PricePerDay = 100 })

	body := map[string]interface{}{"start_date": "2026-09-01", "end_date": "2026-09-05"}
	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/offices/%d/reservations", office.ID), body, memberToken(t, visitor))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data reservationPayload `json:"data"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, office.ID, resp.Data.OfficeID)
	assert.Equal(t, visitor.ID, resp.Data.UserID)
	assert.Equal(t, models.ReservationActive, resp.Data.Status)
	// Sep 1 through Sep 5 inclusive is five days at 100 per day.
	assert.Equal(t, 500, resp.Data.Price)
}

func TestCreateReservationMonthlyDiscount(t *testing.T) {
	r, db, _ := newTestApp(t)

	owner := createUser(t, db, "host", false)
	visitor := createUser(t, db, "visitor", false)
	office := createOffice(t, db, owner, func(o *models.Office) {
		o.PricePerDay = 100
		o.MonthlyDiscount = 20
	})

	// 30 days, so the monthly discount applies.
	body := map[string]interface{}{"start_date": "2026-09-01", "end_date": "2026-09-30"}
	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/offices/%d/reservations", office.ID), body, memberToken(t, visitor))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data reservationPayload `json:"data"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, 2400, resp.Data.Price)
}

func TestCreateReservationOwnOfficeRejected(t *testing.T) {
	r, db, _ := newTestApp(t)

	owner := createUser(t, db, "host", false)
	office := createOffice(t, db, owner)

	body := map[string]interface{}{"start_date": "2026-09-01", "end_date": "2026-09-05"}
	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/offices/%d/reservations", office.ID), body, memberToken(t, owner))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateReservationUnlistedOfficeNotFound(t *testing.T) {
	r, db, _ := newTestApp(t)

	owner := createUser(t, db, "host", false)
	visitor := createUser(t, db, "visitor", false)
	hidden := createOffice(t, db, owner, func(o *models.Office) { o.Hidden = true })
	pending := createOffice(t, db, owner, func(o *models.Office) { o.ApprovalStatus = models.ApprovalPending })

	body := map[string]interface{}{"start_date": "2026-09-01", "end_date": "2026-09-05"}
	for _, office := range []models.Office{hidden, pending} {
		w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/offices/%d/reservations", office.ID), body, memberToken(t, visitor))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestCreateReservationInvalidDates(t *testing.T) {
	r, db, _ := newTestApp(t)

	owner := createUser(t, db, "host", false)
	visitor := createUser(t, db, "visitor", false)
	office := createOffice(t, db, owner)
	path := fmt.Sprintf("/api/offices/%d/reservations", office.ID)

	w := doRequest(t, r, http.MethodPost, path, map[string]interface{}{"start_date": "not-a-date", "end_date": "2026-09-05"}, memberToken(t, visitor))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// End before start.
	w = doRequest(t, r, http.MethodPost, path, map[string]interface{}{"start_date": "2026-09-05", "end_date": "2026-09-01"}, memberToken(t, visitor))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCancelReservation(t *testing.T) {
	r, db, _ := newTestApp(t)

	owner := createUser(t, db, "host", false)
	visitor := createUser(t, db, "visitor", false)
	office := createOffice(t, db, owner)
	reservation := createReservation(t, db, office, visitor, models.ReservationActive)

	// Only the visitor who booked can cancel, the owner cannot.
	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", reservation.ID), nil, memberToken(t, owner))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", reservation.ID), nil, memberToken(t, visitor))
	require.Equal(t, http.StatusOK, w.Code)

	// The row survives with its status flipped.
	var cancelled models.Reservation
	require.NoError(t, db.First(&cancelled, reservation.ID).Error)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)

	// Cancelling twice is rejected.
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", reservation.ID), nil, memberToken(t, visitor))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListReservationsOwnOnly(t *testing.T) {
	r, db, _ := newTestApp(t)

	owner := createUser(t, db, "host", false)
	visitor := createUser(t, db, "visitor", false)
	otherVisitor := createUser(t, db, "other_visitor", false)
	office := createOffice(t, db, owner, func(o *models.Office) { o.Title = "Booked office" })

	mine := createReservation(t, db, office, visitor, models.ReservationActive)
	createReservation(t, db, office, otherVisitor, models.ReservationActive)

	w := doRequest(t, r, http.MethodGet, "/api/reservations", nil, memberToken(t, visitor))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []reservationPayload `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, mine.ID, resp.Data[0].ID)
	assert.Equal(t, "Booked office", resp.Data[0].Office.Title)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestListReservationsRequiresAuth(t *testing.T) {
	r, _, _ := newTestApp(t)

	w := doRequest(t, r, http.MethodGet, "/api/reservations", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
