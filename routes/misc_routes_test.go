package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/work-spot/api-go/models"
)

func TestListTags(t *testing.T) {
	r, db, _ := newTestApp(t)

	createTag(t, db, "wifi")
	createTag(t, db, "parking")

	w := doRequest(t, r, http.MethodGet, "/api/tags", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "wifi", resp.Data[0].Name)
	assert.Equal(t, "parking", resp.Data[1].Name)
}

func TestListNotificationsOwnOnly(t *testing.T) {
	r, db, _ := newTestApp(t)

	admin := createUser(t, db, "admin_user", true)
	otherAdmin := createUser(t, db, "other_admin", true)
	host := createUser(t, db, "host", false)

	// A new office notifies both admins.
	body := map[string]interface{}{
		"title":         "Downtown desks",
		"lat":           39.74,
		"lng":           -8.77,
		"price_per_day": 150,
	}
	w := doRequest(t, r, http.MethodPost, "/api/offices", body, memberToken(t, host))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/notifications", nil, memberToken(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID     uint   `json:"id"`
			UserID uint   `json:"user_id"`
			Type   string `json:"type"`
			Title  string `json:"title"`
		} `json:"data"`
	}
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, admin.ID, resp.Data[0].UserID)
	assert.Equal(t, models.NotificationOfficePendingApproval, resp.Data[0].Type)

	// Each admin only sees their own copy.
	w = doRequest(t, r, http.MethodGet, "/api/notifications", nil, memberToken(t, otherAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, otherAdmin.ID, resp.Data[0].UserID)

	// Requires authentication.
	w = doRequest(t, r, http.MethodGet, "/api/notifications", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
