package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/work-spot/api-go/models"
	"github.com/work-spot/api-go/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// newTestApp wires the full route table against an in-memory database and a
// fake blob store.
func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB, *fakeBlobStorage) {
	t.Helper()
	t.Setenv("JWT_SECRET", "testsecret")
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	blobs := newFakeBlobStorage()

	r := gin.New()
	SetupRoutes(r, db, blobs)

	return r, db, blobs
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:routes_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.RefreshToken{}, &models.Office{}, &models.Tag{},
		&models.Image{}, &models.Reservation{}, &models.Notification{},
	))

	return db
}

// fakeBlobStorage keeps uploaded keys in memory.
type fakeBlobStorage struct {
	mu      sync.Mutex
	objects map[string]bool
}

func newFakeBlobStorage() *fakeBlobStorage {
	return &fakeBlobStorage{objects: map[string]bool{}}
}

func (f *fakeBlobStorage) PresignPut(key, contentType string) (string, error) {
	return "https://uploads.test/" + key, nil
}

func (f *fakeBlobStorage) Exists(key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[key], nil
}

func (f *fakeBlobStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeBlobStorage) put(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = true
}

func (f *fakeBlobStorage) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[key]
}

// signTestToken returns a signed access token for the user.
func signTestToken(t *testing.T, user models.User, scopes ...string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"scopes":   scopes,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("testsecret"))
	require.NoError(t, err)

	return token
}

func memberToken(t *testing.T, user models.User) string {
	return signTestToken(t, user, utils.ScopeOfficeCreate)
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Fixtures

func createUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createOffice(t *testing.T, db *gorm.DB, owner models.User, mutate ...func(*models.Office)) models.Office {
	t.Helper()

	office := models.Office{
		UserID:         owner.ID,
		Title:          "Office",
		Description:    "A desk with a view",
		Lat:            39.74,
		Lng:            -8.77,
		PricePerDay:    100,
		ApprovalStatus: models.ApprovalApproved,
	}
	for _, m := range mutate {
		m(&office)
	}
	require.NoError(t, db.Create(&office).Error)
	return office
}

func createTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()

	tag := models.Tag{Name: name}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func createImage(t *testing.T, db *gorm.DB, office models.Office, key string) models.Image {
	t.Helper()

	image := models.Image{
		OfficeID: office.ID,
		Key:      key,
		URL:      "https://cdn.test/" + key,
	}
	require.NoError(t, db.Create(&image).Error)
	return image
}

func createReservation(t *testing.T, db *gorm.DB, office models.Office, visitor models.User, status string) models.Reservation {
	t.Helper()

	reservation := models.Reservation{
		OfficeID:  office.ID,
		UserID:    visitor.ID,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		Price:     500,
		Status:    status,
	}
	require.NoError(t, db.Create(&reservation).Error)
	return reservation
}

// Response payloads

type officePayload struct {
	ID                uint    `json:"id"`
	UserID            uint    `json:"user_id"`
	Title             string  `json:"title"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	Hidden            bool    `json:"hidden"`
	ApprovalStatus    string  `json:"approval_status"`
	FeaturedImageID   *uint   `json:"featured_image_id"`
	ReservationsCount int64   `json:"reservations_count"`
	Distance          float64 `json:"distance"`
	User              struct {
		ID uint `json:"id"`
	} `json:"user"`
	Tags []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
	Images []struct {
		ID  uint   `json:"id"`
		URL string `json:"url"`
	} `json:"images"`
}

type officeCollectionPayload struct {
	Data []officePayload `json:"data"`
	Meta struct {
		CurrentPage int   `json:"current_page"`
		PerPage     int   `json:"per_page"`
		Total       int64 `json:"total"`
		LastPage    int   `json:"last_page"`
	} `json:"meta"`
	Links struct {
		First string  `json:"first"`
		Last  string  `json:"last"`
		Prev  *string `json:"prev"`
		Next  *string `json:"next"`
	} `json:"links"`
}

type officeResourcePayload struct {
	Data officePayload `json:"data"`
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}
