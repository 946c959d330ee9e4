package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"friendapp-api/config"
	"friendapp-api/logger"
	"friendapp-api/middleware"
	"friendapp-api/models"
	"friendapp-api/testutil"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	logger.Init()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		SessionTTLHours: 1,
	}

	r := gin.New()
	SetupRoutes(r, db, cfg)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.GenerateToken(userID, "test-secret", time.Hour)
	require.NoError(t, err)
	return token
}

func TestAdminRoutesAreGated(t *testing.T) {
	r, db := setupRouter(t)
	regular := testutil.CreateUser(t, db, "regular")
	token := sessionFor(t, regular.ID)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users", token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/friends/requests/pending", token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitApproveFlow(t *testing.T) {
	r, db := setupRouter(t)
	admin := testutil.CreateUser(t, db, "admin", func(u *models.User) { u.IsAdmin = true })
	ali := testutil.CreateUser(t, db, "ali")
	ayse := testutil.CreateUser(t, db, "ayse")

	body := fmt.Sprintf(`{"receiver_id":%q,"note":"selam"}`, ayse.ID)
	w := doJSON(t, r, http.MethodPost, "/api/v1/friends/requests", sessionFor(t, ali.ID), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pending []models.FriendRequest
	require.NoError(t, db.Where("status = ?", models.FriendRequestStatusPending).Find(&pending).Error)
	require.Len(t, pending, 1)

	path := fmt.Sprintf("/api/v1/friends/requests/%d/approve", pending[0].ID)
	w = doJSON(t, r, http.MethodPost, path, sessionFor(t, admin.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/friends", sessionFor(t, ali.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var listResponse struct {
		Friends []models.User `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResponse))
	require.Len(t, listResponse.Friends, 1)
	assert.Equal(t, ayse.ID, listResponse.Friends[0].ID)
}

func TestToggleAdmin(t *testing.T) {
	r, db := setupRouter(t)
	admin := testutil.CreateUser(t, db, "admin", func(u *models.User) { u.IsAdmin = true })
	target := testutil.CreateUser(t, db, "target")
	token := sessionFor(t, admin.ID)

	w := doJSON(t, r, http.MethodPut, "/api/v1/users/"+admin.ID+"/toggle-admin", token, "")
	assert.Equal(t, http.StatusConflict, w.Code, "self toggle must be rejected")

	w = doJSON(t, r, http.MethodPut, "/api/v1/users/"+target.ID+"/toggle-admin", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", target.ID).Error)
	assert.True(t, reloaded.IsAdmin)
}

func TestSearchEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	self := testutil.CreateUser(t, db, "searcher")
	testutil.CreateUser(t, db, "ayilmaz", func(u *models.User) {
		u.FirstName = "Ali"
		u.LastName = "Yılmaz"
	})
	token := sessionFor(t, self.ID)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/search?q=ali", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Users []models.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Users, 1)
	assert.Equal(t, "ayilmaz", response.Users[0].Handle)

	// Sub-minimum queries are an empty result, not an error.
	w = doJSON(t, r, http.MethodGet, "/api/v1/users/search?q=a", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Users)
}

func TestGoogleLoginRouteOnlyWhenEnabled(t *testing.T) {
	logger.Init()
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t)

	r := gin.New()
	SetupRoutes(r, db, &config.Config{JWTSecret: "s", SessionTTLHours: 1})

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/google-login", "", `{"id_token":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code, "legacy path is off by default")
}

func TestBlockAndUnblockFlow(t *testing.T) {
	r, db := setupRouter(t)
	ali := testutil.CreateUser(t, db, "ali")
	ayse := testutil.CreateUser(t, db, "ayse")
	token := sessionFor(t, ali.ID)

	body := fmt.Sprintf(`{"user_id":%q}`, ayse.ID)
	w := doJSON(t, r, http.MethodPost, "/api/v1/friends/block", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/friends/block", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var blocks []models.BlockedUser
	require.NoError(t, db.Where("blocker_id = ?", ali.ID).Find(&blocks).Error)
	require.Len(t, blocks, 1)

	path := fmt.Sprintf("/api/v1/friends/block/%d", blocks[0].ID)
	w = doJSON(t, r, http.MethodDelete, path, token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Blocked submission in either direction is a conflict while the
	// block exists; after unblock it goes through again.
	body = fmt.Sprintf(`{"receiver_id":%q}`, ayse.ID)
	w = doJSON(t, r, http.MethodPost, "/api/v1/friends/requests", token, body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
