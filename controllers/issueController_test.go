package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"civicconnect-be/controllers"
	"civicconnect-be/persist"
	"civicconnect-be/routes"
	"civicconnect-be/store"
	authUtils "civicconnect-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.UserRegistry) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	snap := persist.NewMemorySnapshotter()
	issues, err := store.NewIssueStore(snap)
	require.NoError(t, err)
	communities, err := store.NewCommunityStore(snap)
	require.NoError(t, err)
	users := store.NewUserRegistry()

	r := gin.New()
	routes.AuthRoutes(r, controllers.NewAuthController(users))
	routes.IssueRoutes(r, controllers.NewIssueController(issues, users), false)
	routes.CommunityRoutes(r, controllers.NewCommunityController(communities, users))
	return r, users
}

func bearerToken(t *testing.T, users *store.UserRegistry, email, password string) string {
	t.Helper()
	user, err := users.Authenticate(email, password)
	require.NoError(t, err)
	token, err := authUtils.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVoteEndpointToggles(t *testing.T) {
	r, users := newTestRouter(t)
	token := bearerToken(t, users, "citizen@example.com", "citizen123")

	w := doJSON(r, http.MethodPost, "/api/issue/3/vote", token, `{"vote":"up"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Upvotes  int    `json:"upvotes"`
		Voted    bool   `json:"voted"`
		UserVote string `json:"userVote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 32, resp.Upvotes)
	assert.True(t, resp.Voted)
	assert.Equal(t, "up", resp.UserVote)

	// Same vote again retracts.
	w = doJSON(r, http.MethodPost, "/api/issue/3/vote", token, `{"vote":"up"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 31, resp.Upvotes)
	assert.False(t, resp.Voted)
}

func TestVoteEndpointRejectsInvalidDirection(t *testing.T) {
	r, users := newTestRouter(t)
	token := bearerToken(t, users, "citizen@example.com", "citizen123")

	w := doJSON(r, http.MethodPost, "/api/issue/3/vote", token, `{"vote":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteEndpointRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/issue/3/vote", "", `{"vote":"up"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateIssueEndpoint(t *testing.T) {
	r, users := newTestRouter(t)
	token := bearerToken(t, users, "citizen@example.com", "citizen123")

	w := doJSON(r, http.MethodPost, "/api/issue/create", token, `{
		"title": "Fallen tree on CMH Road",
		"description": "Tree blocking the left lane after last night's storm",
		"category": "Roads",
		"location": "CMH Road, Indiranagar",
		"urgency": "high",
		"coordinates": {"lat": 12.97, "lng": 77.64}
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Status   string `json:"status"`
		Upvotes  int    `json:"upvotes"`
		Reporter string `json:"reportedBy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "roads", created.Category) // normalized
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 0, created.Upvotes)
	assert.Equal(t, "Demo Citizen", created.Reporter)

	// Newest first in the listing.
	w = doJSON(r, http.MethodGet, "/api/issue/?limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Issues      []struct{ ID string }
		TotalIssues int `json:"totalIssues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Issues, 1)
	assert.Equal(t, created.ID, listing.Issues[0].ID)
	assert.Equal(t, 9, listing.TotalIssues)
}

func TestCreateIssueRejectsBadUrgency(t *testing.T) {
	r, users := newTestRouter(t)
	token := bearerToken(t, users, "citizen@example.com", "citizen123")

	w := doJSON(r, http.MethodPost, "/api/issue/create", token, `{
		"title": "x", "description": "y", "category": "roads",
		"location": "z", "urgency": "catastrophic"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIssueIsAdminOnly(t *testing.T) {
	r, users := newTestRouter(t)

	citizen := bearerToken(t, users, "citizen@example.com", "citizen123")
	w := doJSON(r, http.MethodPut, "/api/issue/1", citizen, `{"status":"resolved"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := bearerToken(t, users, "admin@example.com", "admin123")
	w = doJSON(r, http.MethodPut, "/api/issue/1", admin, `{"status":"resolved","assignedDepartment":"BBMP"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Status     string `json:"status"`
		Department string `json:"assignedDepartment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "resolved", updated.Status)
	assert.Equal(t, "BBMP", updated.Department)
}

func TestAdminCommentIsOfficial(t *testing.T) {
	r, users := newTestRouter(t)
	admin := bearerToken(t, users, "admin@example.com", "admin123")

	w := doJSON(r, http.MethodPost, "/api/issue/4/comments", admin, `{"content":"Crew dispatched."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Comments []struct {
			Author     string `json:"author"`
			IsOfficial bool   `json:"isOfficial"`
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comments, 1)
	assert.True(t, resp.Comments[0].IsOfficial)
	assert.Equal(t, "Admin Team", resp.Comments[0].Author)
}

func TestMapFeedProjection(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/issue/map", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var feed []struct {
		ID          string `json:"id"`
		Coordinates *struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"coordinates"`
		Upvotes  int `json:"upvotes"`
		Comments int `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed, 8) // every seed issue carries coordinates

	for _, entry := range feed {
		assert.NotNil(t, entry.Coordinates)
	}
	assert.Equal(t, "1", feed[0].ID)
	assert.Equal(t, 23, feed[0].Upvotes)
	assert.Equal(t, 2, feed[0].Comments)
}

func TestGetIssueNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/issue/999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
