package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinCommunityEndpoint(t *testing.T) {
	r, users := newTestRouter(t)
	token := bearerToken(t, users, "citizen@example.com", "citizen123")

	w := doJSON(r, http.MethodPost, "/api/community/1/join", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		MemberCount int `json:"memberCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 157, resp.MemberCount)
}

func TestJoinPrivateCommunityBecomesRequest(t *testing.T) {
	r, users := newTestRouter(t)
	citizen := bearerToken(t, users, "citizen@example.com", "citizen123")
	admin := bearerToken(t, users, "admin@example.com", "admin123")

	// Flip community 4 private, then try to join it.
	w := doJSON(r, http.MethodPut, "/api/community/4", admin, `{"isPrivate":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/community/4/join", citizen, "")
	require.Equal(t, http.StatusAccepted, w.Code)

	w = doJSON(r, http.MethodGet, "/api/community/4", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var community struct {
		Members      []string `json:"members"`
		JoinRequests []string `json:"joinRequests"`
		MemberCount  int      `json:"memberCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &community))
	assert.Len(t, community.JoinRequests, 1)
	assert.NotContains(t, community.Members, community.JoinRequests[0])
	assert.Equal(t, 178, community.MemberCount)

	// Approval promotes the requester.
	w = doJSON(r, http.MethodPost, "/api/community/4/requests/approve", admin,
		`{"userId":"`+community.JoinRequests[0]+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/community/4", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &community))
	assert.Empty(t, community.JoinRequests)
	assert.Equal(t, 179, community.MemberCount)
}

func TestDiscussionAndReplyEndpoints(t *testing.T) {
	r, users := newTestRouter(t)
	token := bearerToken(t, users, "citizen@example.com", "citizen123")

	w := doJSON(r, http.MethodPost, "/api/community/2/discussions", token, `{
		"title": "Footpath audit walk",
		"content": "Meeting Saturday to map broken footpaths."
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var discussion struct {
		ID         string `json:"id"`
		ReplyCount int    `json:"replyCount"`
		ViewCount  int    `json:"viewCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &discussion))
	assert.Equal(t, 0, discussion.ReplyCount)

	w = doJSON(r, http.MethodPost, "/api/discussion/"+discussion.ID+"/replies", token,
		`{"content":"Count me in."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Viewing twice counts once.
	doJSON(r, http.MethodPost, "/api/discussion/"+discussion.ID+"/view", token, "")
	w = doJSON(r, http.MethodPost, "/api/discussion/"+discussion.ID+"/view", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var counts struct {
		ViewCount int `json:"viewCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, 1, counts.ViewCount)
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/community/search", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/community/search?q=water", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var results []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "3", results[0].ID)
}
