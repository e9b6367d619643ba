package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitmatch/backend/internal/models"
)

func TestSearchUsersPaginates(t *testing.T) {
	router := setupTestRouter(t)
	_, viewerToken := createTestUser(t, "viewer")
	for _, name := range []string{"runner1", "runner2", "runner3"} {
		createTestUser(t, name)
	}

	w := doRequest(router, http.MethodGet, "/api/v1/users?limit=2&page=1", viewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page PaginatedResponse[PublicUserResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 3, page.Meta.TotalItems, "viewer excluded from their own results")
	assert.Equal(t, 2, page.Meta.TotalPages)

	w = doRequest(router, http.MethodGet, "/api/v1/users?limit=2&page=2", viewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)

	// Name filter narrows the set.
	w = doRequest(router, http.MethodGet, "/api/v1/users?q=runner2", viewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "runner2", page.Data[0].Username)
}

func TestProfileRelationCounts(t *testing.T) {
	router := setupTestRouter(t)
	alice, aliceToken := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")
	_, carolToken := createTestUser(t, "carol")

	// alice and bob are buddies; carol has asked alice.
	w := doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	rel := decodeRelation(t, w)
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships/%d/approve", rel.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", alice.ID), carolToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/users/me", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me PrivateUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.EqualValues(t, 1, me.BuddiesCount)
	assert.EqualValues(t, 1, me.PendingCount)
	assert.EqualValues(t, 0, me.OutgoingCount)

	// carol's open request counts as outgoing for her.
	w = doRequest(router, http.MethodGet, "/api/v1/users/me", carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.EqualValues(t, 1, me.OutgoingCount)

	// The public profile carries the viewer's relation to the target.
	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile PublicUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.EqualValues(t, 1, profile.BuddiesCount)
	require.NotNil(t, profile.RelationToViewer)
	assert.Equal(t, models.StatusAccepted, *profile.RelationToViewer)

	// No relation between carol and bob.
	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bob.ID), carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile = PublicUserResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Nil(t, profile.RelationToViewer)
}
