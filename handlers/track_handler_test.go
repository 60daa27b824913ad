package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isip/models"
)

func TestTrackUnknownToken(t *testing.T) {
	router, _, _ := newTestEnv(t)

	rr := doJSON(t, router, http.MethodGet, "/api/track/ISIP-ZZZZZZ/", "", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "Reference token not found"}`, rr.Body.String())
}

func TestTrackKnownTokenIsPublic(t *testing.T) {
	router, ideas, _ := newTestEnv(t)

	idea := seedIdeaWithStatus(t, ideas, "Finance", models.StatusPilot)

	// No Authorization header on purpose.
	rr := doJSON(t, router, http.MethodGet, "/api/track/"+idea.ReferenceID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got models.Idea
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, idea.ID, got.ID)
	assert.Equal(t, idea.ReferenceID, got.ReferenceID)
	assert.Equal(t, models.StatusPilot, got.Status)

	// The shareable URL usually carries a trailing slash.
	rr = doJSON(t, router, http.MethodGet, "/api/track/"+idea.ReferenceID+"/", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTrackResponseUsesWireNames(t *testing.T) {
	router, ideas, _ := newTestEnv(t)

	idea := seedIdeaWithStatus(t, ideas, "Finance", models.StatusReview)

	rr := doJSON(t, router, http.MethodGet, "/api/track/"+idea.ReferenceID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	for _, key := range []string{
		`"referenceId"`, `"isAnonymous"`, `"canContact"`, `"painPoint"`,
		`"impactTags"`, `"seenElsewhere"`, `"impactScore"`, `"feasibilityScore"`,
		`"internalNotes"`, `"lastUpdated"`, `"isRead"`,
	} {
		assert.True(t, strings.Contains(body, key), "missing wire field %s", key)
	}
	assert.False(t, strings.Contains(body, `"reference_id"`), "internal names must not leak")
}
