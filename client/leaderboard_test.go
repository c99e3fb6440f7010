package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mywatt/mywatt/models"
)

func TestRankEntriesStableOrder(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{Name: "Ana", Points: 50},
		{Name: "Ben", Points: 80},
		{Name: "Cat", Points: 80},
		{Name: "Dan", Points: 30},
	}
	RankEntries(entries)

	// Sorted by points descending; the tied 80s keep their input order and
	// receive strictly increasing ranks.
	assert.Equal(t, "Ben", entries[0].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Cat", entries[1].Name)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Ana", entries[2].Name)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, "Dan", entries[3].Name)
	assert.Equal(t, 4, entries[3].Rank)
}

func TestLeaderboardAssignsRanks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/household_users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("household_id"))
		assert.Equal(t, "42", r.URL.Query().Get("current_user_id"))
		assert.Equal(t, "week", r.URL.Query().Get("timeframe"))
		json.NewEncoder(w).Encode(models.LeaderboardResponse{
			HouseholdName: "Test House",
			Users: []models.LeaderboardEntry{
				{UserID: "42", Name: "Me", Points: 10, IsCurrentUser: true},
				{UserID: "43", Name: "Top", Points: 90},
			},
		})
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	board, err := c.Leaderboard(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, "Top", board.Users[0].Name)
	assert.Equal(t, 1, board.Users[0].Rank)
	assert.Equal(t, 2, board.Users[1].Rank)
	assert.Equal(t, 2, CurrentUserRank(board.Users))
}

func TestChallengeProgress(t *testing.T) {
	assert.Equal(t, 50.0, ChallengeProgress(models.Challenge{CurrentValue: 50, TargetValue: 100}))
	assert.Equal(t, 0.0, ChallengeProgress(models.Challenge{CurrentValue: 50, TargetValue: 0}))
	assert.Equal(t, 120.0, ChallengeProgress(models.Challenge{CurrentValue: 60, TargetValue: 50}))
}

func TestCreateChallengeValidation(t *testing.T) {
	c, sess := newTestClient(t, http.NewServeMux())
	signIn(sess)
	selectHouse(sess)

	err := c.CreateChallenge(context.Background(), "Speed", 10, "2026-09-30")
	assert.True(t, IsPrecondition(err))
	err = c.CreateChallenge(context.Background(), "Carbon", 0, "2026-09-30")
	assert.True(t, IsPrecondition(err))
}

func TestCreateChallengePayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/create_challenge", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "7", body["household_id"])
		assert.Equal(t, "Consumption", body["goal_type"])
		assert.Equal(t, 100.0, body["target_value"])
		assert.Equal(t, "2026-09-30", body["deadline"])
		w.Write([]byte(`{"success":true}`))
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	require.NoError(t, c.CreateChallenge(context.Background(), "Consumption", 100, "2026-09-30"))
}
