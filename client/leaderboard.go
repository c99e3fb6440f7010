package client

import (
	"context"
	"net/url"
	"sort"

	"github.com/mywatt/mywatt/models"
)

// GoalTypes are the challenge goals the backend accepts.
var GoalTypes = []string{"Consumption", "Cost", "Carbon"}

// Leaderboard fetches the household standings for the given timeframe and
// assigns ranks client-side.
func (c *Client) Leaderboard(ctx context.Context, timeframe string) (*models.LeaderboardResponse, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	userID, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"household_id":    {householdID},
		"current_user_id": {userID},
		"timeframe":       {timeframe},
	}
	var resp models.LeaderboardResponse
	if err := c.get(ctx, "/household_users", query, &resp); err != nil {
		return nil, err
	}
	RankEntries(resp.Users)
	return &resp, nil
}

// RankEntries sorts entries by points descending and assigns 1-based ranks.
// The sort is stable, so tied entries keep their input order and receive
// strictly increasing ranks; no further tie-break rule is applied.
func RankEntries(entries []models.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// CurrentUserRank returns the signed-in user's rank, or 0 when they are not
// on the board.
func CurrentUserRank(entries []models.LeaderboardEntry) int {
	for _, e := range entries {
		if e.IsCurrentUser {
			return e.Rank
		}
	}
	return 0
}

// Challenges fetches the household's active challenges.
func (c *Client) Challenges(ctx context.Context) ([]models.Challenge, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	query := url.Values{"household_id": {householdID}}
	var resp models.ChallengesResponse
	if err := c.get(ctx, "/challenges", query, &resp); err != nil {
		return nil, err
	}
	return resp.Challenges, nil
}

// CreateChallenge starts a new household challenge. The deadline travels as
// YYYY-MM-DD.
func (c *Client) CreateChallenge(ctx context.Context, goalType string, target float64, deadline string) error {
	householdID, err := c.requireHousehold()
	if err != nil {
		return err
	}
	valid := false
	for _, g := range GoalTypes {
		if g == goalType {
			valid = true
			break
		}
	}
	if !valid {
		return preconditionError("goal type must be one of Consumption, Cost or Carbon")
	}
	if target <= 0 {
		return preconditionError("target must be greater than zero")
	}
	return c.post(ctx, "/create_challenge", map[string]any{
		"household_id": householdID,
		"goal_type":    goalType,
		"target_value": target,
		"deadline":     deadline,
	}, nil)
}

// ChallengeProgress derives the completion percentage of a challenge.
func ChallengeProgress(ch models.Challenge) float64 {
	if ch.TargetValue <= 0 {
		return 0
	}
	return ch.CurrentValue / ch.TargetValue * 100
}
