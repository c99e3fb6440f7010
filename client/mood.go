package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mywatt/mywatt/models"
)

// ListMoods fetches the mood profiles of the selected household, optionally
// narrowed to one room.
func (c *Client) ListMoods(ctx context.Context, roomID *int64) ([]models.MoodProfile, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	if roomID != nil {
		query.Set("room_id", strconv.FormatInt(*roomID, 10))
	}
	var resp models.MoodProfilesResponse
	if err := c.get(ctx, "/mood_profiles/"+householdID, query, &resp); err != nil {
		return nil, err
	}
	return resp.Moods, nil
}

// CreateMood saves a new mood profile in the selected household.
func (c *Client) CreateMood(ctx context.Context, mood models.MoodProfile) error {
	householdID, err := c.requireHousehold()
	if err != nil {
		return err
	}
	if mood.Name == "" {
		return preconditionError("mood name cannot be empty")
	}
	return c.post(ctx, "/add_mood_profile", map[string]any{
		"household_id":  householdID,
		"name":          mood.Name,
		"color":         mood.Color,
		"room_id":       mood.RoomID,
		"device_states": mood.DeviceStates,
	}, nil)
}

// UpdateMood overwrites an existing mood profile.
func (c *Client) UpdateMood(ctx context.Context, id int64, mood models.MoodProfile) error {
	if mood.Name == "" {
		return preconditionError("mood name cannot be empty")
	}
	return c.put(ctx, "/update_mood_profile/"+strconv.FormatInt(id, 10), map[string]any{
		"name":          mood.Name,
		"color":         mood.Color,
		"room_id":       mood.RoomID,
		"device_states": mood.DeviceStates,
	}, nil)
}

// DeleteMood removes a mood profile.
func (c *Client) DeleteMood(ctx context.Context, id int64) error {
	return c.delete(ctx, "/delete_mood_profile/"+strconv.FormatInt(id, 10), nil, nil)
}

// ActivateMood fires the preset at the backend. This is fire-and-forget:
// no per-device confirmation comes back.
func (c *Client) ActivateMood(ctx context.Context, id int64) error {
	return c.post(ctx, "/activate_mood/"+strconv.FormatInt(id, 10), nil, nil)
}

// MoodSelection tracks which mood is highlighted locally and which one the
// backend last confirmed. The two are kept separate on purpose: a failed
// activation leaves the highlight where the user put it, so selection and
// backend state can diverge until the next successful activation.
type MoodSelection struct {
	SelectedID  int64 // 0 means none
	ConfirmedID int64 // 0 means none
}

// Activate highlights the mood and asks the backend to apply it. Selecting
// the already-selected mood clears the highlight without a backend call.
func (m *MoodSelection) Activate(ctx context.Context, c *Client, id int64) error {
	if m.SelectedID == id {
		m.SelectedID = 0
		return nil
	}
	m.SelectedID = id
	if err := c.ActivateMood(ctx, id); err != nil {
		return err
	}
	m.ConfirmedID = id
	return nil
}

// MoodFormState is the lifecycle of the mood edit modal.
type MoodFormState int

const (
	MoodFormClosed MoodFormState = iota
	MoodFormCreating
	MoodFormEditing
)

// MoodForm is the local state of the create/edit modal. Save closes the
// form on success; on failure the form stays open with Err set inline.
type MoodForm struct {
	State MoodFormState
	ID    int64
	Mood  models.MoodProfile
	Err   error
}

// BeginCreate opens the form for a new mood.
func (f *MoodForm) BeginCreate(roomID *int64) {
	*f = MoodForm{
		State: MoodFormCreating,
		Mood:  models.MoodProfile{Color: "#8B5CF6", RoomID: roomID, DeviceStates: map[string]bool{}},
	}
}

// BeginEdit opens the form pre-filled with an existing mood.
func (f *MoodForm) BeginEdit(mood models.MoodProfile) {
	*f = MoodForm{State: MoodFormEditing, ID: mood.ID, Mood: mood}
}

// Save submits the form. The state machine goes back to closed on success
// and stays in creating/editing with the error recorded otherwise.
func (f *MoodForm) Save(ctx context.Context, c *Client) error {
	var err error
	switch f.State {
	case MoodFormCreating:
		err = c.CreateMood(ctx, f.Mood)
	case MoodFormEditing:
		err = c.UpdateMood(ctx, f.ID, f.Mood)
	default:
		return nil
	}
	if err != nil {
		f.Err = err
		return err
	}
	*f = MoodForm{}
	return nil
}
