package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mywatt/mywatt/models"
)

func TestToggleDeviceSuccess(t *testing.T) {
	var sentState *bool
	mux := http.NewServeMux()
	mux.HandleFunc("/update_device/", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			IsActive bool `json:"is_active"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		sentState = &body.IsActive
		w.Write([]byte(`{"success":true}`))
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	device := models.Device{ID: 3, Name: "Lamp", Type: "light", IsActive: false}
	err := c.ToggleDevice(context.Background(), &device, true)
	require.NoError(t, err)
	require.NotNil(t, sentState)
	assert.True(t, *sentState)
	assert.Equal(t, *sentState, device.IsActive)
}

func TestToggleDeviceRollsBackOnFailure(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	signIn(sess)
	selectHouse(sess)

	device := models.Device{ID: 3, Name: "Lamp", Type: "light", IsActive: false}
	err := c.ToggleDevice(context.Background(), &device, true)
	require.Error(t, err)
	assert.False(t, device.IsActive, "local state must be restored to its pre-call value")
}

func TestListDevicesReplacesList(t *testing.T) {
	responses := [][]models.Device{
		{{ID: 1, Name: "Lamp", Type: "light", IsActive: true}, {ID: 2, Name: "TV", Type: "tv"}},
		{{ID: 2, Name: "TV", Type: "tv"}},
	}
	call := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/devices", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(responses[call])
		call++
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	first, err := c.ListDevices(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, responses[0], first)

	second, err := c.ListDevices(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []models.Device{{ID: 2, Name: "TV", Type: "tv"}}, second,
		"the list after completion must exactly equal the server-returned list")
}

func TestRoomRoundTrip(t *testing.T) {
	var rooms []models.Room
	mux := http.NewServeMux()
	mux.HandleFunc("/add_room", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RoomID int64  `json:"room_id"`
			Name   string `json:"room_name"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		rooms = append(rooms, models.Room{ID: body.RoomID, Name: body.Name})
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/rooms/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.RoomsResponse{Rooms: rooms})
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	created, err := c.AddRoom(context.Background(), "Kitchen")
	require.NoError(t, err)

	listed, err := c.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "Kitchen", listed[0].Name)
}

func TestListHousesQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get_user_houses", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))
		json.NewEncoder(w).Encode(models.HousesResponse{Houses: []models.House{
			{HouseID: "7", HouseholdID: "7", Name: "Test House", IsOwner: true},
		}})
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)

	houses, err := c.ListHouses(context.Background())
	require.NoError(t, err)
	require.Len(t, houses, 1)
	assert.True(t, houses[0].IsOwner)
}

func TestSelectHouseWritesBothIDs(t *testing.T) {
	c, sess := newTestClient(t, http.NewServeMux())
	c.SelectHouse(models.House{HouseID: "9", HouseholdID: "9", Name: "Lake House"})
	assert.Equal(t, "9", sess.HouseID())
	assert.Equal(t, "9", sess.HouseholdID())
	assert.Equal(t, "Lake House", sess.HouseName())
}

func TestDeleteHouseClearsSelection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/delete_house", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	require.NoError(t, c.DeleteHouse(context.Background(), "7"))
	assert.Empty(t, sess.HouseholdID())
	assert.Empty(t, sess.HouseName())
}

func TestInferCategoryFromType(t *testing.T) {
	cases := map[string]Category{
		"smart light":   CategoryLight,
		"heater":        CategoryClimate,
		"ac unit":       CategoryClimate,
		"thermostat":    CategoryClimate,
		"tv":            CategoryEntertainment,
		"smart speaker": CategoryEntertainment,
		"wall plug":     CategoryPower,
		"power strip":   CategoryPower,
		"door camera":   CategorySecurity,
		"motion sensor": CategorySecurity,
	}
	for deviceType, want := range cases {
		assert.Equal(t, want, InferCategory(deviceType, "1"), deviceType)
	}
}

func TestInferCategoryHashFallback(t *testing.T) {
	// Numeric ids index the category table directly.
	assert.Equal(t, CategoryEntertainment, InferCategory("mystery", "7"))
	assert.Equal(t, CategoryLight, InferCategory("mystery", "5"))
	// Non-numeric ids fall back to the first byte ('a' = 97, 97 % 5 = 2).
	assert.Equal(t, CategoryEntertainment, InferCategory("mystery", "abc"))
	// A zero id also falls back to its first byte ('0' = 48, 48 % 5 = 3).
	assert.Equal(t, CategoryPower, InferCategory("mystery", "0"))
	// A negative id folds into the table range instead of crashing
	// (-3 % 5 = -3, +5 = 2).
	assert.Equal(t, CategoryEntertainment, InferCategory("mystery", "-3"))
	assert.Equal(t, CategorySecurity, InferCategory("mystery", "-1"))

	// Same id must land on the same category across calls.
	for i := 0; i < 10; i++ {
		assert.Equal(t, InferCategory("mystery", "31"), InferCategory("mystery", "31"))
	}
}

func TestToggleAllDevicesContinuesPastFailure(t *testing.T) {
	updated := map[string]bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("/update_device/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/update_device/"):]
		if id == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var body struct {
			IsActive bool `json:"is_active"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		updated[id] = body.IsActive
		w.Write([]byte(`{"success":true}`))
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	devices := []models.Device{
		{ID: 1, Name: "Lamp", Type: "light", IsActive: false},
		{ID: 2, Name: "Heater", Type: "heater", IsActive: false},
		{ID: 3, Name: "TV", Type: "tv", IsActive: false},
	}
	c.ToggleAllDevices(context.Background(), devices, true)

	// Devices after the failed one are still attempted.
	assert.Equal(t, map[string]bool{"1": true, "3": true}, updated)

	// Local states are set up front and never rolled back, failure included.
	for _, d := range devices {
		assert.True(t, d.IsActive, d.Name)
	}
}

func TestEstimateUsageBands(t *testing.T) {
	for i := 0; i < 50; i++ {
		v := EstimateUsage(CategoryClimate)
		assert.GreaterOrEqual(t, v, 500.0)
		assert.LessOrEqual(t, v, 1500.0)
	}
	for i := 0; i < 50; i++ {
		v := EstimateUsage(CategoryOther)
		assert.GreaterOrEqual(t, v, 5.0)
		assert.LessOrEqual(t, v, 20.0)
	}
}

func TestDeleteDevicePath(t *testing.T) {
	var path string
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	signIn(sess)
	selectHouse(sess)

	require.NoError(t, c.DeleteDevice(context.Background(), 15))
	assert.True(t, strings.HasSuffix(path, "/delete_device/15"))
}
