package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/mywatt/mywatt/models"
)

// ListHouses fetches every house the signed-in user owns or has joined.
// The returned slice replaces whatever the caller held before; listings are
// never merged incrementally.
func (c *Client) ListHouses(ctx context.Context) ([]models.House, error) {
	userID, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	var resp models.HousesResponse
	query := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/get_user_houses", query, &resp); err != nil {
		return nil, err
	}
	return resp.Houses, nil
}

// CreateHouse registers a new house owned by the signed-in user.
func (c *Client) CreateHouse(ctx context.Context, name string) (*models.HouseResponse, error) {
	userID, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, preconditionError("house name cannot be empty")
	}
	var resp models.HouseResponse
	err = c.post(ctx, "/create_house", map[string]string{
		"manager_id": userID,
		"house_name": name,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// JoinHouse adds the signed-in user to an existing house by its code.
func (c *Client) JoinHouse(ctx context.Context, code string) (*models.HouseResponse, error) {
	userID, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, preconditionError("house code cannot be empty")
	}
	var resp models.HouseResponse
	err = c.post(ctx, "/join_house", map[string]string{
		"user_id":  userID,
		"house_id": code,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteHouse removes a house the signed-in user manages. When the deleted
// house is the selected one, the selection is cleared from the session.
func (c *Client) DeleteHouse(ctx context.Context, houseID string) error {
	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	err = c.delete(ctx, "/delete_house", map[string]string{
		"manager_id": userID,
		"house_id":   houseID,
	}, nil)
	if err != nil {
		return err
	}
	if c.session.HouseID() == houseID {
		c.session.SelectHouse("", "")
	}
	return nil
}

// SelectHouse records house as the active one in the session. Every
// household-scoped call from here on is issued against it.
func (c *Client) SelectHouse(house models.House) {
	c.session.SelectHouse(house.HouseID.String(), house.Name)
}

// ListRooms fetches the rooms of the selected household.
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	var resp models.RoomsResponse
	if err := c.get(ctx, "/rooms/"+householdID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// AddRoom creates a room in the selected household. The room id is
// generated client-side as a unix-seconds stamp, matching what the backend
// expects, and the created room is returned so the caller can extend its
// list without re-fetching.
func (c *Client) AddRoom(ctx context.Context, name string) (*models.Room, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, preconditionError("room name cannot be empty")
	}
	roomID := time.Now().Unix()
	err = c.post(ctx, "/add_room", map[string]any{
		"household_id": householdID,
		"room_id":      roomID,
		"room_name":    name,
	}, nil)
	if err != nil {
		return nil, err
	}
	return &models.Room{ID: roomID, Name: name}, nil
}

// DeleteRoom removes a room. Callers drop the room from their local list
// only after this returns without error.
func (c *Client) DeleteRoom(ctx context.Context, roomID int64) error {
	return c.delete(ctx, "/delete_room/"+strconv.FormatInt(roomID, 10), nil, nil)
}

// ListDevices fetches the devices of one room in the selected household.
func (c *Client) ListDevices(ctx context.Context, roomID int64) ([]models.Device, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	var devices []models.Device
	query := url.Values{
		"roomId":      {strconv.FormatInt(roomID, 10)},
		"householdId": {householdID},
	}
	if err := c.get(ctx, "/devices", query, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// AddDevice creates a device in the given room of the selected household.
func (c *Client) AddDevice(ctx context.Context, roomID int64, name, deviceType string) error {
	householdID, err := c.requireHousehold()
	if err != nil {
		return err
	}
	if name == "" {
		return preconditionError("device name cannot be empty")
	}
	return c.post(ctx, "/add_device", map[string]any{
		"household_id": householdID,
		"room_id":      roomID,
		"device_name":  name,
		"device_type":  deviceType,
	}, nil)
}

// DeleteDevice removes a device. As with rooms, callers drop the entry from
// their local list only after server confirmation.
func (c *Client) DeleteDevice(ctx context.Context, deviceID int64) error {
	return c.delete(ctx, "/delete_device/"+strconv.FormatInt(deviceID, 10), nil, nil)
}

// ToggleDevice flips a device's on/off state optimistically: the local
// value changes immediately and is rolled back if the server call fails.
func (c *Client) ToggleDevice(ctx context.Context, device *models.Device, newState bool) error {
	return Optimistic(&device.IsActive, newState, func() error {
		return c.put(ctx, "/update_device/"+strconv.FormatInt(device.ID, 10), map[string]bool{
			"is_active": newState,
		}, nil)
	})
}

// ToggleAllDevices pushes newState to every device in the list. Each update
// is fire-and-forget; failures are logged and the remaining devices are
// still attempted. The local states are set up front and not rolled back,
// matching the room screen's all-on/all-off control.
func (c *Client) ToggleAllDevices(ctx context.Context, devices []models.Device, newState bool) {
	for i := range devices {
		devices[i].IsActive = newState
		id := devices[i].ID
		err := c.put(ctx, "/update_device/"+strconv.FormatInt(id, 10), map[string]bool{
			"is_active": newState,
		}, nil)
		if err != nil {
			c.log.Warn("failed to update device", "device_id", id, "error", err)
		}
	}
}

// ListHomeUsers fetches the members of the selected household.
func (c *Client) ListHomeUsers(ctx context.Context) ([]models.HomeUser, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	var resp models.HomeUsersResponse
	query := url.Values{"household_id": {householdID}}
	if err := c.get(ctx, "/home_users", query, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// RemoveHomeUser removes a member from the selected household.
func (c *Client) RemoveHomeUser(ctx context.Context, userID string) error {
	householdID, err := c.requireHousehold()
	if err != nil {
		return err
	}
	return c.delete(ctx, "/delete_home_user", map[string]string{
		"household_id": householdID,
		"user_id":      userID,
	}, nil)
}
