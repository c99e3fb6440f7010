package cmd

import (
	"context"
	"fmt"
	"strconv"

	ishell "github.com/abiosoft/ishell"

	"github.com/mywatt/mywatt/client"
)

// houseCommands covers houses, rooms and household membership.
func houseCommands() []Command {
	return []Command{
		{
			Name: "houses",
			Desc: "List your houses and pick the active one",
			Func: func(c *ishell.Context) {
				houses, err := api.ListHouses(context.Background())
				if err != nil {
					reportError(err)
					return
				}
				if len(houses) == 0 {
					c.Println("You have no houses yet. Use 'createhouse' or 'joinhouse'.")
					return
				}
				for i, house := range houses {
					marker := " "
					if house.HouseID.String() == api.Session().HouseID() {
						marker = highlight("*")
					}
					owner := ""
					if house.IsOwner {
						owner = " (owner)"
					}
					c.Printf("%s %d. %s%s\n", marker, i+1, house.Name, owner)
				}
				choice := readInt(c, "Select a house by number (0 to keep current): ")
				if choice < 1 || choice > int64(len(houses)) {
					return
				}
				house := houses[choice-1]
				api.SelectHouse(house)
				c.Println("Selected house: " + highlight(house.Name))
			},
		},
		{
			Name: "createhouse",
			Desc: "Create a new house",
			Func: func(c *ishell.Context) {
				name := readNonEmpty(c, "Enter House Name: ")
				resp, err := api.CreateHouse(context.Background(), name)
				if err != nil {
					reportError(err)
					return
				}
				c.Println("House created. Share code " + highlight(resp.HouseID.String()) + " with your household.")
			},
		},
		{
			Name: "joinhouse",
			Desc: "Join an existing house by its code",
			Func: func(c *ishell.Context) {
				code := readNonEmpty(c, "Enter House Code: ")
				resp, err := api.JoinHouse(context.Background(), code)
				if err != nil {
					reportError(err)
					return
				}
				c.Println("Joined house " + highlight(resp.Name) + ". Use 'houses' to select it.")
			},
		},
		{
			Name: "deletehouse",
			Desc: "Delete a house you manage",
			Func: func(c *ishell.Context) {
				code := readNonEmpty(c, "Enter House Code: ")
				if !readYesNo(c, "Are you sure you want to delete this house? (yes/no): ") {
					return
				}
				if err := api.DeleteHouse(context.Background(), code); err != nil {
					reportError(err)
					return
				}
				c.Println("House deleted.")
			},
		},
		{
			Name: "rooms",
			Desc: "List rooms in the selected house",
			Func: func(c *ishell.Context) {
				rooms, err := api.ListRooms(context.Background())
				if err != nil {
					reportError(err)
					return
				}
				if len(rooms) == 0 {
					c.Println("No rooms yet. Use 'addroom' to create one.")
					return
				}
				for _, room := range rooms {
					c.Printf("  %d: %s\n", room.ID, room.Name)
				}
			},
		},
		{
			Name: "addroom",
			Desc: "Add a room to the selected house",
			Func: func(c *ishell.Context) {
				name := readNonEmpty(c, "Enter Room Name: ")
				room, err := api.AddRoom(context.Background(), name)
				if err != nil {
					reportError(err)
					return
				}
				c.Printf("Room '%s' created with id %d.\n", room.Name, room.ID)
			},
		},
		{
			Name: "deleteroom",
			Desc: "Delete a room",
			Func: func(c *ishell.Context) {
				roomID := readInt(c, "Enter Room ID: ")
				if err := api.DeleteRoom(context.Background(), roomID); err != nil {
					reportError(err)
					return
				}
				c.Println("Room deleted.")
			},
		},
		{
			Name: "members",
			Desc: "List the members of the selected house",
			Func: func(c *ishell.Context) {
				users, err := api.ListHomeUsers(context.Background())
				if err != nil {
					reportError(err)
					return
				}
				for _, user := range users {
					c.Printf("  %s: %s <%s> (%s)\n", user.UserID.String(), user.Name, user.Email, user.Role)
				}
			},
		},
		{
			Name: "removemember",
			Desc: "Remove a member from the selected house",
			Func: func(c *ishell.Context) {
				userID := readNonEmpty(c, "Enter User ID: ")
				if !readYesNo(c, "Remove this member? (yes/no): ") {
					return
				}
				if err := api.RemoveHomeUser(context.Background(), userID); err != nil {
					reportError(err)
					return
				}
				c.Println("Member removed.")
			},
		},
	}
}

// moodSelection persists the highlighted mood across command invocations,
// the way the mood screen keeps its selection between taps.
var moodSelection client.MoodSelection

// deviceCommands covers devices, schedules and mood profiles.
func deviceCommands() []Command {
	return []Command{
		{
			Name: "devices",
			Desc: "List devices in a room",
			Func: func(c *ishell.Context) {
				roomID := readInt(c, "Enter Room ID: ")
				devices, err := api.ListDevices(context.Background(), roomID)
				if err != nil {
					reportError(err)
					return
				}
				if len(devices) == 0 {
					c.Println("No devices in this room.")
					return
				}
				for _, device := range devices {
					state := "off"
					if device.IsActive {
						state = highlight("on")
					}
					category := client.InferCategory(device.Type, strconv.FormatInt(device.ID, 10))
					c.Printf("  %d: %s [%s] %s\n", device.ID, device.Name, category, state)
				}
			},
		},
		{
			Name: "adddevice",
			Desc: "Add a device to a room",
			Func: func(c *ishell.Context) {
				roomID := readInt(c, "Enter Room ID: ")
				name := readNonEmpty(c, "Enter Device Name: ")
				deviceType := readNonEmpty(c, "Enter Device Type (e.g. light, thermostat, tv): ")
				if err := api.AddDevice(context.Background(), roomID, name, deviceType); err != nil {
					reportError(err)
					return
				}
				c.Println("Device added.")
			},
		},
		{
			Name: "deletedevice",
			Desc: "Delete a device",
			Func: func(c *ishell.Context) {
				deviceID := readInt(c, "Enter Device ID: ")
				if err := api.DeleteDevice(context.Background(), deviceID); err != nil {
					reportError(err)
					return
				}
				c.Println("Device deleted.")
			},
		},
		{
			Name: "toggle",
			Desc: "Toggle a device on or off",
			Func: func(c *ishell.Context) {
				roomID := readInt(c, "Enter Room ID: ")
				deviceID := readInt(c, "Enter Device ID: ")
				devices, err := api.ListDevices(context.Background(), roomID)
				if err != nil {
					reportError(err)
					return
				}
				for i := range devices {
					if devices[i].ID != deviceID {
						continue
					}
					err := api.ToggleDevice(context.Background(), &devices[i], !devices[i].IsActive)
					if err != nil {
						reportError(err)
						return
					}
					state := "off"
					if devices[i].IsActive {
						state = "on"
					}
					c.Printf("%s is now %s.\n", devices[i].Name, state)
					return
				}
				c.Println("No such device in this room.")
			},
		},
		{
			Name: "toggleall",
			Desc: "Turn every device in a room on or off",
			Func: func(c *ishell.Context) {
				roomID := readInt(c, "Enter Room ID: ")
				on := readYesNo(c, "Turn all devices on? (yes/no): ")
				devices, err := api.ListDevices(context.Background(), roomID)
				if err != nil {
					reportError(err)
					return
				}
				api.ToggleAllDevices(context.Background(), devices, on)
				c.Printf("Updated %d devices.\n", len(devices))
			},
		},
		{
			Name: "schedules",
			Desc: "List a device's schedules",
			Func: func(c *ishell.Context) {
				deviceID := readInt(c, "Enter Device ID: ")
				schedules, err := api.ListSchedules(context.Background(), deviceID)
				if err != nil {
					reportError(err)
					return
				}
				if len(schedules) == 0 {
					c.Println("No schedules for this device.")
					return
				}
				for _, s := range schedules {
					state := "inactive"
					if s.IsActive {
						state = "active"
					}
					c.Printf("  %d: %s - %s on %s (%s)\n", s.ID, s.StartTime, s.EndTime, s.RepeatDays, state)
				}
			},
		},
		{
			Name: "addschedule",
			Desc: "Create a schedule for a device",
			Func: func(c *ishell.Context) {
				deviceID := readInt(c, "Enter Device ID: ")
				var form client.ScheduleForm
				form.Begin()
				form.StartTime = readNonEmpty(c, "Start time (HH:MM) ["+form.StartTime+"]: ")
				form.EndTime = readNonEmpty(c, "End time (HH:MM) ["+form.EndTime+"]: ")
				form.Days = nil
				for _, day := range client.Weekdays {
					if readYesNo(c, fmt.Sprintf("Repeat on %s? (yes/no): ", day)) {
						form.Days.Toggle(day)
					}
				}
				if err := form.Save(context.Background(), api, deviceID); err != nil {
					reportError(err)
					return
				}
				c.Println("Schedule created.")
			},
		},
		{
			Name: "toggleschedule",
			Desc: "Activate or deactivate a schedule",
			Func: func(c *ishell.Context) {
				scheduleID := readInt(c, "Enter Schedule ID: ")
				active := readYesNo(c, "Set active? (yes/no): ")
				if err := api.UpdateScheduleActive(context.Background(), scheduleID, active); err != nil {
					reportError(err)
					return
				}
				c.Println("Schedule updated.")
			},
		},
		{
			Name: "delschedule",
			Desc: "Delete a schedule",
			Func: func(c *ishell.Context) {
				scheduleID := readInt(c, "Enter Schedule ID: ")
				if err := api.DeleteSchedule(context.Background(), scheduleID); err != nil {
					reportError(err)
					return
				}
				c.Println("Schedule deleted.")
			},
		},
		{
			Name: "moods",
			Desc: "List the mood profiles of the selected house",
			Func: func(c *ishell.Context) {
				moods, err := api.ListMoods(context.Background(), nil)
				if err != nil {
					reportError(err)
					return
				}
				if len(moods) == 0 {
					c.Println("No mood profiles yet. Use 'addmood' to create one.")
					return
				}
				for _, mood := range moods {
					marker := " "
					if mood.ID == moodSelection.SelectedID {
						marker = highlight("*")
					}
					scope := "all rooms"
					if mood.RoomID != nil {
						scope = fmt.Sprintf("room %d", *mood.RoomID)
					}
					c.Printf("%s %d: %s (%s, %d devices)\n", marker, mood.ID, mood.Name, scope, len(mood.DeviceStates))
				}
			},
		},
		{
			Name: "addmood",
			Desc: "Create a mood profile",
			Func: func(c *ishell.Context) {
				var form client.MoodForm
				form.BeginCreate(nil)
				form.Mood.Name = readNonEmpty(c, "Enter Mood Name: ")
				if readYesNo(c, "Scope the mood to one room? (yes/no): ") {
					roomID := readInt(c, "Enter Room ID: ")
					form.Mood.RoomID = &roomID
				}
				for {
					device := readNonEmpty(c, "Device name (or 'done'): ")
					if device == "done" {
						break
					}
					form.Mood.DeviceStates[device] = readYesNo(c, "Should it be on? (yes/no): ")
				}
				if err := form.Save(context.Background(), api); err != nil {
					reportError(err)
					return
				}
				c.Println("Mood profile saved.")
			},
		},
		{
			Name: "delmood",
			Desc: "Delete a mood profile",
			Func: func(c *ishell.Context) {
				moodID := readInt(c, "Enter Mood ID: ")
				if err := api.DeleteMood(context.Background(), moodID); err != nil {
					reportError(err)
					return
				}
				if moodSelection.SelectedID == moodID {
					moodSelection.SelectedID = 0
				}
				c.Println("Mood profile deleted.")
			},
		},
		{
			Name: "activatemood",
			Desc: "Activate a mood profile",
			Func: func(c *ishell.Context) {
				moodID := readInt(c, "Enter Mood ID: ")
				err := moodSelection.Activate(context.Background(), api, moodID)
				if err != nil {
					reportError(err)
					return
				}
				if moodSelection.SelectedID == 0 {
					c.Println("Mood deselected.")
					return
				}
				c.Println("Mood activated.")
			},
		},
	}
}
