package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mywatt/mywatt/models"
)

// Weekdays lists the abbreviations a schedule's repeat days are built from.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DaySet is the toggle-set of repeat days, kept in selection order so the
// serialized form matches what the user tapped.
type DaySet []string

// Toggle adds day to the set, or removes it when already present.
func (d *DaySet) Toggle(day string) {
	for i, existing := range *d {
		if existing == day {
			*d = append((*d)[:i], (*d)[i+1:]...)
			return
		}
	}
	*d = append(*d, day)
}

// Contains reports whether day is in the set.
func (d DaySet) Contains(day string) bool {
	for _, existing := range d {
		if existing == day {
			return true
		}
	}
	return false
}

// Serialize joins the set into the comma-separated wire form ("Mon,Wed,Fri").
func (d DaySet) Serialize() string {
	return strings.Join(d, ",")
}

// ParseDays splits the wire form back into a DaySet.
func ParseDays(s string) DaySet {
	if s == "" {
		return nil
	}
	return DaySet(strings.Split(s, ","))
}

// NormalizeTime brings a clock value into the HH:MM:SS wire form. A value
// that already carries seconds (two colons) passes through unchanged;
// otherwise hours and minutes are zero-padded and ":00" seconds appended,
// so "8:00" becomes "08:00:00". Unparseable input is returned as-is.
func NormalizeTime(t string) string {
	if strings.Count(t, ":") >= 2 {
		return t
	}
	parts := strings.SplitN(t, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return t
	}
	minute := 0
	if len(parts) == 2 {
		minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return t
		}
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute)
}

// ListSchedules fetches the schedules attached to a device.
func (c *Client) ListSchedules(ctx context.Context, deviceID int64) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := c.get(ctx, "/get_device_schedule/"+strconv.FormatInt(deviceID, 10), nil, &schedules)
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// CreateSchedule saves a new time window for a device. Times are normalized
// before transmission. Neither start<end ordering nor overlap with existing
// schedules is validated; the backend accepts whatever is sent.
func (c *Client) CreateSchedule(ctx context.Context, deviceID int64, schedule models.Schedule) error {
	return c.post(ctx, "/create_device_schedule/"+strconv.FormatInt(deviceID, 10), map[string]any{
		"start_time":  NormalizeTime(schedule.StartTime),
		"end_time":    NormalizeTime(schedule.EndTime),
		"repeat_days": schedule.RepeatDays,
		"is_active":   schedule.IsActive,
	}, nil)
}

// UpdateScheduleActive flips a schedule's active flag.
func (c *Client) UpdateScheduleActive(ctx context.Context, scheduleID int64, active bool) error {
	return c.put(ctx, "/update_device_schedule/"+strconv.FormatInt(scheduleID, 10), map[string]bool{
		"is_active": active,
	}, nil)
}

// DeleteSchedule removes a schedule.
func (c *Client) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	return c.delete(ctx, "/delete_schedule/"+strconv.FormatInt(scheduleID, 10), nil, nil)
}

// ScheduleFormState is the lifecycle of the schedule editor.
type ScheduleFormState int

const (
	ScheduleFormIdle ScheduleFormState = iota
	ScheduleFormEditing
	ScheduleFormSubmitting
)

// ScheduleForm is the local editor state for a new schedule.
type ScheduleForm struct {
	State     ScheduleFormState
	StartTime string
	EndTime   string
	Days      DaySet
	IsActive  bool
	Err       error
}

// Begin opens the editor with the defaults the device screen uses.
func (f *ScheduleForm) Begin() {
	*f = ScheduleForm{
		State:     ScheduleFormEditing,
		StartTime: "08:00",
		EndTime:   "17:00",
		Days:      DaySet{"Mon", "Wed", "Fri"},
		IsActive:  true,
	}
}

// Save submits the form for deviceID. The editor returns to idle on success
// and back to editing with Err set on failure.
func (f *ScheduleForm) Save(ctx context.Context, c *Client, deviceID int64) error {
	if f.State != ScheduleFormEditing {
		return nil
	}
	f.State = ScheduleFormSubmitting
	err := c.CreateSchedule(ctx, deviceID, models.Schedule{
		StartTime:  f.StartTime,
		EndTime:    f.EndTime,
		RepeatDays: f.Days.Serialize(),
		IsActive:   f.IsActive,
	})
	if err != nil {
		f.State = ScheduleFormEditing
		f.Err = err
		return err
	}
	*f = ScheduleForm{}
	return nil
}
