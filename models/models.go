package models

import (
	"encoding/json"
)

// Role is the access level a user holds within a household.
type Role string

const (
	RoleHomeManager Role = "Home Manager"
	RoleHomeUser    Role = "Home User"
)

// StatusResponse is the minimal envelope the backend wraps most mutations in.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Success  bool        `json:"success"`
	UserID   json.Number `json:"user_id"`
	Name     string      `json:"name"`
	Role     Role        `json:"role"`
	Email    string      `json:"email"`
	UserUUID string      `json:"user_uuid"`
	Error    string      `json:"error,omitempty"`
}

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Role        Role   `json:"role"`
}

// House is one physical property a user owns or has joined. Exactly one
// house is selected at a time; its ids are carried in the session.
type House struct {
	HouseID     json.Number `json:"house_id"`
	HouseholdID json.Number `json:"household_id"`
	Name        string      `json:"house_name"`
	IsOwner     bool        `json:"is_owner"`
}

type HousesResponse struct {
	Houses []House `json:"houses"`
}

type HouseResponse struct {
	Success bool        `json:"success"`
	HouseID json.Number `json:"house_id"`
	Name    string      `json:"house_name"`
	Error   string      `json:"error,omitempty"`
}

type Room struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RoomsResponse struct {
	Rooms []Room `json:"rooms"`
}

type Device struct {
	ID       int64  `json:"device_id"`
	Name     string `json:"device_name"`
	Type     string `json:"device_type"`
	IsActive bool   `json:"is_active"`
}

// Schedule is a recurring time window during which a device should be
// active. RepeatDays travels as a comma-joined string of weekday
// abbreviations ("Mon,Wed,Fri").
type Schedule struct {
	ID         int64  `json:"id"`
	DeviceID   int64  `json:"device_id,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	RepeatDays string `json:"repeat_days"`
	IsActive   bool   `json:"is_active"`
}

// MoodProfile is a named preset mapping device names to desired on/off
// states. A nil RoomID means the profile applies to every room.
type MoodProfile struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Color        string          `json:"color"`
	RoomID       *int64          `json:"room_id"`
	DeviceStates map[string]bool `json:"device_states"`
}

type MoodProfilesResponse struct {
	Moods []MoodProfile `json:"mood_profiles"`
}

type Challenge struct {
	ID                int64   `json:"id"`
	GoalType          string  `json:"goal_type"`
	TargetValue       float64 `json:"target_value"`
	Deadline          string  `json:"deadline"`
	CurrentValue      float64 `json:"current_value"`
	ParticipantsCount int     `json:"participants_count"`
}

type ChallengesResponse struct {
	Challenges []Challenge `json:"challenges"`
}

// LeaderboardEntry is one household member's standing. Rank is never sent
// by the backend; it is assigned client-side after sorting on points.
type LeaderboardEntry struct {
	UserID        json.Number `json:"user_id"`
	Name          string      `json:"name"`
	AvatarURL     string      `json:"avatar_url"`
	Role          Role        `json:"role"`
	Points        int         `json:"points"`
	IsCurrentUser bool        `json:"isCurrentUser"`
	Rank          int         `json:"-"`
}

type LeaderboardResponse struct {
	HouseholdName string             `json:"household_name"`
	Users         []LeaderboardEntry `json:"users"`
}

// EnergyPoint is one bucket of household usage. The cost fields are filled
// in client-side from the configured rates, never by the backend.
type EnergyPoint struct {
	Usage       float64 `json:"usage"`
	Cost        float64 `json:"cost,omitempty"`
	PeakCost    float64 `json:"peakCost,omitempty"`
	OffPeakCost float64 `json:"offPeakCost,omitempty"`
}

type EnergySummary struct {
	TotalUsage       float64 `json:"total_usage"`
	AverageUsage     float64 `json:"average_usage"`
	PeakDay          int     `json:"peak_day"`
	CarbonFootprint  float64 `json:"carbon_footprint"`
	TotalCost        float64 `json:"total_cost,omitempty"`
	AverageCost      float64 `json:"average_cost,omitempty"`
	PotentialSavings float64 `json:"potential_savings,omitempty"`
}

type HouseholdEnergy struct {
	Period  string        `json:"period"`
	Labels  []string      `json:"labels"`
	Data    []EnergyPoint `json:"data"`
	Summary EnergySummary `json:"summary"`
	Error   string        `json:"error,omitempty"`
}

type DeviceEnergy struct {
	DeviceID       int64   `json:"device_id"`
	DeviceName     string  `json:"device_name"`
	DeviceType     string  `json:"device_type,omitempty"`
	EnergyConsumed float64 `json:"energy_consumed"`
	RecordedAt     string  `json:"recorded_at"`
}

type HouseholdInsights struct {
	TotalEnergyConsumed  float64 `json:"total_energy_consumed"`
	TotalEnergyGenerated float64 `json:"total_energy_generated"`
	CarbonFootprint      float64 `json:"carbon_footprint"`
}

type EnergyInsights struct {
	HouseholdEnergy HouseholdInsights `json:"household_energy"`
}

type UserSettings struct {
	UserID      json.Number `json:"user_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Gender      string      `json:"gender"`
	DateOfBirth string      `json:"date_of_birth"`
}

type PrivacySettings struct {
	UserID           json.Number `json:"user_id"`
	DataSharing      bool        `json:"data_sharing"`
	ActivityTracking bool        `json:"activity_tracking"`
}

// HomeUser is a household member as shown on the manage-users screen.
type HomeUser struct {
	UserID json.Number `json:"user_id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   Role        `json:"role"`
}

type HomeUsersResponse struct {
	Users []HomeUser `json:"users"`
}
