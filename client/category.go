package client

import (
	"math/rand"
	"strconv"
	"strings"
)

// Category is the coarse device class used for icons and usage estimates.
// The backend does not return it on every path, so it is inferred from the
// device's type string client-side.
type Category string

const (
	CategoryLight         Category = "light"
	CategoryClimate       Category = "climate"
	CategoryEntertainment Category = "entertainment"
	CategoryPower         Category = "power"
	CategorySecurity      Category = "security"
	CategoryOther         Category = "other"
)

// hashCategories is the fallback table indexed by device id. Order matters:
// changing it changes which category a given id lands on.
var hashCategories = []Category{
	CategoryLight,
	CategoryClimate,
	CategoryEntertainment,
	CategoryPower,
	CategorySecurity,
}

// InferCategory classifies a device from its type string. Unrecognized
// types fall back to a hash of the device id so the same device always
// lands on the same category across calls. The fallback treats a non-numeric
// or zero id as its first byte, preserving the established assignments, and
// folds negative ids into the table range rather than trusting the backend
// to only hand out positive ones.
func InferCategory(deviceType, deviceID string) Category {
	t := strings.ToLower(deviceType)
	switch {
	case strings.Contains(t, "light"):
		return CategoryLight
	case strings.Contains(t, "heat"), strings.Contains(t, "ac"),
		strings.Contains(t, "air"), strings.Contains(t, "therm"):
		return CategoryClimate
	case strings.Contains(t, "tv"), strings.Contains(t, "speaker"),
		strings.Contains(t, "media"):
		return CategoryEntertainment
	case strings.Contains(t, "plug"), strings.Contains(t, "outlet"),
		strings.Contains(t, "power"):
		return CategoryPower
	case strings.Contains(t, "camera"), strings.Contains(t, "sensor"),
		strings.Contains(t, "alarm"):
		return CategorySecurity
	}

	id, err := strconv.ParseInt(deviceID, 10, 64)
	if err != nil || id == 0 {
		if deviceID == "" {
			return hashCategories[0]
		}
		id = int64(deviceID[0])
	}
	idx := id % int64(len(hashCategories))
	if idx < 0 {
		idx += int64(len(hashCategories))
	}
	return hashCategories[idx]
}

// estimateRanges gives the wattage band each category draws when a device
// reports no energy data of its own.
var estimateRanges = map[Category][2]float64{
	CategoryLight:         {5, 15},
	CategoryClimate:       {500, 1500},
	CategoryEntertainment: {50, 200},
	CategoryPower:         {10, 50},
	CategorySecurity:      {1, 10},
}

// EstimateUsage produces a plausible wattage figure for a device of the
// given category. Used only as a fallback when the energy endpoint fails
// for that device.
func EstimateUsage(category Category) float64 {
	band, ok := estimateRanges[category]
	if !ok {
		band = [2]float64{5, 20}
	}
	return band[0] + rand.Float64()*(band[1]-band[0])
}
