package client

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mywatt/mywatt/models"
)

// weekdayNames maps the backend's peak_day index for weekly data, 0=Sunday.
var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HouseholdEnergy fetches one period of usage for the selected household
// and enriches it with cost figures derived from the configured rates.
// Valid periods are "day", "week", "month" and "quarter".
func (c *Client) HouseholdEnergy(ctx context.Context, period string) (*models.HouseholdEnergy, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	var energy models.HouseholdEnergy
	query := url.Values{
		"household_id": {householdID},
		"period":       {period},
	}
	if err := c.get(ctx, "/household_energy", query, &energy); err != nil {
		return nil, err
	}
	if energy.Period == "" {
		energy.Period = period
	}
	c.EnrichCosts(&energy)
	return &energy, nil
}

// EnrichCosts fills in the cost fields the backend never sends. Per-bucket
// costs come from standard, peak and off-peak rates; the summary gains a
// total, an average and the potential savings from shifting usage.
func (c *Client) EnrichCosts(energy *models.HouseholdEnergy) {
	for i := range energy.Data {
		usage := energy.Data[i].Usage
		energy.Data[i].Cost = round2(usage * c.rates.Energy)
		energy.Data[i].PeakCost = round2(usage * c.rates.Peak)
		energy.Data[i].OffPeakCost = round2(usage * c.rates.OffPeak)
	}
	energy.Summary.TotalCost = round2(energy.Summary.TotalUsage * c.rates.Energy)
	energy.Summary.AverageCost = round2(energy.Summary.AverageUsage * c.rates.Energy)
	energy.Summary.PotentialSavings = round2(energy.Summary.TotalUsage * c.rates.Energy * c.rates.SavingsFraction)
}

// PeakPeriodLabel renders the summary's peak index as a human label for the
// given period: the bucket's hour label for daily data, a weekday name
// (0=Sunday) for weekly, a day of month for monthly and a week number for
// quarterly data.
func PeakPeriodLabel(energy *models.HouseholdEnergy) string {
	peak := energy.Summary.PeakDay
	switch energy.Period {
	case "day":
		if peak >= 0 && peak < len(energy.Labels) {
			return energy.Labels[peak] + " Hour"
		}
	case "week":
		if peak >= 0 && peak < len(weekdayNames) {
			return weekdayNames[peak]
		}
	case "month":
		if peak >= 0 && peak < len(energy.Labels) {
			return "Day " + energy.Labels[peak]
		}
	case "quarter":
		return fmt.Sprintf("Week %d", peak+1)
	}
	return "N/A"
}

// EnergyInsights fetches the pre-aggregated insight figures for the
// selected household.
func (c *Client) EnergyInsights(ctx context.Context) (*models.EnergyInsights, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	var insights models.EnergyInsights
	query := url.Values{"household_id": {householdID}}
	if err := c.get(ctx, "/energy_insights", query, &insights); err != nil {
		return nil, err
	}
	return &insights, nil
}

// DeviceEnergy fetches recent readings for one device.
func (c *Client) DeviceEnergy(ctx context.Context, deviceID int64, startDate, endDate string, limit int) ([]models.DeviceEnergy, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return nil, err
	}
	query := url.Values{
		"household_id": {householdID},
		"start_date":   {startDate},
		"end_date":     {endDate},
		"limit":        {strconv.Itoa(limit)},
	}
	var readings []models.DeviceEnergy
	err = c.get(ctx, "/device_energy/"+strconv.FormatInt(deviceID, 10), query, &readings)
	if err != nil {
		return nil, err
	}
	return readings, nil
}

// DevicesEnergy fetches the latest reading for every device concurrently
// and waits for all of them. A device whose fetch fails contributes an
// estimated figure instead of failing the whole aggregation: the estimate
// is zero for inactive devices and a category-band wattage otherwise.
func (c *Client) DevicesEnergy(ctx context.Context, devices []models.Device) []models.DeviceEnergy {
	householdID, err := c.requireHousehold()
	if err != nil {
		// With no household there is nothing to fetch; every entry is an
		// estimate so the room view still renders.
		results := make([]models.DeviceEnergy, len(devices))
		for i, d := range devices {
			results[i] = c.estimatedEnergy(d)
		}
		return results
	}

	results := make([]models.DeviceEnergy, len(devices))
	var g errgroup.Group
	for i := range devices {
		i, device := i, devices[i]
		g.Go(func() error {
			query := url.Values{
				"household_id": {householdID},
				"limit":        {"1"},
			}
			var readings []models.DeviceEnergy
			err := c.get(ctx, "/device_energy/"+strconv.FormatInt(device.ID, 10), query, &readings)
			if err != nil || len(readings) == 0 {
				if err != nil {
					c.log.Debug("device energy fetch failed, estimating", "device_id", device.ID, "error", err)
				}
				results[i] = c.estimatedEnergy(device)
				return nil
			}
			results[i] = readings[0]
			return nil
		})
	}
	g.Wait()
	return results
}

func (c *Client) estimatedEnergy(device models.Device) models.DeviceEnergy {
	var estimate float64
	if device.IsActive {
		category := InferCategory(device.Type, strconv.FormatInt(device.ID, 10))
		estimate = EstimateUsage(category)
	}
	return models.DeviceEnergy{
		DeviceID:       device.ID,
		DeviceName:     device.Name,
		DeviceType:     device.Type,
		EnergyConsumed: estimate,
		RecordedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// TotalEnergy sums the readings of active devices, rounded to one decimal
// the way the room screen displays it.
func TotalEnergy(devices []models.Device, readings []models.DeviceEnergy) float64 {
	byID := make(map[int64]float64, len(readings))
	for _, r := range readings {
		byID[r.DeviceID] = r.EnergyConsumed
	}
	var total float64
	for _, d := range devices {
		if d.IsActive {
			total += byID[d.ID]
		}
	}
	return math.Round(total*10) / 10
}

// Poll runs fn immediately and then on every interval tick until ctx is
// cancelled. The room screen uses it for its periodic energy refresh; tying
// the context to the screen's lifetime stops the timer on unmount.
func Poll(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	fn(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
