package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mywatt/mywatt/models"
)

func TestEnrichCosts(t *testing.T) {
	c, _ := newTestClient(t, http.NewServeMux())
	energy := models.HouseholdEnergy{
		Period: "week",
		Data:   []models.EnergyPoint{{Usage: 10}},
		Summary: models.EnergySummary{
			TotalUsage:   10,
			AverageUsage: 5,
		},
	}
	c.EnrichCosts(&energy)

	assert.Equal(t, 1.2, energy.Data[0].Cost)
	assert.Equal(t, 1.8, energy.Data[0].PeakCost)
	assert.Equal(t, 0.8, energy.Data[0].OffPeakCost)
	assert.Equal(t, 1.2, energy.Summary.TotalCost)
	assert.Equal(t, 0.6, energy.Summary.AverageCost)
	assert.Equal(t, 0.18, energy.Summary.PotentialSavings)
}

func TestPotentialSavingsFraction(t *testing.T) {
	// A total cost of 10.00 with the 15% savings fraction yields 1.50.
	c, _ := newTestClient(t, http.NewServeMux())
	energy := models.HouseholdEnergy{
		Summary: models.EnergySummary{TotalUsage: 10.0 / testRates.Energy},
	}
	c.EnrichCosts(&energy)
	assert.InDelta(t, 10.0, energy.Summary.TotalCost, 0.005)
	assert.InDelta(t, 1.5, energy.Summary.PotentialSavings, 0.005)
}

func TestPeakPeriodLabel(t *testing.T) {
	day := &models.HouseholdEnergy{
		Period:  "day",
		Labels:  []string{"00", "06", "12", "18"},
		Summary: models.EnergySummary{PeakDay: 2},
	}
	assert.Equal(t, "12 Hour", PeakPeriodLabel(day))

	week := &models.HouseholdEnergy{
		Period:  "week",
		Summary: models.EnergySummary{PeakDay: 0},
	}
	assert.Equal(t, "Sunday", PeakPeriodLabel(week))
	week.Summary.PeakDay = 6
	assert.Equal(t, "Saturday", PeakPeriodLabel(week))

	month := &models.HouseholdEnergy{
		Period:  "month",
		Labels:  []string{"1", "8", "15", "22"},
		Summary: models.EnergySummary{PeakDay: 3},
	}
	assert.Equal(t, "Day 22", PeakPeriodLabel(month))

	quarter := &models.HouseholdEnergy{
		Period:  "quarter",
		Summary: models.EnergySummary{PeakDay: 4},
	}
	assert.Equal(t, "Week 5", PeakPeriodLabel(quarter))

	outOfRange := &models.HouseholdEnergy{
		Period:  "day",
		Labels:  []string{"00"},
		Summary: models.EnergySummary{PeakDay: 9},
	}
	assert.Equal(t, "N/A", PeakPeriodLabel(outOfRange))
}

func TestHouseholdEnergyEnrichesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/household_energy", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("household_id"))
		assert.Equal(t, "week", r.URL.Query().Get("period"))
		json.NewEncoder(w).Encode(models.HouseholdEnergy{
			Labels:  []string{"Sun", "Mon"},
			Data:    []models.EnergyPoint{{Usage: 4}, {Usage: 6}},
			Summary: models.EnergySummary{TotalUsage: 10, AverageUsage: 5, PeakDay: 1},
		})
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	energy, err := c.HouseholdEnergy(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, "week", energy.Period)
	assert.Equal(t, 0.48, energy.Data[0].Cost)
	assert.Equal(t, 1.2, energy.Summary.TotalCost)
	assert.Equal(t, "Monday", PeakPeriodLabel(energy))
}

func TestDevicesEnergyConcurrentWithFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/device_energy/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/1") {
			json.NewEncoder(w).Encode([]models.DeviceEnergy{
				{DeviceID: 1, DeviceName: "Lamp", EnergyConsumed: 12.5},
			})
			return
		}
		// Every other device fails and must fall back to an estimate.
		w.WriteHeader(http.StatusInternalServerError)
	})
	c, sess := newTestClient(t, mux)
	signIn(sess)
	selectHouse(sess)

	devices := []models.Device{
		{ID: 1, Name: "Lamp", Type: "light", IsActive: true},
		{ID: 2, Name: "Heater", Type: "heater", IsActive: true},
		{ID: 3, Name: "TV", Type: "tv", IsActive: false},
	}
	readings := c.DevicesEnergy(context.Background(), devices)
	require.Len(t, readings, 3)

	// Results keep the device order.
	assert.Equal(t, int64(1), readings[0].DeviceID)
	assert.Equal(t, 12.5, readings[0].EnergyConsumed)

	// Active device with a failed fetch: climate-band estimate.
	assert.Equal(t, int64(2), readings[1].DeviceID)
	assert.GreaterOrEqual(t, readings[1].EnergyConsumed, 500.0)
	assert.LessOrEqual(t, readings[1].EnergyConsumed, 1500.0)

	// Inactive device with a failed fetch: zero estimate.
	assert.Equal(t, int64(3), readings[2].DeviceID)
	assert.Equal(t, 0.0, readings[2].EnergyConsumed)
}

func TestTotalEnergySumsActiveDevices(t *testing.T) {
	devices := []models.Device{
		{ID: 1, IsActive: true},
		{ID: 2, IsActive: false},
		{ID: 3, IsActive: true},
	}
	readings := []models.DeviceEnergy{
		{DeviceID: 1, EnergyConsumed: 10.06},
		{DeviceID: 2, EnergyConsumed: 100},
		{DeviceID: 3, EnergyConsumed: 5.01},
	}
	assert.Equal(t, 15.1, TotalEnergy(devices, readings))
}

func TestPollRunsUntilCancelled(t *testing.T) {
	var runs int64
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		Poll(ctx, 5*time.Millisecond, func(context.Context) {
			atomic.AddInt64(&runs, 1)
		})
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) >= 3
	}, time.Second, time.Millisecond, "poller should fire immediately and keep ticking")

	cancel()
	<-done

	stopped := atomic.LoadInt64(&runs)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt64(&runs), "no ticks after cancellation")
}
