package cmd

import (
	"context"
	"fmt"
	"strings"

	ishell "github.com/abiosoft/ishell"

	"github.com/mywatt/mywatt/client"
)

// energyCommands covers the dashboards: usage, costs, insights, the
// leaderboard, challenges and account settings.
func energyCommands() []Command {
	return []Command{
		{
			Name: "energy",
			Desc: "Show household energy usage and costs",
			Func: func(c *ishell.Context) {
				var period string
				for {
					c.Print("Period (day/week/month/quarter): ")
					period = strings.ToLower(strings.TrimSpace(c.ReadLine()))
					if period == "day" || period == "week" || period == "month" || period == "quarter" {
						break
					}
					c.Println("Please enter day, week, month or quarter.")
				}
				energy, err := api.HouseholdEnergy(context.Background(), period)
				if err != nil {
					reportError(err)
					return
				}
				rates := api.Rates()
				c.Printf("Total usage:       %.1f kWh\n", energy.Summary.TotalUsage)
				c.Printf("Average usage:     %.1f kWh\n", energy.Summary.AverageUsage)
				c.Printf("Peak period:       %s\n", client.PeakPeriodLabel(energy))
				c.Printf("Carbon footprint:  %.1f kg CO2\n", energy.Summary.CarbonFootprint)
				c.Printf("Total cost:        AED %.2f (at %.2f/kWh)\n", energy.Summary.TotalCost, rates.Energy)
				c.Printf("Potential savings: AED %.2f\n", energy.Summary.PotentialSavings)
			},
		},
		{
			Name: "insights",
			Desc: "Show household energy insights",
			Func: func(c *ishell.Context) {
				insights, err := api.EnergyInsights(context.Background())
				if err != nil {
					reportError(err)
					return
				}
				he := insights.HouseholdEnergy
				c.Printf("Energy consumed:  %.1f kWh\n", he.TotalEnergyConsumed)
				c.Printf("Energy generated: %.1f kWh\n", he.TotalEnergyGenerated)
				c.Printf("Carbon footprint: %.1f kg CO2\n", he.CarbonFootprint)
			},
		},
		{
			Name: "report",
			Desc: "Get the download link for the household energy report",
			Func: func(c *ishell.Context) {
				url, err := api.ReportURL()
				if err != nil {
					reportError(err)
					return
				}
				c.Println("Open this link to download the report:")
				c.Println("  " + highlight(url))
			},
		},
		{
			Name: "watch",
			Desc: "Watch a room's energy usage, refreshed periodically",
			Func: func(c *ishell.Context) {
				roomID := readInt(c, "Enter Room ID: ")
				ctx, cancel := context.WithCancel(context.Background())
				done := make(chan struct{})
				go func() {
					defer close(done)
					client.Poll(ctx, api.PollInterval(), func(ctx context.Context) {
						devices, err := api.ListDevices(ctx, roomID)
						if err != nil {
							if ctx.Err() == nil {
								reportError(err)
							}
							return
						}
						readings := api.DevicesEnergy(ctx, devices)
						total := client.TotalEnergy(devices, readings)
						c.Printf("Current usage: %.1f W across %d devices\n", total, len(devices))
					})
				}()
				c.Println("Press Enter to stop watching.")
				c.ReadLine()
				cancel()
				<-done
			},
		},
		{
			Name: "leaderboard",
			Desc: "Show the household leaderboard",
			Func: func(c *ishell.Context) {
				var timeframe string
				for {
					c.Print("Timeframe (week/month/all): ")
					timeframe = strings.ToLower(strings.TrimSpace(c.ReadLine()))
					if timeframe == "week" || timeframe == "month" || timeframe == "all" {
						break
					}
					c.Println("Please enter week, month or all.")
				}
				board, err := api.Leaderboard(context.Background(), timeframe)
				if err != nil {
					reportError(err)
					return
				}
				if board.HouseholdName != "" {
					c.Println(board.HouseholdName + " leaderboard:")
				}
				for _, entry := range board.Users {
					line := fmt.Sprintf("  #%d %s - %d points", entry.Rank, entry.Name, entry.Points)
					if entry.IsCurrentUser {
						line = highlight(line + "  (you)")
					}
					c.Println(line)
				}
				if rank := client.CurrentUserRank(board.Users); rank > 0 {
					c.Printf("Your rank: #%d\n", rank)
				}
			},
		},
		{
			Name: "challenges",
			Desc: "Show household challenges",
			Func: func(c *ishell.Context) {
				challenges, err := api.Challenges(context.Background())
				if err != nil {
					reportError(err)
					return
				}
				if len(challenges) == 0 {
					c.Println("No challenges yet. Use 'addchallenge' to start one.")
					return
				}
				for _, ch := range challenges {
					c.Printf("  %d: %s %.1f/%.1f (%.0f%%) by %s, %d participants\n",
						ch.ID, ch.GoalType, ch.CurrentValue, ch.TargetValue,
						client.ChallengeProgress(ch), ch.Deadline, ch.ParticipantsCount)
				}
			},
		},
		{
			Name: "addchallenge",
			Desc: "Create a household challenge",
			Func: func(c *ishell.Context) {
				var goal string
				for {
					c.Print("Goal type (Consumption/Cost/Carbon): ")
					goal = strings.TrimSpace(c.ReadLine())
					if goal == "Consumption" || goal == "Cost" || goal == "Carbon" {
						break
					}
					c.Println("Please enter Consumption, Cost or Carbon.")
				}
				target := readInt(c, "Enter Target Value: ")
				deadline := readNonEmpty(c, "Enter Deadline (YYYY-MM-DD): ")
				err := api.CreateChallenge(context.Background(), goal, float64(target), deadline)
				if err != nil {
					reportError(err)
					return
				}
				c.Println("Challenge created.")
			},
		},
		{
			Name: "profile",
			Desc: "Show and update your profile",
			Func: func(c *ishell.Context) {
				settings, err := api.UserSettings(context.Background())
				if err != nil {
					reportError(err)
					return
				}
				c.Printf("Name:  %s\nEmail: %s\n", settings.Name, settings.Email)
				if !readYesNo(c, "Update your profile? (yes/no): ") {
					return
				}
				c.Print("New Name (blank to keep): ")
				name := strings.TrimSpace(c.ReadLine())
				c.Print("New Email (blank to keep): ")
				email := strings.TrimSpace(c.ReadLine())
				if err := api.UpdateAccount(context.Background(), name, email); err != nil {
					reportError(err)
					return
				}
				c.Println("Profile updated.")
			},
		},
		{
			Name: "privacy",
			Desc: "Update your privacy settings",
			Func: func(c *ishell.Context) {
				dataSharing := readYesNo(c, "Allow data sharing? (yes/no): ")
				activityTracking := readYesNo(c, "Allow activity tracking? (yes/no): ")
				err := api.UpdatePrivacySettings(context.Background(), dataSharing, activityTracking)
				if err != nil {
					reportError(err)
					return
				}
				c.Println("Privacy settings updated.")
			},
		},
		{
			Name: "darkmode",
			Desc: "Toggle the dark theme preference",
			Func: func(c *ishell.Context) {
				next := !api.Session().DarkMode()
				api.Session().SetDarkMode(next)
				if next {
					c.Println("Dark mode on.")
				} else {
					c.Println("Dark mode off.")
				}
			},
		},
	}
}
