package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wave-app/wave/internal/config"
	"github.com/wave-app/wave/internal/habit"
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new habit",
	Long:  `Add a habit to the tracker. If a wave instance is running the habit is sent to it; otherwise the database is updated directly.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdd(cmd, strings.Join(args, " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	addCmd.Flags().String("type", string(habit.TypeHealth), "habit type (Health, Learning, Creativity, Productivity)")
	addCmd.Flags().Int("priority", 1, "priority, higher sorts first")
	addCmd.Flags().String("time", "", "clock time like 08:00")
	addCmd.Flags().StringSlice("days", nil, "weekday names the habit is scheduled on")
	addCmd.Flags().StringSlice("periods", nil, "time-of-day slots (Morning, Afternoon, Evening)")
	addCmd.Flags().String("remarks", "", "free-form notes")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, desc string) error {
	typeStr, _ := cmd.Flags().GetString("type")
	priority, _ := cmd.Flags().GetInt("priority")
	clock, _ := cmd.Flags().GetString("time")
	days, _ := cmd.Flags().GetStringSlice("days")
	periodNames, _ := cmd.Flags().GetStringSlice("periods")
	remarks, _ := cmd.Flags().GetString("remarks")

	habitType, err := habit.ParseType(typeStr)
	if err != nil {
		return err
	}

	periods := make([]habit.Period, 0, len(periodNames))
	for _, name := range periodNames {
		periods = append(periods, habit.Period{Name: name})
	}

	h := habit.Habit{
		Desc:     desc,
		Priority: priority,
		Type:     habitType,
		Time:     clock,
		Remarks:  remarks,
		Days:     days,
		Periods:  periods,
	}
	if err := h.Validate(); err != nil {
		return err
	}

	if port := readActivePort(); port > 0 && serverAlive(port) {
		var resp struct {
			ID int64 `json:"id"`
		}
		if err := postToServer(port, "/api/habits", h, &resp); err != nil {
			return err
		}
		fmt.Printf("Added habit #%d: %s\n", resp.ID, desc)
		return nil
	}

	if err := config.EnsureDirs(); err != nil {
		return err
	}
	store, err := habit.Open(config.GetDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Create(&h)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit #%d: %s\n", id, desc)
	return nil
}
