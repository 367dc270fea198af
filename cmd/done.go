package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wave-app/wave/internal/config"
	"github.com/wave-app/wave/internal/habit"
)

var doneCmd = &cobra.Command{
	Use:   "done <habit-id>",
	Short: "Mark a habit done for today",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDone(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	doneCmd.Flags().String("notes", "", "note to attach to the completion")
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid habit id %q", arg)
	}
	notes, _ := cmd.Flags().GetString("notes")

	if port := readActivePort(); port > 0 && serverAlive(port) {
		var resp struct {
			ID    int64       `json:"id"`
			Stats habit.Stats `json:"stats"`
		}
		payload := map[string]any{"habit_id": id, "notes": notes}
		if err := postToServer(port, "/api/completions", payload, &resp); err != nil {
			return err
		}
		printStreak(resp.Stats)
		return nil
	}

	store, err := habit.Open(config.GetDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.AddCompletion(id, time.Now(), notes); err != nil {
		return err
	}
	stats, err := store.Stats(id)
	if err != nil {
		return err
	}
	printStreak(stats)
	return nil
}

func printStreak(stats habit.Stats) {
	fmt.Printf("Done. %d completions total, %d-day streak.\n", stats.Total, stats.StreakDays)
}
