package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wave-app/wave/internal/config"
	"github.com/wave-app/wave/internal/habit"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `List today's habits, or every habit with --all. Filter by category with --type.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runList(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	listCmd.Flags().Bool("all", false, "list every habit, not just today's")
	listCmd.Flags().String("type", "", "filter by habit type")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command) error {
	all, _ := cmd.Flags().GetBool("all")
	typeStr, _ := cmd.Flags().GetString("type")
	if typeStr != "" {
		if _, err := habit.ParseType(typeStr); err != nil {
			return err
		}
	}

	habits, err := fetchHabits(all, typeStr)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits. Add one with 'wave add'.")
		return nil
	}
	for _, h := range habits {
		printHabit(h)
	}
	return nil
}

func fetchHabits(all bool, typeStr string) ([]habit.Habit, error) {
	if port := readActivePort(); port > 0 && serverAlive(port) {
		path := "/api/habits"
		if !all {
			path = "/api/habits/day/" + time.Now().Weekday().String()
		}
		if typeStr != "" {
			path += "?type=" + typeStr
		}
		var habits []habit.Habit
		if err := getFromServer(port, path, &habits); err != nil {
			return nil, err
		}
		if !all && typeStr != "" {
			habits = filterByType(habits, habit.Type(typeStr))
		}
		return habits, nil
	}

	store, err := habit.Open(config.GetDBPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if all {
		return store.List(habit.Type(typeStr))
	}
	habits, err := store.ForDay(time.Now().Weekday().String(), "")
	if err != nil {
		return nil, err
	}
	if typeStr != "" {
		habits = filterByType(habits, habit.Type(typeStr))
	}
	return habits, nil
}

func filterByType(habits []habit.Habit, t habit.Type) []habit.Habit {
	var out []habit.Habit
	for _, h := range habits {
		if h.Type == t {
			out = append(out, h)
		}
	}
	return out
}

func printHabit(h habit.Habit) {
	line := fmt.Sprintf("#%d  %-30s %s", h.ID, h.Desc, h.Type)
	if h.Time != "" {
		line += "  at " + h.Time
	}
	if len(h.Days) > 0 {
		line += "  [" + strings.Join(h.Days, ", ") + "]"
	}
	fmt.Println(line)
}
