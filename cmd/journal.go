package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wave-app/wave/internal/classify"
	"github.com/wave-app/wave/internal/clipboard"
	"github.com/wave-app/wave/internal/config"
	"github.com/wave-app/wave/internal/mode"
)

var journalCmd = &cobra.Command{
	Use:   "journal [text]",
	Short: "Classify a journal entry and suggest a mode",
	Long: `Analyze journal text and print which mode it suggests.
Text comes from the arguments, from stdin when piped, or from the
clipboard as a last resort.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runJournal(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
}

func runJournal(args []string) error {
	text := journalText(args)
	if text == "" {
		return fmt.Errorf("no journal text: pass it as an argument, pipe it in, or copy it to the clipboard")
	}

	if port := readActivePort(); port > 0 && serverAlive(port) {
		var resp struct {
			SuggestedMode string  `json:"suggested_mode"`
			Confidence    float64 `json:"confidence"`
			Analysis      string  `json:"analysis"`
		}
		if err := postToServer(port, "/api/analyze", map[string]string{"text": text}, &resp); err != nil {
			return err
		}
		res := classify.Result{Confidence: resp.Confidence, Rationale: resp.Analysis}
		if resp.SuggestedMode != "" {
			m, err := mode.Parse(resp.SuggestedMode)
			if err != nil {
				return err
			}
			res.SuggestedMode = &m
		}
		fmt.Println(classify.DescribeSuggestion(res))
		return nil
	}

	settings, err := config.LoadSettings()
	if err != nil {
		settings = config.DefaultSettings()
	}
	classifier := classify.NewService(remoteFromSettings(settings))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := classifier.Analyze(ctx, text)
	if err != nil {
		return err
	}
	fmt.Println(classify.DescribeSuggestion(res))
	return nil
}

// journalText resolves the entry text: arguments first, then piped
// stdin, then the clipboard.
func journalText(args []string) string {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " "))
	}
	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, 1<<20))
		if err == nil {
			if text := strings.TrimSpace(string(data)); text != "" {
				return text
			}
		}
	}
	return clipboard.ReadJournalText()
}
