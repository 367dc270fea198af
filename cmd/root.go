package cmd

import (
	"fmt"
	"net"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wave-app/wave/internal/audio"
	"github.com/wave-app/wave/internal/calendar"
	"github.com/wave-app/wave/internal/classify"
	"github.com/wave-app/wave/internal/config"
	"github.com/wave-app/wave/internal/habit"
	"github.com/wave-app/wave/internal/mode"
	"github.com/wave-app/wave/internal/theme"
	"github.com/wave-app/wave/internal/tui"
	"github.com/wave-app/wave/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd runs the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:     "wave",
	Short:   "A dual-mode habit tracker for your terminal",
	Long: `Wave is a terminal habit tracker with two personas, reflective and
energetic. The theme animates between them, and a journal classifier
suggests which one fits your day.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runApp(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", Version, BuildTime)
	rootCmd.Flags().Int("port", 0, "HTTP API port (0 = settings/auto-discover)")
}

func runApp(cmd *cobra.Command) error {
	if err := config.EnsureDirs(); err != nil {
		return err
	}
	utils.ConfigureDebug(config.GetLogsDir())

	settings, err := config.LoadSettings()
	if err != nil {
		utils.Debug("settings unreadable, using defaults: %v", err)
		settings = config.DefaultSettings()
	}
	utils.PruneLogs(config.GetLogsDir(), settings.General.LogRetentionCount)

	isMaster, err := AcquireLock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if !isMaster {
		fmt.Fprintln(os.Stderr, "Error: wave is already running.")
		fmt.Fprintln(os.Stderr, "Use 'wave add' or 'wave done' to talk to the active instance.")
		os.Exit(1)
	}
	defer func() {
		if err := ReleaseLock(); err != nil {
			utils.Debug("error releasing lock: %v", err)
		}
	}()

	store, err := habit.Open(config.GetDBPath())
	if err != nil {
		return fmt.Errorf("opening habit database: %w", err)
	}
	defer store.Close()

	ctrl := theme.NewController(config.PreferenceFile{}, audio.Noop{})

	classifier := classify.NewService(remoteFromSettings(settings))

	scheduler := calendar.NewScheduler()

	// Bind the API listener before the TUI starts so startup failures
	// are visible on stderr.
	port := settings.General.ListenPort
	if flagPort, _ := cmd.Flags().GetInt("port"); flagPort > 0 {
		port = flagPort
	}

	var listener net.Listener
	if port > 0 {
		listener, err = net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err != nil {
			return fmt.Errorf("could not bind to port %d: %w", port, err)
		}
	} else {
		port, listener = findAvailablePort(defaultPortBase)
		if listener == nil {
			return fmt.Errorf("could not find an available port")
		}
	}

	saveActivePort(port)
	defer removeActivePort()

	program := tea.NewProgram(tui.NewModel(ctrl, store, classifier), tea.WithAltScreen())

	// Mode flips from any source (HTTP, journal) animate the TUI.
	ctrl.Subscribe(func(m mode.Mode) {
		program.Send(tui.ModeChangedMsg{Mode: m})
	})

	api := NewAPIHandler(store, scheduler, classifier, ctrl, port)
	api.notify = func() {
		program.Send(tui.HabitsChangedMsg{})
	}
	go func() {
		if err := api.Serve(listener); err != nil {
			utils.Debug("http server stopped: %v", err)
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
