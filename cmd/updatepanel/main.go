// cmd/updatepanel/main.go
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rusenback/updatepanel/internal/clipboard"
	"github.com/rusenback/updatepanel/internal/config"
	"github.com/rusenback/updatepanel/internal/feed"
	"github.com/rusenback/updatepanel/internal/host"
	"github.com/rusenback/updatepanel/internal/logging"
	"github.com/rusenback/updatepanel/internal/panel"
	"github.com/rusenback/updatepanel/internal/source"
)

var (
	configPath string
	sourceKind string
	wsURL      string
	filePath   string
	dockerHost string
)

var rootCmd = &cobra.Command{
	Use:   "updatepanel",
	Short: "Live updates panel for a running process",
	Long: `updatepanel shows a live feed of status updates in a panel docked to
the corner of the terminal. Updates come from docker, a websocket feed,
newline-delimited JSON on stdin or a file, or a built-in demo.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/updatepanel/config.toml)")
	rootCmd.Flags().StringVar(&sourceKind, "source", "", "update source: docker, websocket, jsonl or demo")
	rootCmd.Flags().StringVar(&wsURL, "url", "", "websocket endpoint for the websocket source")
	rootCmd.Flags().StringVar(&filePath, "file", "", "JSON lines file for the jsonl source, - for stdin")
	rootCmd.Flags().StringVar(&dockerHost, "docker-host", "", "docker engine address")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.Log.Path, cfg.Log.Level); err != nil {
		return err
	}
	defer logging.Close()

	clip, err := clipboard.New(cfg.Panel.Clipboard)
	if err != nil {
		return err
	}

	src, closer, err := source.New(cfg)
	if err != nil {
		if cfg.Source.Kind == "docker" {
			fmt.Fprintln(os.Stderr, "Make sure Docker is running and you can reach its socket.")
		}
		return err
	}
	defer closer.Close()

	m := host.New(src, feed.New(cfg.Feed.Limit),
		[]panel.Option{
			panel.WithClipboard(clip),
			panel.WithTimeFormatter(timeFormatter(cfg.Panel)),
			panel.WithStatusDelay(cfg.Panel.StatusDelay),
		},
		host.WithPanelSize(cfg.Panel.Width, cfg.Panel.Height),
	)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if readsStdin(cfg) {
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// loadConfig reads file and env config, applies flags and only then
// validates, so a flag can replace a bad value from the file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyFlags lets explicitly set flags win over file and env config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Kind = sourceKind
	}
	if flags.Changed("url") {
		cfg.Source.URL = wsURL
	}
	if flags.Changed("file") {
		cfg.Source.Path = filePath
	}
	if flags.Changed("docker-host") {
		cfg.Docker.Host = dockerHost
	}
}

func timeFormatter(p config.PanelConfig) panel.TimeFormatter {
	if p.TimeStyle == "relative" {
		return panel.RelativeFormatter(time.Now)
	}
	return panel.ClockFormatter(p.TimeLayout)
}

// readsStdin reports whether updates arrive on stdin, in which case
// keyboard input has to come from the terminal device.
func readsStdin(cfg config.Config) bool {
	return cfg.Source.Kind == "jsonl" && (cfg.Source.Path == "" || cfg.Source.Path == "-")
}
