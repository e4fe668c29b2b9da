package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.td.teradata.com/sandbox/touch-ctl/internal/config"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/chooser"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/display"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/logging"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/touch"
)

var cfgFile string
var vertical bool
var timeoutMS int

var rootCmd = &cobra.Command{
	Use:   "touch",
	Short: "touch presents on-screen push buttons on a touch capable terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var chooseCmd = &cobra.Command{
	Use:   "choose label [label]...",
	Short: "present the labels as buttons and print the selected one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, err := present(args)
		if err != nil {
			return err
		}
		// The terminal is back in cooked mode by now; the result is the
		// command's only stdout output.
		fmt.Println(label)
		return nil
	},
}

// Execute bootstraps the viper
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file for touch")
	chooseCmd.Flags().BoolVarP(&vertical, "vertical", "v", false, "stack the buttons vertically instead of a bottom strip")
	chooseCmd.Flags().IntVarP(&timeoutMS, "timeout", "t", 0, "abandon the wait after this many milliseconds")
	rootCmd.AddCommand(chooseCmd)
	return rootCmd.Execute()
}

// present owns the terminal for the duration of one selection: raw mode and
// touch reporting on the way in, restored on every way out.
func present(labels []string) (string, error) {
	lg, err := logging.New(config.CLIConfig.Log)
	if err != nil {
		return "", err
	}
	defer lg.Close()

	term, err := display.New()
	if err != nil {
		return "", err
	}

	if err := term.RawMode(); err != nil {
		return "", err
	}
	if touch.Selected() == touch.SourceTerm {
		term.EnableMouse()
		defer term.DisableMouse()
	}
	term.HideCursor()
	term.Cls()
	defer func() {
		term.Cls()
		term.ShowCursor()
		_ = term.Present()
		_ = term.Restore()
	}()

	timeout := time.Duration(timeoutMS) * time.Millisecond
	if timeoutMS <= 0 && config.CLIConfig.Touch != nil {
		timeout = time.Duration(config.CLIConfig.Touch.TimeoutMS) * time.Millisecond
	}

	orientation := chooser.Horizontal
	if vertical {
		orientation = chooser.Vertical
	}

	return chooser.New(term, lg).ChooseLabels(labels, chooser.Options{
		Orientation: orientation,
		Timeout:     timeout,
	})
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.NewConfig(cfgFile); err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}
}
