package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"options-desk/internal/config"
)

// Output handles formatted output for the CLI.
type Output struct {
	writer   io.Writer
	jsonMode bool
}

// NewOutput creates a new Output instance. Color is used only when enabled
// in the configuration, writing to a terminal, and not in JSON mode.
func NewOutput(cmd *cobra.Command, ui config.UIConfig) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode || !ui.ColorEnabled || !isTerminal() {
		color.NoColor = true
	}
	return &Output{
		writer:   cmd.OutOrStdout(),
		jsonMode: jsonMode,
	}
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// IsJSON returns true if JSON output mode is enabled.
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// JSON outputs data as JSON.
func (o *Output) JSON(data interface{}) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Printf prints a formatted message.
func (o *Output) Printf(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format, args...)
}

// Println prints a message with newline.
func (o *Output) Println(args ...interface{}) {
	fmt.Fprintln(o.writer, args...)
}

// Success prints a message in green.
func (o *Output) Success(format string, args ...interface{}) {
	fmt.Fprintln(o.writer, color.GreenString(format, args...))
}

// Warning prints a message in yellow.
func (o *Output) Warning(format string, args ...interface{}) {
	fmt.Fprintln(o.writer, color.YellowString(format, args...))
}

// Error prints a message in red.
func (o *Output) Error(format string, args ...interface{}) {
	fmt.Fprintln(o.writer, color.RedString(format, args...))
}

// Header prints a cyan section header.
func (o *Output) Header(format string, args ...interface{}) {
	fmt.Fprintln(o.writer, color.CyanString(format, args...))
}
