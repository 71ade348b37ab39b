package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Persistent flag names shared by every command.
const (
	flagFormat  = "format"
	flagVerbose = "verbose"
)

// globals holds the values of the persistent flags.
type globals struct {
	format  string
	verbose bool
}

// AddGlobalFlags registers the persistent --format and --verbose flags on root.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String(flagFormat, FormatJSON, "Output format: json, text")
	root.PersistentFlags().BoolP(flagVerbose, "v", false, "Log every API request to stderr")
}

// readGlobals reads the persistent flags. Missing flags keep their defaults,
// so subcommands also work when run without the root command.
func readGlobals(cmd *cobra.Command) (globals, error) {
	g := globals{format: FormatJSON}
	if f := cmd.Flags().Lookup(flagFormat); f != nil {
		g.format = f.Value.String()
	}
	if f := cmd.Flags().Lookup(flagVerbose); f != nil {
		g.verbose = f.Value.String() == "true"
	}
	if g.format != FormatJSON && g.format != FormatText {
		return g, fmt.Errorf("%w %q (supported: %s, %s)", ErrUnsupportedFormat, g.format, FormatJSON, FormatText)
	}
	return g, nil
}

// writeOutput writes v as indented JSON, or calls text for the text format.
func writeOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	if format == FormatText {
		text(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
