package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions selects machine readable output.
type OutputOptions struct {
	JSON bool
	YAML bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

func AddFormatArgs(cmd *cobra.Command, po *OutputOptions) {
	AddOutputArg(cmd, po)
	cmd.Flags().BoolVar(&po.YAML, "yaml", false,
		"Output as YAML.")
}

// Format is "json", "yaml" or "" for the pretty printer.
func (o *OutputOptions) Format() (string, error) {
	switch {
	case o.JSON && o.YAML:
		return "", errors.New("choose one of --json or --yaml")
	case o.JSON:
		return "json", nil
	case o.YAML:
		return "yaml", nil
	}
	return "", nil
}

// HandleError reports err as a JSON object on stdout when JSON output was
// asked for, so scripts always get parseable output.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]any{
			"success": false,
			"error":   err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
