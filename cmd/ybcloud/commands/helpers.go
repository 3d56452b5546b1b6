package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// Common string constants used throughout the commands package.
const (
	Masked = "***"
	Yes    = "yes"
	No     = "no"

	defaultJSONIndent = "  "
)

// renderOutput writes data as JSON or YAML, or calls table for table output.
func renderOutput(w io.Writer, data any, table func(w io.Writer) error) error {
	output := viper.GetString(keyOutput)

	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	case "", constants.FormatTable:
		return table(w)
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, output)
	}
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// runWithClient creates a client for the duration of fn.
func runWithClient(cmd *cobra.Command, fn func(ctx context.Context, client ybapi.Client) error) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return fn(ctx, client)
}

// optionalBool parses a tri-state flag value: "" means unset.
func optionalBool(value, flag string) (*bool, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // unset flag
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for --%s: %w", flag, err)
	}

	return &parsed, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(constants.TimestampLayout)
}

func formatBool(value bool) string {
	if value {
		return Yes
	}

	return No
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
