package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/internal/logging"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pdclient"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// CreateClient builds a Pipedrive client from the merged flag, env and file
// configuration.
func CreateClient() (pipedrive.Client, error) {
	token := strings.TrimSpace(viper.GetString("token"))
	if token == "" {
		return nil, constants.ErrNoTokenConfigured
	}

	config := &pipedrive.Config{
		BaseURL:       viper.GetString("api"),
		CompanyDomain: viper.GetString("company_domain"),
		APIToken:      token,
		HTTPTimeout:   viper.GetDuration("timeout"),
		UserAgent:     constants.DefaultUserAgent,
	}

	if viper.GetBool("verbose") {
		config.Logger = logging.NewZapLogger("debug")
		config.Debug = true
	}

	client, err := pdclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// parseID parses a positive integer argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, arg)
	}

	return id, nil
}

// optionalString returns the flag value only when it was set on the command line.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}

	return &value
}

func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}

	return &value
}

func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}

	return &value
}

func optionalFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return nil
	}

	return &value
}

// parseCustomFields turns key=value pairs into a custom field map. Values that
// parse as JSON (numbers, booleans, arrays) keep their type.
func parseCustomFields(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	fields := make(map[string]interface{}, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidCustomField, pair)
		}

		var decoded interface{}
		if json.Unmarshal([]byte(value), &decoded) == nil {
			fields[key] = decoded
		} else {
			fields[key] = value
		}
	}

	return fields, nil
}

// outputFormat returns the configured output format, validated.
func outputFormat() (string, error) {
	format := viper.GetString("output")
	if format == "" {
		return constants.FormatTable, nil
	}

	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// writeEncoded writes data as JSON or YAML.
func writeEncoded(w io.Writer, format string, data interface{}) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.JSONIndentSize)

		defer func() {
			_ = encoder.Close()
		}()

		return encoder.Encode(data)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// renderObject prints a single object as a property/value table, or encoded.
func renderObject(w io.Writer, obj pipedrive.Object) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return writeEncoded(w, format, obj)
	}

	if obj == nil {
		_, _ = io.WriteString(w, "No data returned\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, key := range sortedKeys(obj) {
		_ = table.Append([]string{key, formatCell(obj[key])})
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderObjects prints a list with one row per object and the given columns.
func renderObjects(w io.Writer, objs []pipedrive.Object, columns ...string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		if objs == nil {
			objs = []pipedrive.Object{}
		}

		return writeEncoded(w, format, objs)
	}

	if len(objs) == 0 {
		_, _ = io.WriteString(w, "No results found\n")

		return nil
	}

	headers := make([]interface{}, len(columns))
	for i, column := range columns {
		headers[i] = strings.ToUpper(strings.ReplaceAll(column, "_", " "))
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers...)

	for _, obj := range objs {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = formatCell(obj[column])
		}

		_ = table.Append(row)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// searchItems extracts the matched items of a search result
// ({"items":[{"result_score":..,"item":{..}}]}).
func searchItems(result pipedrive.Object) []pipedrive.Object {
	rawItems, ok := result["items"].([]interface{})
	if !ok {
		return nil
	}

	items := make([]pipedrive.Object, 0, len(rawItems))

	for _, raw := range rawItems {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		item, ok := entry["item"].(map[string]interface{})
		if !ok {
			continue
		}

		items = append(items, pipedrive.Object(item))
	}

	return items
}

func sortedKeys(obj pipedrive.Object) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// formatCell renders a decoded JSON value for a table cell. Nested objects
// with a name or value member collapse to that member.
func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		if v == "" {
			return constants.NotAvailable
		}

		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]interface{}:
		for _, key := range []string{"name", "value"} {
			if inner, ok := v[key]; ok {
				return formatCell(inner)
			}
		}
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}

	return string(encoded)
}
