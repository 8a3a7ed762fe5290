package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// NewDealFieldsCommand creates the deal-fields command group.
func NewDealFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deal-fields",
		Aliases: []string{"deal-field", "df"},
		Short:   "Inspect deal fields",
		Long:    "List deal fields and resolve custom field keys and option labels",
	}

	cmd.AddCommand(newDealFieldsListCommand())
	cmd.AddCommand(newDealFieldsGetCommand())
	cmd.AddCommand(newDealFieldsGetByKeyCommand())
	cmd.AddCommand(newDealFieldsOptionLabelCommand())

	return cmd
}

func newDealFieldsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deal fields",
		Long:  "List all deal fields, including custom fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			fields, err := client.DealFields().List(commandContext(cmd))
			if err != nil {
				return err
			}

			return renderDealFields(cmd.OutOrStdout(), fields)
		},
	}
}

func newDealFieldsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get FIELD_ID",
		Short: "Get a deal field",
		Long:  "Display a deal field by its numeric ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			field, err := client.DealFields().Get(commandContext(cmd), id)
			if err != nil {
				return err
			}

			if field == nil {
				return fmt.Errorf("%w: %d", constants.ErrDealFieldNotFound, id)
			}

			return renderDealField(cmd.OutOrStdout(), field)
		},
	}
}

func newDealFieldsGetByKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-by-key KEY",
		Short: "Find a deal field by key",
		Long:  "Display the deal field whose key matches, e.g. a custom field hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			field, err := client.DealFields().GetByKey(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			if field == nil {
				return fmt.Errorf("%w: %s", constants.ErrDealFieldNotFound, args[0])
			}

			return renderDealField(cmd.OutOrStdout(), field)
		},
	}
}

func newDealFieldsOptionLabelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "option-label KEY OPTION_ID",
		Short: "Resolve an option label",
		Long:  "Print the label of an option of an enum or set deal field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			optionID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: %q", constants.ErrInvalidID, args[1])
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			label, found, err := client.DealFields().GetOptionLabel(commandContext(cmd), args[0], optionID)
			if err != nil {
				return err
			}

			if !found {
				return fmt.Errorf("%w: %s/%d", constants.ErrFieldOptionNotFound, args[0], optionID)
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return writeEncoded(cmd.OutOrStdout(), format, map[string]interface{}{
					"key":       args[0],
					"option_id": optionID,
					"label":     label,
				})
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), label)

			return nil
		},
	}
}

func renderDealFields(w io.Writer, fields []pipedrive.DealField) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		if fields == nil {
			fields = []pipedrive.DealField{}
		}

		return writeEncoded(w, format, fields)
	}

	if len(fields) == 0 {
		_, _ = io.WriteString(w, "No deal fields found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Key", "Name", "Type", "Options")

	for _, field := range fields {
		_ = table.Append([]string{
			strconv.Itoa(field.ID),
			field.Key,
			field.Name,
			field.FieldType,
			strconv.Itoa(len(field.Options)),
		})
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderDealField(w io.Writer, field *pipedrive.DealField) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return writeEncoded(w, format, field)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	_ = table.Append([]string{"ID", strconv.Itoa(field.ID)})
	_ = table.Append([]string{"Key", field.Key})
	_ = table.Append([]string{"Name", field.Name})
	_ = table.Append([]string{"Type", field.FieldType})
	_ = table.Append([]string{"Active", strconv.FormatBool(field.ActiveFlag)})
	_ = table.Append([]string{"Editable", strconv.FormatBool(field.EditFlag)})

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if len(field.Options) == 0 {
		return nil
	}

	_, _ = io.WriteString(w, "\nOptions:\n")

	options := tablewriter.NewWriter(w)
	options.Header("ID", "Label")

	for _, option := range field.Options {
		_ = options.Append([]string{string(option.ID), option.Label})
	}

	err = options.Render()
	if err != nil {
		return fmt.Errorf("failed to render options table: %w", err)
	}

	return nil
}
