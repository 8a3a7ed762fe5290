package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

var dealColumns = []string{"id", "title", "value", "currency", "status", "stage_id", "owner_name"}

// NewDealsCommand creates the deals command group.
func NewDealsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deals",
		Aliases: []string{"deal"},
		Short:   "Manage deals",
		Long:    "Create, update, view and search Pipedrive deals",
	}

	cmd.AddCommand(newDealsCreateCommand())
	cmd.AddCommand(newDealsUpdateCommand())
	cmd.AddCommand(newDealsGetCommand())
	cmd.AddCommand(newDealsSearchCommand())
	cmd.AddCommand(newDealsActivitiesCommand())

	return cmd
}

func newDealsCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deal",
		Long:  "Create a new deal. --title is required, custom fields are given as --field KEY=VALUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") {
				return constants.ErrTitleRequired
			}

			fields, err := dealFieldsFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			deal, err := client.Deals().Create(commandContext(cmd), &pipedrive.DealCreateRequest{
				Title:             *fields.Title,
				Value:             fields.Value,
				Currency:          fields.Currency,
				UserID:            fields.UserID,
				PersonID:          fields.PersonID,
				OrgID:             fields.OrgID,
				PipelineID:        fields.PipelineID,
				StageID:           fields.StageID,
				Status:            fields.Status,
				ExpectedCloseDate: fields.ExpectedCloseDate,
				Probability:       fields.Probability,
				LostReason:        fields.LostReason,
				VisibleTo:         fields.VisibleTo,
				AddTime:           fields.AddTime,
				CustomFields:      fields.CustomFields,
			})
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), deal)
		},
	}

	addDealFlags(cmd)

	return cmd
}

func newDealsUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update DEAL_ID",
		Short: "Update a deal",
		Long:  "Update an existing deal. Only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			fields, err := dealFieldsFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			deal, err := client.Deals().Update(commandContext(cmd), id, fields)
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), deal)
		},
	}

	addDealFlags(cmd)

	return cmd
}

func newDealsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DEAL_ID",
		Short: "Get deal details",
		Long:  "Display detailed information about a specific deal",
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

			deal, err := client.Deals().Get(commandContext(cmd), id)
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), deal)
		},
	}
}

func newDealsSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search deals",
		Long:  "Search deals by title, notes and custom fields. Exact matching is on by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Deals().Search(commandContext(cmd), &pipedrive.DealSearchParams{
				Term:           args[0],
				ExactMatch:     optionalBool(cmd, "exact-match"),
				PersonID:       optionalInt(cmd, "person-id"),
				OrganizationID: optionalInt(cmd, "org-id"),
				Status:         optionalString(cmd, "status"),
				IncludeFields:  optionalString(cmd, "include-fields"),
				Start:          optionalInt(cmd, "start"),
				Limit:          optionalInt(cmd, "limit"),
			})
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return writeEncoded(cmd.OutOrStdout(), format, result)
			}

			return renderObjects(cmd.OutOrStdout(), searchItems(result), "id", "title", "value", "status")
		},
	}

	cmd.Flags().Bool("exact-match", true, "only exact matches of the term")
	cmd.Flags().Int("person-id", 0, "only deals linked to this person")
	cmd.Flags().Int("org-id", 0, "only deals linked to this organization")
	cmd.Flags().String("status", "", "deal status (open, won, lost)")
	cmd.Flags().String("include-fields", "", "extra fields to include, e.g. deal.cc_email")
	cmd.Flags().Int("start", 0, "pagination start")
	cmd.Flags().Int("limit", constants.DefaultPageLimit, "items per page")

	return cmd
}

func newDealsActivitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities DEAL_ID",
		Short: "List activities of a deal",
		Long:  "List the activities linked to a specific deal",
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

			activities, err := client.Deals().ListActivities(commandContext(cmd), id, &pipedrive.DealActivitiesParams{
				Start: optionalInt(cmd, "start"),
				Limit: optionalInt(cmd, "limit"),
				Done:  optionalBool(cmd, "done"),
			})
			if err != nil {
				return err
			}

			return renderObjects(cmd.OutOrStdout(), activities, activityColumns...)
		},
	}

	cmd.Flags().Int("start", 0, "pagination start")
	cmd.Flags().Int("limit", constants.DefaultPageLimit, "items per page")
	cmd.Flags().Bool("done", false, "only done (true) or undone (false) activities")

	return cmd
}

func addDealFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "deal title")
	cmd.Flags().Float64("value", 0, "deal value")
	cmd.Flags().String("currency", "", "currency code, e.g. EUR")
	cmd.Flags().Int("user-id", 0, "owner user ID")
	cmd.Flags().Int("person-id", 0, "linked person ID")
	cmd.Flags().Int("org-id", 0, "linked organization ID")
	cmd.Flags().Int("pipeline-id", 0, "pipeline ID")
	cmd.Flags().Int("stage-id", 0, "stage ID")
	cmd.Flags().String("status", "", "status (open, won, lost, deleted)")
	cmd.Flags().String("expected-close-date", "", "expected close date (YYYY-MM-DD)")
	cmd.Flags().Int("probability", 0, "success probability (0-100)")
	cmd.Flags().String("lost-reason", "", "reason the deal was lost")
	cmd.Flags().String("visible-to", "", "visibility (1, 3, 5, 7)")
	cmd.Flags().String("add-time", "", "creation time (YYYY-MM-DD HH:MM:SS, UTC)")
	cmd.Flags().StringArray("field", nil, "custom field as KEY=VALUE (repeatable)")
}

// dealFieldsFromFlags collects the deal flags that were explicitly set.
func dealFieldsFromFlags(cmd *cobra.Command) (*pipedrive.DealUpdateRequest, error) {
	pairs, _ := cmd.Flags().GetStringArray("field")

	custom, err := parseCustomFields(pairs)
	if err != nil {
		return nil, err
	}

	return &pipedrive.DealUpdateRequest{
		Title:             optionalString(cmd, "title"),
		Value:             optionalFloat(cmd, "value"),
		Currency:          optionalString(cmd, "currency"),
		UserID:            optionalInt(cmd, "user-id"),
		PersonID:          optionalInt(cmd, "person-id"),
		OrgID:             optionalInt(cmd, "org-id"),
		PipelineID:        optionalInt(cmd, "pipeline-id"),
		StageID:           optionalInt(cmd, "stage-id"),
		Status:            optionalString(cmd, "status"),
		ExpectedCloseDate: optionalString(cmd, "expected-close-date"),
		Probability:       optionalInt(cmd, "probability"),
		LostReason:        optionalString(cmd, "lost-reason"),
		VisibleTo:         optionalString(cmd, "visible-to"),
		AddTime:           optionalString(cmd, "add-time"),
		CustomFields:      custom,
	}, nil
}
