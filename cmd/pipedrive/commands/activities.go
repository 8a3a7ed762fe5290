package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

var activityColumns = []string{"id", "type", "subject", "due_date", "due_time", "done", "deal_id", "person_id"}

// NewActivitiesCommand creates the activities command group.
func NewActivitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity", "act"},
		Short:   "Manage activities",
		Long:    "Create, update, view and search Pipedrive activities",
	}

	cmd.AddCommand(newActivitiesCreateCommand())
	cmd.AddCommand(newActivitiesUpdateCommand())
	cmd.AddCommand(newActivitiesGetCommand())
	cmd.AddCommand(newActivitiesSearchCommand())

	return cmd
}

func newActivitiesCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an activity",
		Long:  "Create a new activity. --due-date is required",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("due-date") {
				return constants.ErrDueDateRequired
			}

			fields := activityFieldsFromFlags(cmd)

			client, err := CreateClient()
			if err != nil {
				return err
			}

			activity, err := client.Activities().Create(commandContext(cmd), &pipedrive.ActivityCreateRequest{
				DueDate:           *fields.DueDate,
				DueTime:           fields.DueTime,
				Duration:          fields.Duration,
				DealID:            fields.DealID,
				LeadID:            fields.LeadID,
				PersonID:          fields.PersonID,
				ProjectID:         fields.ProjectID,
				OrgID:             fields.OrgID,
				Location:          fields.Location,
				PublicDescription: fields.PublicDescription,
				Note:              fields.Note,
				Subject:           fields.Subject,
				Type:              fields.Type,
				UserID:            fields.UserID,
				Participants:      fields.Participants,
				BusyFlag:          fields.BusyFlag,
				Attendees:         fields.Attendees,
				Done:              fields.Done,
			})
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), activity)
		},
	}

	addActivityFlags(cmd)

	return cmd
}

func newActivitiesUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ACTIVITY_ID",
		Short: "Update an activity",
		Long:  "Update an existing activity. Only the flags given are sent",
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

			activity, err := client.Activities().Update(commandContext(cmd), id, activityFieldsFromFlags(cmd))
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), activity)
		},
	}

	addActivityFlags(cmd)

	return cmd
}

func newActivitiesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACTIVITY_ID",
		Short: "Get activity details",
		Long:  "Display detailed information about a specific activity",
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

			activity, err := client.Activities().Get(commandContext(cmd), id)
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), activity)
		},
	}
}

func newActivitiesSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search activities",
		Long:  "List activities filtered by user, filter, type, date range or completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			activities, err := client.Activities().Search(commandContext(cmd), &pipedrive.ActivitySearchParams{
				UserID:    optionalInt(cmd, "user-id"),
				FilterID:  optionalInt(cmd, "filter-id"),
				Type:      optionalString(cmd, "type"),
				Start:     optionalInt(cmd, "start"),
				Limit:     optionalInt(cmd, "limit"),
				StartDate: optionalString(cmd, "start-date"),
				EndDate:   optionalString(cmd, "end-date"),
				Done:      optionalBool(cmd, "done"),
			})
			if err != nil {
				return err
			}

			return renderObjects(cmd.OutOrStdout(), activities, activityColumns...)
		},
	}

	cmd.Flags().Int("user-id", 0, "only activities of this user (0 means all users)")
	cmd.Flags().Int("filter-id", 0, "apply a saved filter")
	cmd.Flags().String("type", "", "activity type key, comma separated")
	cmd.Flags().Int("start", 0, "pagination start")
	cmd.Flags().Int("limit", constants.DefaultPageLimit, "items per page")
	cmd.Flags().String("start-date", "", "earliest due date (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "latest due date (YYYY-MM-DD)")
	cmd.Flags().Bool("done", false, "only done (true) or undone (false) activities")

	return cmd
}

func addActivityFlags(cmd *cobra.Command) {
	cmd.Flags().String("due-date", "", "due date (YYYY-MM-DD)")
	cmd.Flags().String("due-time", "", "due time (HH:MM, UTC)")
	cmd.Flags().String("duration", "", "duration (HH:MM)")
	cmd.Flags().Int("deal-id", 0, "linked deal ID")
	cmd.Flags().String("lead-id", "", "linked lead ID")
	cmd.Flags().Int("person-id", 0, "linked person ID")
	cmd.Flags().Int("project-id", 0, "linked project ID")
	cmd.Flags().Int("org-id", 0, "linked organization ID")
	cmd.Flags().String("location", "", "location")
	cmd.Flags().String("public-description", "", "description shared with attendees")
	cmd.Flags().String("note", "", "note (HTML allowed)")
	cmd.Flags().String("subject", "", "subject")
	cmd.Flags().String("type", "", "activity type key, e.g. call or meeting")
	cmd.Flags().Int("user-id", 0, "owner user ID")
	cmd.Flags().IntSlice("participant", nil, "participant person ID, the first one is primary (repeatable)")
	cmd.Flags().Bool("busy", false, "mark the time as busy in the calendar")
	cmd.Flags().StringSlice("attendee", nil, "attendee email address (repeatable)")
	cmd.Flags().Bool("done", false, "mark the activity as done")
}

// activityFieldsFromFlags collects the activity flags that were explicitly set.
func activityFieldsFromFlags(cmd *cobra.Command) *pipedrive.ActivityUpdateRequest {
	request := &pipedrive.ActivityUpdateRequest{
		DueDate:           optionalString(cmd, "due-date"),
		DueTime:           optionalString(cmd, "due-time"),
		Duration:          optionalString(cmd, "duration"),
		DealID:            optionalInt(cmd, "deal-id"),
		LeadID:            optionalString(cmd, "lead-id"),
		PersonID:          optionalInt(cmd, "person-id"),
		ProjectID:         optionalInt(cmd, "project-id"),
		OrgID:             optionalInt(cmd, "org-id"),
		Location:          optionalString(cmd, "location"),
		PublicDescription: optionalString(cmd, "public-description"),
		Note:              optionalString(cmd, "note"),
		Subject:           optionalString(cmd, "subject"),
		Type:              optionalString(cmd, "type"),
		UserID:            optionalInt(cmd, "user-id"),
		BusyFlag:          optionalBool(cmd, "busy"),
		Done:              optionalBool(cmd, "done"),
	}

	if cmd.Flags().Changed("participant") {
		ids, _ := cmd.Flags().GetIntSlice("participant")
		for i, id := range ids {
			request.Participants = append(request.Participants, pipedrive.Participant{PersonID: id, PrimaryFlag: i == 0})
		}
	}

	if cmd.Flags().Changed("attendee") {
		emails, _ := cmd.Flags().GetStringSlice("attendee")
		for _, email := range emails {
			request.Attendees = append(request.Attendees, pipedrive.Attendee{EmailAddress: email})
		}
	}

	return request
}
