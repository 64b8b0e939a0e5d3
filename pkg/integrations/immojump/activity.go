package immojump

import (
	"github.com/immojumphq/immojump-connect/pkg/configuration"
	"github.com/immojumphq/immojump-connect/pkg/core"
)

type Activity struct{}

func (c *Activity) Name() string {
	return "immojump.activity"
}

func (c *Activity) Label() string {
	return "Activity"
}

func (c *Activity) Description() string {
	return "Create, read, update and delete ImmoJump activities"
}

func (c *Activity) Documentation() string {
	return `The Activity component manages activities (viewings, calls, tasks) in ImmoJump.

## Operations

- **Get Many**: List activities, with filters for type, status, priority and property
- **Get**: Fetch a single activity by ID
- **Create**: Create an activity, optionally nested under a property
- **Update**: Update selected fields of an activity
- **Delete**: Delete an activity

## Notes

- Filter dropdowns include an ` + "`All`" + ` entry that disables the filter
- ` + "`Contact IDs`" + ` takes a JSON array of contact UUIDs
- When a property ID is set on Create, the activity is created under
  that property`
}

func (c *Activity) Icon() string {
	return "calendar"
}

func (c *Activity) Color() string {
	return "orange"
}

var activityTypeOptions = []configuration.FieldOption{
	{Label: "All", Value: "all"},
	{Label: "Viewing", Value: "viewing"},
	{Label: "Call", Value: "call"},
	{Label: "Email", Value: "email"},
	{Label: "Task", Value: "task"},
	{Label: "Note", Value: "note"},
}

var activityStatusOptions = []configuration.FieldOption{
	{Label: "All", Value: "all"},
	{Label: "Open", Value: "open"},
	{Label: "In Progress", Value: "in_progress"},
	{Label: "Done", Value: "done"},
	{Label: "Cancelled", Value: "cancelled"},
}

var activityPriorityOptions = []configuration.FieldOption{
	{Label: "All", Value: "all"},
	{Label: "Low", Value: "low"},
	{Label: "Medium", Value: "medium"},
	{Label: "High", Value: "high"},
}

func selectField(name, label string, required bool, options []configuration.FieldOption, visibleOn ...string) configuration.Field {
	return configuration.Field{
		Name:     name,
		Label:    label,
		Type:     configuration.FieldTypeSelect,
		Required: required,
		TypeOptions: &configuration.TypeOptions{
			Select: &configuration.SelectTypeOptions{Options: options},
		},
		VisibilityConditions: visibleFor(visibleOn...),
	}
}

func (c *Activity) Configuration() []configuration.Field {
	fields := []configuration.Field{
		operationField(
			configuration.FieldOption{Label: "Get Many", Value: "getAll"},
			configuration.FieldOption{Label: "Get", Value: "get"},
			configuration.FieldOption{Label: "Create", Value: "create"},
			configuration.FieldOption{Label: "Update", Value: "update"},
			configuration.FieldOption{Label: "Delete", Value: "delete"},
		),
		{
			Name:                 "activityId",
			Label:                "Activity ID",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("get", "update", "delete"),
		},
		{
			Name:                 "title",
			Label:                "Title",
			Type:                 configuration.FieldTypeString,
			Required:             true,
			VisibilityConditions: visibleFor("create"),
		},
		selectField("type", "Type", true, activityTypeOptions[1:], "create"),
		selectField("status", "Status", true, activityStatusOptions[1:], "create"),
		selectField("priority", "Priority", true, activityPriorityOptions[1:], "create"),
		{
			Name:                 "immobilienId",
			Label:                "Property ID",
			Type:                 configuration.FieldTypeString,
			Description:          "Attach the activity to this property, or filter listings by it",
			VisibilityConditions: visibleFor("create", "getAll"),
		},
		{
			Name:                 "additionalFields",
			Label:                "Additional Fields",
			Type:                 configuration.FieldTypeJSON,
			Description:          "Optional fields: description, scheduledStart, scheduledEnd, actualStart, actualEnd, assignedToId, contactIds",
			VisibilityConditions: visibleFor("create"),
		},
		{
			Name:                 "updateFields",
			Label:                "Update Fields",
			Type:                 configuration.FieldTypeJSON,
			Description:          "Only the fields present here are sent to the API",
			VisibilityConditions: visibleFor("update"),
		},
		{
			Name:                 "search",
			Label:                "Search",
			Type:                 configuration.FieldTypeString,
			VisibilityConditions: visibleFor("getAll"),
		},
		selectField("typeFilter", "Type", false, activityTypeOptions, "getAll"),
		selectField("statusFilter", "Status", false, activityStatusOptions, "getAll"),
		selectField("priorityFilter", "Priority", false, activityPriorityOptions, "getAll"),
	}

	return append(fields, returnAllFields("getAll")...)
}

func (c *Activity) Execute(ctx core.ExecutionContext) error {
	return runComponent(ctx, "activity")
}
