package configuration

const (
	/*
	 * Basic field types
	 */
	FieldTypeString      = "string"
	FieldTypeText        = "text"
	FieldTypeNumber      = "number"
	FieldTypeBoolean     = "boolean"
	FieldTypeSelect      = "select"
	FieldTypeMultiSelect = "multi-select"

	/*
	 * Special field types
	 */
	FieldTypeJSON                = "json"
	FieldTypeIntegrationResource = "integration-resource"
)

type Field struct {
	/*
	 * Unique name identifier for the field
	 */
	Name string `json:"name"`

	/*
	 * Human-readable label for the field (displayed in forms)
	 */
	Label string `json:"label"`

	/*
	 * Optional placeholder shown in the UI input for this field
	 */
	Placeholder string `json:"placeholder,omitempty"`

	/*
	 * Type of the field. Supported types are defined by FieldType* constants above.
	 */
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     any    `json:"default"`

	/*
	 * Whether the field is sensitive (e.g., password, API token)
	 */
	Sensitive bool `json:"sensitive"`

	/*
	 * Type-specific options for fields.
	 * The structure depends on the field type.
	 */
	TypeOptions *TypeOptions `json:"type_options,omitempty"`

	/*
	 * Used for controlling when the field is visible.
	 * No visibility conditions - always visible.
	 */
	VisibilityConditions []VisibilityCondition `json:"visibility_conditions,omitempty"`
}

/*
 * TypeOptions contains type-specific configuration for fields.
 */
type TypeOptions struct {
	Number      *NumberTypeOptions      `json:"number,omitempty"`
	Text        *TextTypeOptions        `json:"text,omitempty"`
	Select      *SelectTypeOptions      `json:"select,omitempty"`
	MultiSelect *MultiSelectTypeOptions `json:"multi_select,omitempty"`
	Resource    *ResourceTypeOptions    `json:"resource,omitempty"`
}

/*
 * NumberTypeOptions specifies constraints for number fields
 */
type NumberTypeOptions struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

type TextTypeOptions struct {
	Rows int `json:"rows,omitempty"`
}

/*
 * SelectTypeOptions specifies options for select fields.
 * Options may be static, or loaded from an integration resource type
 * (statuses, tags, channels) when LoadFrom is set.
 */
type SelectTypeOptions struct {
	Options  []FieldOption `json:"options,omitempty"`
	LoadFrom string        `json:"load_from,omitempty"`
}

/*
 * MultiSelectTypeOptions specifies options for multi_select fields.
 * Options may be static, or loaded from an integration resource type
 * (statuses, tags, channels) when LoadFrom is set.
 */
type MultiSelectTypeOptions struct {
	Options  []FieldOption `json:"options,omitempty"`
	LoadFrom string        `json:"load_from,omitempty"`
}

/*
 * ResourceTypeOptions specifies which resource type to display
 */
type ResourceTypeOptions struct {
	Type string `json:"type"`

	//
	// If true, render as multi-select instead of single select
	//
	Multi bool `json:"multi,omitempty"`
}

/*
 * FieldOption represents a selectable option for select / multi_select field types
 */
type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type VisibilityCondition struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}
