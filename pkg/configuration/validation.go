package configuration

import (
	"fmt"
	"slices"
)

/*
 * ValidateFields checks a declarative field table for internal consistency.
 * Integrations call it from tests so that broken tables are caught at build
 * time instead of at render time in the host UI.
 */
func ValidateFields(fields []Field) error {
	names := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return fmt.Errorf("field with label %q has no name", field.Label)
		}

		if _, ok := names[field.Name]; ok {
			return fmt.Errorf("duplicate field name %q", field.Name)
		}
		names[field.Name] = struct{}{}

		if err := validateFieldType(field); err != nil {
			return err
		}
	}

	for _, field := range fields {
		for _, condition := range field.VisibilityConditions {
			if _, ok := names[condition.Field]; !ok {
				return fmt.Errorf("field %q has a visibility condition on unknown field %q", field.Name, condition.Field)
			}
		}
	}

	return nil
}

func validateFieldType(field Field) error {
	switch field.Type {
	case FieldTypeString, FieldTypeText, FieldTypeNumber, FieldTypeBoolean, FieldTypeJSON:
		return nil
	case FieldTypeSelect:
		if field.TypeOptions == nil || field.TypeOptions.Select == nil {
			return fmt.Errorf("select field %q has no options", field.Name)
		}
		options := field.TypeOptions.Select
		if len(options.Options) == 0 && options.LoadFrom == "" {
			return fmt.Errorf("select field %q has neither static options nor a resource to load from", field.Name)
		}
		return nil
	case FieldTypeMultiSelect:
		if field.TypeOptions == nil || field.TypeOptions.MultiSelect == nil {
			return fmt.Errorf("multi-select field %q has no options", field.Name)
		}
		options := field.TypeOptions.MultiSelect
		if len(options.Options) == 0 && options.LoadFrom == "" {
			return fmt.Errorf("multi-select field %q has neither static options nor a resource to load from", field.Name)
		}
		return nil
	case FieldTypeIntegrationResource:
		if field.TypeOptions == nil || field.TypeOptions.Resource == nil || field.TypeOptions.Resource.Type == "" {
			return fmt.Errorf("resource field %q has no resource type", field.Name)
		}
		return nil
	default:
		return fmt.Errorf("field %q has unsupported type %q", field.Name, field.Type)
	}
}

/*
 * IsVisible reports whether a field would be shown by the host UI
 * for the given configuration values. Fields hidden by their visibility
 * conditions are ignored during required-field checks.
 */
func IsVisible(field Field, values map[string]any) bool {
	for _, condition := range field.VisibilityConditions {
		if !conditionMatches(condition, values[condition.Field]) {
			return false
		}
	}

	return true
}

/*
 * conditionMatches checks one visibility condition against the current
 * value of the field it references. Multi-select values match when any
 * of their selections is an accepted value.
 */
func conditionMatches(condition VisibilityCondition, value any) bool {
	switch v := value.(type) {
	case string:
		return slices.Contains(condition.Values, v)
	case []string:
		for _, s := range v {
			if slices.Contains(condition.Values, s) {
				return true
			}
		}
		return false
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && slices.Contains(condition.Values, s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
