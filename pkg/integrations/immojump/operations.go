package immojump

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	paginationStyleOffset = "offset"
	paginationStylePage   = "page"
)

/*
 * paginationSpec describes how a list operation pages through results:
 * offset/limit or page/per_page, with the resource's default and
 * maximum page sizes.
 */
type paginationSpec struct {
	style       string
	defaultSize int
	maxSize     int
}

/*
 * operationSpec is one row of the static resource/operation table:
 * the HTTP method, the path template, and the optional query and body
 * mappers that translate node parameters into the request.
 */
type operationSpec struct {
	method string
	path   string

	// resolvePath overrides the static template for operations whose
	// path depends on optional parameters.
	resolvePath func(params map[string]any) (string, error)

	query      func(c *Client, params map[string]any) (url.Values, error)
	body       func(c *Client, params map[string]any) (any, error)
	pagination *paginationSpec
}

/*
 * operations maps resource -> operation -> request mapping rules.
 * This single table replaces the per-node duplication of the API
 * surface: every component dispatches through it.
 */
var operations = map[string]map[string]operationSpec{
	"property": {
		"getAll": {
			method:     http.MethodGet,
			path:       "/api/v2/immobilien",
			pagination: &paginationSpec{style: paginationStyleOffset, defaultSize: 50, maxSize: 100},
		},
		"get": {
			method: http.MethodGet,
			path:   "/api/v2/immobilien/{immobilieId}",
		},
		"create": {
			method: http.MethodPost,
			path:   "/api/v2/immobilien",
			body:   propertyCreateBody,
		},
		"update": {
			method: http.MethodPatch,
			path:   "/api/v2/immobilien/{immobilieId}",
			body:   propertyUpdateBody,
		},
		"delete": {
			method: http.MethodDelete,
			path:   "/api/v2/immobilien/{immobilieId}",
		},
		"updateStatus": {
			method: http.MethodPut,
			path:   "/api/statuses/immobilien/{immobilieId}/status",
			body:   propertyStatusBody,
		},
		"setTags": {
			method: http.MethodPut,
			path:   "/api/immobilie/{immobilieId}/tags",
			body:   propertyTagsBody,
		},
	},
	"contact": {
		"getAll": {
			method:     http.MethodGet,
			path:       "/api/contacts",
			query:      contactListQuery,
			pagination: &paginationSpec{style: paginationStylePage, defaultSize: 50, maxSize: 200},
		},
		"get": {
			method: http.MethodGet,
			path:   "/api/contacts/{contactId}",
		},
		"create": {
			method: http.MethodPost,
			path:   "/api/contacts",
			body:   contactCreateBody,
		},
		"update": {
			method: http.MethodPut,
			path:   "/api/contacts/{contactId}",
			body:   contactUpdateBody,
		},
		"delete": {
			method: http.MethodDelete,
			path:   "/api/contacts/{contactId}",
		},
	},
	"activity": {
		"getAll": {
			method:     http.MethodGet,
			path:       "/api/activities/activities",
			query:      activityListQuery,
			pagination: &paginationSpec{style: paginationStylePage, defaultSize: 25, maxSize: 200},
		},
		"get": {
			method: http.MethodGet,
			path:   "/api/activities/activities/{activityId}",
		},
		"create": {
			method:      http.MethodPost,
			resolvePath: activityCreatePath,
			body:        activityCreateBody,
		},
		"update": {
			method: http.MethodPut,
			path:   "/api/activities/activities/{activityId}",
			body:   activityUpdateBody,
		},
		"delete": {
			method: http.MethodDelete,
			path:   "/api/activities/activities/{activityId}",
		},
	},
	"feed": {
		"post": {
			method: http.MethodPost,
			path:   "/api/organisation-feed/post",
			body:   feedPostBody,
		},
	},
	"integration-event": {
		"sendTestEvent": {
			method: http.MethodPost,
			path:   "/api/integrations/test-event",
			body:   testEventBody,
		},
	},
}

var pathParamPattern = regexp.MustCompile(`\{([a-zA-Z]+)\}`)

/*
 * BuildRequest maps a (resource, operation, parameters) tuple to one
 * concrete RequestSpec using the static operation table. Pure
 * construction: no network access, no side effects.
 */
func BuildRequest(client *Client, resource, operationName string, params map[string]any) (*RequestSpec, error) {
	resourceOps, ok := operations[resource]
	if !ok {
		return nil, fmt.Errorf("unknown resource %s", resource)
	}

	op, ok := resourceOps[operationName]
	if !ok {
		return nil, fmt.Errorf("unknown operation %s for resource %s", operationName, resource)
	}

	var path string
	var err error
	if op.resolvePath != nil {
		path, err = op.resolvePath(params)
	} else {
		path, err = interpolatePath(op.path, params)
	}
	if err != nil {
		return nil, err
	}

	spec := &RequestSpec{
		Method:  op.method,
		Path:    path,
		Headers: map[string]string{},
	}

	if op.query != nil {
		query, err := op.query(client, params)
		if err != nil {
			return nil, err
		}
		spec.Query = query
	}

	if op.body != nil {
		body, err := op.body(client, params)
		if err != nil {
			return nil, err
		}
		spec.Body = body
	}

	return spec, nil
}

func listOperation(resource, operationName string) (*paginationSpec, bool) {
	op, ok := operations[resource][operationName]
	if !ok || op.pagination == nil {
		return nil, false
	}
	return op.pagination, true
}

func interpolatePath(template string, params map[string]any) (string, error) {
	var missing string
	path := pathParamPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value := stringParam(params, name)
		if value == "" && missing == "" {
			missing = name
		}
		return url.PathEscape(value)
	})

	if missing != "" {
		return "", &ValidationError{Message: fmt.Sprintf("%s is required", missing)}
	}

	return path, nil
}

/*
 * Parameter extraction helpers. Host configuration arrives as
 * map[string]any with JSON-typed values: strings, float64 numbers,
 * bools, []any lists and map[string]any collections.
 */

func stringParam(params map[string]any, name string) string {
	switch v := params[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func intParam(params map[string]any, name string, fallback int) int {
	switch v := params[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func boolParam(params map[string]any, name string, fallback bool) bool {
	if v, ok := params[name].(bool); ok {
		return v
	}
	return fallback
}

func listParam(params map[string]any, name string) []any {
	if v, ok := params[name].([]any); ok {
		return v
	}
	if v, ok := params[name].([]string); ok {
		list := make([]any, 0, len(v))
		for _, s := range v {
			list = append(list, s)
		}
		return list
	}
	return nil
}

// collectionParam reads a field collection, accepting either a
// structured map or a JSON string the user typed.
func collectionParam(params map[string]any, name string) (map[string]any, error) {
	parsed, err := jsonParam(params, name)
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return map[string]any{}, nil
	}

	fields, ok := parsed.(map[string]any)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("%s must be a JSON object", name)}
	}

	return fields, nil
}

// filterValue returns the filter string, treating the "all" sentinel
// as unset.
func filterValue(params map[string]any, name string) string {
	value := stringParam(params, name)
	if value == "all" {
		return ""
	}
	return value
}

/*
 * jsonParam parses a free-text JSON field. The raw value may already be
 * structured (when the host evaluated an expression) or a string the
 * user typed. Empty values yield nil.
 */
func jsonParam(params map[string]any, name string) (any, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("%s must be valid JSON", name)}
		}
		return parsed, nil
	default:
		return v, nil
	}
}

func organisationID(c *Client, params map[string]any) string {
	if override := stringParam(params, "organisationId"); override != "" {
		return override
	}
	return c.OrganisationID()
}

/*
 * Body mappers. Create-style operations send their required fields plus
 * any optional fields that are non-empty; update-style operations send
 * only the fields explicitly present in the updateFields collection.
 */

func propertyCreateBody(c *Client, params map[string]any) (any, error) {
	propertyType := stringParam(params, "type")
	if propertyType == "" {
		return nil, &ValidationError{Message: "type is required"}
	}

	daten, err := jsonParam(params, "daten")
	if err != nil {
		return nil, err
	}
	if daten == nil {
		daten = map[string]any{}
	}

	body := map[string]any{
		"type":  propertyType,
		"daten": daten,
	}
	if orgID := organisationID(c, params); orgID != "" {
		body["organisation_id"] = orgID
	}

	return body, nil
}

/*
 * propertyUpdateBody passes the update fields through sparsely: only
 * keys the user explicitly set are sent. The daten field may arrive as
 * a JSON string and is parsed before sending.
 */
func propertyUpdateBody(c *Client, params map[string]any) (any, error) {
	fields, err := collectionParam(params, "updateFields")
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	for name, value := range fields {
		if name == "daten" {
			daten, err := jsonParam(fields, "daten")
			if err != nil {
				return nil, err
			}
			body["daten"] = daten
			continue
		}
		body[name] = value
	}

	return body, nil
}

func propertyStatusBody(c *Client, params map[string]any) (any, error) {
	statusID := stringParam(params, "statusId")
	if statusID == "" {
		return nil, &ValidationError{Message: "statusId is required"}
	}

	// Numeric status ids are sent as numbers, matching the API schema.
	if n, err := strconv.Atoi(statusID); err == nil {
		return map[string]any{"status_id": n}, nil
	}

	return map[string]any{"status_id": statusID}, nil
}

func propertyTagsBody(c *Client, params map[string]any) (any, error) {
	tags := listParam(params, "tagIds")
	if tags == nil {
		tags = []any{}
	}
	return tags, nil
}

func contactListQuery(c *Client, params map[string]any) (url.Values, error) {
	query := url.Values{}
	if orgID := organisationID(c, params); orgID != "" {
		query.Set("organisation_id", orgID)
	}
	for param, name := range map[string]string{"q": "search", "sort": "sort", "order": "order"} {
		if value := stringParam(params, name); value != "" {
			query.Set(param, value)
		}
	}
	return query, nil
}

func contactCreateBody(c *Client, params map[string]any) (any, error) {
	firstName := stringParam(params, "firstName")
	lastName := stringParam(params, "lastName")
	if firstName == "" {
		return nil, &ValidationError{Message: "firstName is required"}
	}
	if lastName == "" {
		return nil, &ValidationError{Message: "lastName is required"}
	}

	body := map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
	}
	if orgID := organisationID(c, params); orgID != "" {
		body["organisation_id"] = orgID
	}

	additional, err := collectionParam(params, "additionalFields")
	if err != nil {
		return nil, err
	}
	for param, field := range contactFieldNames {
		if value := stringParam(additional, field); value != "" {
			body[param] = value
		}
	}

	return body, nil
}

var contactFieldNames = map[string]string{
	"email":   "email",
	"phone":   "phone",
	"mobile":  "mobile",
	"address": "address",
	"role":    "role",
	"company": "company",
}

func contactUpdateBody(c *Client, params map[string]any) (any, error) {
	fields, err := collectionParam(params, "updateFields")
	if err != nil {
		return nil, err
	}
	body := map[string]any{}

	if value, ok := fields["firstName"]; ok {
		body["first_name"] = value
	}
	if value, ok := fields["lastName"]; ok {
		body["last_name"] = value
	}
	for param, field := range contactFieldNames {
		if value, ok := fields[field]; ok {
			body[param] = value
		}
	}

	return body, nil
}

func activityListQuery(c *Client, params map[string]any) (url.Values, error) {
	query := url.Values{}
	if orgID := organisationID(c, params); orgID != "" {
		query.Set("organisation_id", orgID)
	}
	if value := stringParam(params, "search"); value != "" {
		query.Set("q", value)
	}
	if value := filterValue(params, "typeFilter"); value != "" {
		query.Set("type", value)
	}
	if value := filterValue(params, "statusFilter"); value != "" {
		query.Set("status", value)
	}
	if value := filterValue(params, "priorityFilter"); value != "" {
		query.Set("priority", value)
	}
	if value := stringParam(params, "immobilienId"); value != "" {
		query.Set("immobilie", value)
	}
	return query, nil
}

// activityCreatePath nests the activity under a property when a
// property id is configured.
func activityCreatePath(params map[string]any) (string, error) {
	if immobilienID := stringParam(params, "immobilienId"); immobilienID != "" {
		return "/api/activities/activities/immobilie/" + url.PathEscape(immobilienID), nil
	}
	return "/api/activities/activities", nil
}

func activityCreateBody(c *Client, params map[string]any) (any, error) {
	body := map[string]any{}
	for _, name := range []string{"title", "type", "status", "priority"} {
		value := stringParam(params, name)
		if value == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("%s is required", name)}
		}
		body[name] = value
	}

	additional, err := collectionParam(params, "additionalFields")
	if err != nil {
		return nil, err
	}
	for param, field := range activityOptionalFieldNames {
		if value := stringParam(additional, field); value != "" {
			body[param] = value
		}
	}

	contactIDs, err := contactIDsField(additional)
	if err != nil {
		return nil, err
	}
	if contactIDs != nil {
		body["contact_ids"] = contactIDs
	}

	if orgID := organisationID(c, params); orgID != "" {
		body["organisation_id"] = orgID
	}

	return body, nil
}

var activityOptionalFieldNames = map[string]string{
	"description":     "description",
	"scheduled_start": "scheduledStart",
	"scheduled_end":   "scheduledEnd",
	"actual_start":    "actualStart",
	"actual_end":      "actualEnd",
	"assigned_to_id":  "assignedToId",
}

func activityUpdateBody(c *Client, params map[string]any) (any, error) {
	fields, err := collectionParam(params, "updateFields")
	if err != nil {
		return nil, err
	}
	body := map[string]any{}

	for _, name := range []string{"title", "type", "status", "priority", "description"} {
		if value, ok := fields[name]; ok {
			body[name] = value
		}
	}
	for param, field := range activityOptionalFieldNames {
		if param == "description" {
			continue
		}
		if value, ok := fields[field]; ok {
			body[param] = value
		}
	}
	if value, ok := fields["immobilienId"]; ok {
		body["immobilien_id"] = value
	}

	contactIDs, err := contactIDsField(fields)
	if err != nil {
		return nil, err
	}
	if contactIDs != nil {
		body["contact_ids"] = contactIDs
	}

	return body, nil
}

// contactIDsField parses the contact_ids free-text field and enforces
// that it holds an array of ids.
func contactIDsField(fields map[string]any) ([]any, error) {
	if _, ok := fields["contactIds"]; !ok {
		return nil, nil
	}

	parsed, err := jsonParam(fields, "contactIds")
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, nil
	}

	ids, ok := parsed.([]any)
	if !ok {
		return nil, &ValidationError{Message: "contactIds must be an array of UUID strings"}
	}

	return ids, nil
}

func feedPostBody(c *Client, params map[string]any) (any, error) {
	title := stringParam(params, "title")
	message := stringParam(params, "message")
	if title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if message == "" {
		return nil, &ValidationError{Message: "message is required"}
	}

	body := map[string]any{
		"title":   title,
		"message": message,
	}
	if channelID := stringParam(params, "channelId"); channelID != "" {
		body["channel_id"] = channelID
	}

	return body, nil
}

func testEventBody(c *Client, params map[string]any) (any, error) {
	objectType := stringParam(params, "objectType")
	objectID := stringParam(params, "objectId")
	if objectType == "" {
		return nil, &ValidationError{Message: "objectType is required"}
	}
	if objectID == "" {
		return nil, &ValidationError{Message: "objectId is required"}
	}

	payload, err := jsonParam(params, "payload")
	if err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}

	return map[string]any{
		"object_type": objectType,
		"object_id":   objectID,
		"payload":     payload,
	}, nil
}
