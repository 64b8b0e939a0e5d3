package immojump

import "fmt"

/*
 * ConfigError reports a missing or unusable credential field.
 * Fatal for the whole node invocation; never retried.
 */
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

/*
 * ValidationError reports a malformed parameter on a single item:
 * a missing required identifier, or a free-text field that is not
 * valid JSON. Callers may skip the item and continue with the batch.
 */
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

/*
 * NetworkError wraps a transport-level failure (connection, timeout).
 */
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

/*
 * APIError is a non-2xx response from the ImmoJump API.
 * ResponseBody holds the parsed JSON body when the response was JSON,
 * or the raw body string otherwise, so callers can decide recoverability.
 */
type APIError struct {
	Message      string
	StatusCode   int
	ResponseBody any
}

func (e *APIError) Error() string {
	return e.Message
}
