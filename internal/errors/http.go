package errors

import "net/http"

// HTTPBody is the JSON error envelope returned by the HTTP API
type HTTPBody struct {
	Error   string         `json:"error"`
	Code    Code           `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTP converts an error into a status code and response body.
// Errors without a code are reported as internal and their message is
// replaced so driver details never reach the caller.
func ToHTTP(err error) (int, HTTPBody) {
	if err == nil {
		return http.StatusOK, HTTPBody{Code: CodeOK}
	}

	var customErr *Error
	if !As(err, &customErr) {
		return http.StatusInternalServerError, HTTPBody{
			Error: "internal server error",
			Code:  CodeInternal,
		}
	}

	body := HTTPBody{
		Error:   customErr.Message,
		Code:    customErr.Code,
		Details: customErr.Meta,
	}
	if customErr.Code == CodeInternal {
		body.Error = "internal server error"
		body.Details = nil
	}

	return customErr.Code.HTTPStatus(), body
}
