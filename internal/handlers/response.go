package handlers

import (
	"encoding/json"

	"lambda-services-api/pkg/lambda"
)

var internalErrorBody = []byte(`{"message":"Internal server error"}`)

// ResponseOptions controls the headers attached to every response a handler
// produces.
type ResponseOptions struct {
	CORS         bool
	AllowMethods string
	AllowHeaders string
}

// MessageBody is the envelope used for status and error messages
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody is the envelope used by functions that report failures under an
// "error" key
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Usage   string `json:"usage,omitempty"`
}

// Headers returns the response headers for these options
func (o ResponseOptions) Headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if o.CORS {
		headers["Access-Control-Allow-Origin"] = "*"
		if o.AllowMethods != "" {
			headers["Access-Control-Allow-Methods"] = o.AllowMethods
		}
		if o.AllowHeaders != "" {
			headers["Access-Control-Allow-Headers"] = o.AllowHeaders
		}
	}
	return headers
}

// JSONResponse serializes payload into a response. A payload that cannot be
// serialized yields the generic 500 response.
func JSONResponse(status int, payload interface{}, opts ResponseOptions) *lambda.Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return InternalErrorResponse(opts)
	}

	return &lambda.Response{
		StatusCode: status,
		Headers:    opts.Headers(),
		Body:       body,
	}
}

// MessageResponse builds a {"message": ...} response
func MessageResponse(status int, message string, opts ResponseOptions) *lambda.Response {
	return JSONResponse(status, MessageBody{Message: message}, opts)
}

// InternalErrorResponse builds the generic 500 response
func InternalErrorResponse(opts ResponseOptions) *lambda.Response {
	return &lambda.Response{
		StatusCode: 500,
		Headers:    opts.Headers(),
		Body:       append([]byte(nil), internalErrorBody...),
	}
}
