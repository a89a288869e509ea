package lambda

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers,omitempty"`
	QueryParams map[string]string `json:"query_params,omitempty"`
	PathParams  map[string]string `json:"path_params,omitempty"`
	Body        []byte            `json:"body,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
	// Claims holds the identity claims resolved by an upstream authorizer.
	Claims map[string]string `json:"claims,omitempty"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// Handler produces a well-formed Response for every Request.
type Handler interface {
	Handle(ctx context.Context, req *Request) *Response
}

// PathParam returns the named path parameter or "".
func (r *Request) PathParam(name string) string {
	if r == nil || r.PathParams == nil {
		return ""
	}
	return r.PathParams[name]
}

// QueryParam returns the named query string parameter or "".
func (r *Request) QueryParam(name string) string {
	if r == nil || r.QueryParams == nil {
		return ""
	}
	return r.QueryParams[name]
}

// Header returns a header value, matching the name case-insensitively.
func (r *Request) Header(name string) string {
	if r == nil {
		return ""
	}
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// FromAPIGateway converts an API Gateway proxy event into a Request.
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		PathParams:  event.PathParameters,
		Body:        []byte(event.Body),
		RequestID:   event.RequestContext.RequestID,
		Claims:      authorizerClaims(event.RequestContext.Authorizer),
	}
}

// ToAPIGateway converts a Response into an API Gateway proxy response.
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// authorizerClaims flattens the "claims" block a Cognito user pool
// authorizer places in the request context.
func authorizerClaims(authorizer map[string]interface{}) map[string]string {
	raw, ok := authorizer["claims"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}

	claims := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			claims[k] = s
		}
	}
	return claims
}
