package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"lambda-services-api/internal/middleware"
	"lambda-services-api/pkg/lambda"
)

// GinHandler exposes a Lambda-style handler on a gin route so the local
// server runs the exact code the functions run.
func GinHandler(h lambda.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := RequestFromGin(c)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusBadRequest, MessageBody{Message: "Invalid request body"})
			return
		}

		WriteGinResponse(c, h.Handle(c.Request.Context(), req))
	}
}

// RequestFromGin builds a Request shaped like an API Gateway proxy event.
// Multi-value headers and query parameters keep their first value; empty maps
// are left nil.
func RequestFromGin(c *gin.Context) (*lambda.Request, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	req := &lambda.Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Body:      body,
		RequestID: c.GetString(middleware.RequestIDKey),
	}

	if len(c.Request.Header) > 0 {
		req.Headers = make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			if len(v) > 0 {
				req.Headers[k] = v[0]
			}
		}
	}

	if query := c.Request.URL.Query(); len(query) > 0 {
		req.QueryParams = make(map[string]string, len(query))
		for k, v := range query {
			if len(v) > 0 {
				req.QueryParams[k] = v[0]
			}
		}
	}

	if len(c.Params) > 0 {
		req.PathParams = make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			req.PathParams[p.Key] = p.Value
		}
	}

	if claims, ok := c.Get(middleware.ClaimsKey); ok {
		if m, ok := claims.(map[string]string); ok {
			req.Claims = m
		}
	}

	return req, nil
}

// WriteGinResponse copies a Response onto the gin writer
func WriteGinResponse(c *gin.Context, resp *lambda.Response) {
	if resp == nil {
		resp = InternalErrorResponse(ResponseOptions{})
	}

	for k, v := range resp.Headers {
		c.Header(k, v)
	}

	contentType := resp.Headers["Content-Type"]
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}
