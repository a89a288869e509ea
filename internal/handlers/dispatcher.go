package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"lambda-services-api/pkg/lambda"
)

// ResourceHandler implements the operations a ResourceDispatcher routes to.
// A nil response with a nil error means the operation did not match.
type ResourceHandler interface {
	HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error)
	HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error)
}

// ResourceDispatcher routes requests for a single mock resource by HTTP method
type ResourceDispatcher struct {
	resource string
	idParam  string
	handler  ResourceHandler
	opts     ResponseOptions
	logger   logrus.FieldLogger
}

// NewResourceDispatcher creates a dispatcher for resource. idParam names the
// path parameter carrying the resource identifier.
func NewResourceDispatcher(resource, idParam string, handler ResourceHandler, opts ResponseOptions, logger logrus.FieldLogger) *ResourceDispatcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ResourceDispatcher{
		resource: resource,
		idParam:  idParam,
		handler:  handler,
		opts:     opts,
		logger:   logger.WithField("resource", resource),
	}
}

// Handle implements lambda.Handler
//
//   - POST creates a record
//   - GET with an identifier returns the record
//   - GET without an identifier is not found
//   - any other method is not allowed
func (d *ResourceDispatcher) Handle(ctx context.Context, req *lambda.Request) *lambda.Response {
	return guard(d.logger, d.opts, func() (*lambda.Response, error) {
		if req == nil {
			req = &lambda.Request{}
		}
		logRequest(d.logger, req)

		var (
			resp *lambda.Response
			err  error
		)

		switch req.Method {
		case http.MethodPost:
			resp, err = d.handler.HandleCreate(ctx, req)
		case http.MethodGet:
			if req.PathParam(d.idParam) != "" {
				resp, err = d.handler.HandleGet(ctx, req)
			}
		default:
			return MessageResponse(http.StatusMethodNotAllowed, "Method not allowed", d.opts), nil
		}

		if err != nil {
			return nil, err
		}
		if resp == nil {
			return MessageResponse(http.StatusNotFound, "Not found", d.opts), nil
		}
		return resp, nil
	})
}

// guard runs fn and converts any returned error or panic into the generic
// 500 response. The fault detail is logged only.
func guard(logger logrus.FieldLogger, opts ResponseOptions, fn func() (*lambda.Response, error)) *lambda.Response {
	return guardWith(logger, func() *lambda.Response { return InternalErrorResponse(opts) }, fn)
}

func guardWith(logger logrus.FieldLogger, fallback func() *lambda.Response, fn func() (*lambda.Response, error)) (resp *lambda.Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"panic": fmt.Sprintf("%v", r),
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic while handling request")
			resp = fallback()
		}
	}()

	resp, err := fn()
	if err != nil {
		logger.WithError(err).Error("Error processing request")
		return fallback()
	}
	if resp == nil {
		logger.Error("Handler produced no response")
		return fallback()
	}
	return resp
}

// requestLog is the diagnostic view of a request written to the log
type requestLog struct {
	Method      string            `json:"httpMethod"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers,omitempty"`
	QueryParams map[string]string `json:"queryStringParameters,omitempty"`
	PathParams  map[string]string `json:"pathParameters,omitempty"`
	Body        string            `json:"body,omitempty"`
}

func logRequest(logger logrus.FieldLogger, req *lambda.Request) {
	event, err := json.Marshal(requestLog{
		Method:      req.Method,
		Path:        req.Path,
		Headers:     req.Headers,
		QueryParams: req.QueryParams,
		PathParams:  req.PathParams,
		Body:        string(req.Body),
	})
	if err != nil {
		event = []byte(fmt.Sprintf("%q", err.Error()))
	}

	logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"method":     req.Method,
		"path":       req.Path,
		"event":      string(event),
	}).Info("Handling request")
}
