package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/models"
	"lambda-services-api/internal/services"
	"lambda-services-api/pkg/lambda"
)

const notAvailable = "N/A"

// HelloHandler reports invocation metadata together with an account snapshot
type HelloHandler struct {
	helloService services.HelloService
	opts         ResponseOptions
	logger       logrus.FieldLogger
}

// HelloResponse is the body returned by the hello-world function
type HelloResponse struct {
	Message               string                `json:"message"`
	Timestamp             string                `json:"timestamp"`
	RequestID             string                `json:"requestId"`
	FunctionName          string                `json:"functionName"`
	FunctionVersion       string                `json:"functionVersion"`
	RemainingTimeInMillis int64                 `json:"remainingTimeInMillis"`
	DefaultUser           *models.DirectoryUser `json:"defaultUser"`
	AWSInfo               AWSInfo               `json:"awsInfo"`
	EventInfo             EventInfo             `json:"eventInfo"`
}

// AWSInfo describes the account as seen by the function
type AWSInfo struct {
	Region        string   `json:"region"`
	S3BucketCount int      `json:"s3BucketCount"`
	S3BucketNames []string `json:"s3BucketNames"`
}

// EventInfo echoes parts of the triggering event
type EventInfo struct {
	HTTPMethod string `json:"httpMethod"`
	Path       string `json:"path"`
	UserAgent  string `json:"userAgent"`
}

// NewHelloHandler creates a new hello-world handler
func NewHelloHandler(helloService services.HelloService, logger logrus.FieldLogger) *HelloHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HelloHandler{
		helloService: helloService,
		opts:         ResponseOptions{CORS: true},
		logger:       logger.WithField("function", "hello"),
	}
}

// @Summary Hello world
// @Description Report invocation metadata, the default directory user and the account's buckets
// @Tags hello
// @Produce json
// @Success 200 {object} HelloResponse
// @Failure 500 {object} MessageBody
// @Router /hello [get]
func (h *HelloHandler) Handle(ctx context.Context, req *lambda.Request) *lambda.Response {
	return guard(h.logger, h.opts, func() (*lambda.Response, error) {
		if req == nil {
			req = &lambda.Request{}
		}
		logRequest(h.logger, req)

		snapshot, err := h.helloService.Snapshot(ctx)
		if err != nil {
			return nil, err
		}

		body := HelloResponse{
			Message:               "Hello World from Go Lambda!",
			Timestamp:             models.FormatTimestamp(time.Now()),
			RequestID:             req.RequestID,
			FunctionName:          lambdacontext.FunctionName,
			FunctionVersion:       lambdacontext.FunctionVersion,
			RemainingTimeInMillis: remainingTimeInMillis(ctx),
			DefaultUser:           snapshot.DefaultUser,
			AWSInfo: AWSInfo{
				Region:        snapshot.Region,
				S3BucketCount: snapshot.BucketCount,
				S3BucketNames: snapshot.BucketNames,
			},
			EventInfo: EventInfo{
				HTTPMethod: orNotAvailable(req.Method),
				Path:       orNotAvailable(req.Path),
				UserAgent:  orNotAvailable(req.Header("User-Agent")),
			},
		}

		if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
			body.RequestID = lc.AwsRequestID
		}

		h.logger.WithFields(logrus.Fields{
			"request_id":      body.RequestID,
			"s3_bucket_count": body.AWSInfo.S3BucketCount,
		}).Info("Hello world response ready")

		return JSONResponse(http.StatusOK, body, h.opts), nil
	})
}

// remainingTimeInMillis reports the time left before the invocation deadline,
// or zero when ctx carries none.
func remainingTimeInMillis(ctx context.Context) int64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	remaining := time.Until(deadline).Milliseconds()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
