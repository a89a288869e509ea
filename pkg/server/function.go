package server

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/handlers"
	"lambda-services-api/pkg/lambda"
)

// APIGatewayHandler is the signature lambda.Start expects for proxy events
type APIGatewayHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// LambdaHandler adapts the function chosen by pick to API Gateway proxy
// events. The container is built on the first invocation and reused while
// the execution environment stays warm.
func LambdaHandler(cm *ConnectionManager, pick func(*Container) lambda.Handler) APIGatewayHandler {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		container, err := cm.GetContainer(ctx)
		if err != nil {
			logrus.WithError(err).Error("Failed to initialize container")
			return handlers.InternalErrorResponse(handlers.ResponseOptions{}).ToAPIGateway(), nil
		}

		resp := pick(container).Handle(ctx, lambda.FromAPIGateway(event))
		return resp.ToAPIGateway(), nil
	}
}
