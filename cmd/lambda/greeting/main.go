// Command greeting greets the caller resolved by the Cognito authorizer.
package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"lambda-services-api/pkg/lambda"
	"lambda-services-api/pkg/server"
)

func main() {
	awslambda.Start(server.LambdaHandler(server.GetConnectionManager(), func(c *server.Container) lambda.Handler {
		return c.Greeting
	}))
}
