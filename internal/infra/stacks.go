package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

var apiClientHeaders = []string{"Content-Type", "X-Amz-Date", "Authorization", "X-Api-Key"}

const helloInline = `exports.handler = async function(event) {
  return {
    statusCode: 200,
    body: JSON.stringify('Hello World!'),
  };
};`

func newStack(scope constructs.Construct, id string, props *StackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	return awscdk.NewStack(scope, &id, &sprops)
}

func assetRoot(props *StackProps) string {
	if props == nil || props.AssetRoot == "" {
		return "dist"
	}
	return props.AssetRoot
}

// NewHelloStack declares an inline function answering "Hello World!" on a
// public function URL.
func NewHelloStack(scope constructs.Construct, id string, props *StackProps) awscdk.Stack {
	stack := newStack(scope, id, props)

	fn := awslambda.NewFunction(stack, jsii.String("HelloWorldFunction"), &awslambda.FunctionProps{
		Runtime: awslambda.Runtime_NODEJS_20_X(),
		Handler: jsii.String("index.handler"),
		Code:    awslambda.Code_FromInline(jsii.String(helloInline)),
	})

	url := fn.AddFunctionUrl(&awslambda.FunctionUrlOptions{
		AuthType: awslambda.FunctionUrlAuthType_NONE,
	})

	awscdk.NewCfnOutput(stack, jsii.String("FunctionUrlOutput"), &awscdk.CfnOutputProps{
		Value: url.Url(),
	})

	return stack
}

// NewWeatherStack declares the weather function behind GET and POST /weather.
func NewWeatherStack(scope constructs.Construct, id string, props *StackProps) awscdk.Stack {
	stack := newStack(scope, id, props)

	fn := NewGoFunction(stack, "WeatherHandler", assetRoot(props), &GoFunctionProps{
		Binary:       "weather",
		FunctionName: "simple-lambda-weather-handler",
		Description:  "Lambda function to handle weather API requests",
		TimeoutSecs:  30,
		MemoryMB:     256,
		Environment:  map[string]string{"ENVIRONMENT": "production"},
	})

	api := awsapigateway.NewRestApi(stack, jsii.String("WeatherApi"), &awsapigateway.RestApiProps{
		RestApiName:                 jsii.String("Simple Weather API"),
		Description:                 jsii.String("API Gateway for weather Lambda function"),
		DefaultCorsPreflightOptions: corsPreflight(apiClientHeaders...),
	})

	integration := awsapigateway.NewLambdaIntegration(fn, nil)
	weather := api.Root().AddResource(jsii.String("weather"), nil)
	weather.AddMethod(jsii.String("GET"), integration, nil)
	weather.AddMethod(jsii.String("POST"), integration, nil)

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{
		Value:       api.Url(),
		Description: jsii.String("Weather API Gateway URL"),
	})
	awscdk.NewCfnOutput(stack, jsii.String("LambdaFunctionName"), &awscdk.CfnOutputProps{
		Value:       fn.FunctionName(),
		Description: jsii.String("Weather Lambda Function Name"),
	})

	return stack
}

// NewServicesStack declares the user and order functions and routes
// POST /users, GET /users/{userId}, POST /orders and GET /orders/{orderId}.
func NewServicesStack(scope constructs.Construct, id string, props *StackProps) awscdk.Stack {
	stack := newStack(scope, id, props)
	root := assetRoot(props)

	users := NewGoFunction(stack, "UserServiceFunction", root, &GoFunctionProps{
		Binary:      "users",
		TimeoutSecs: 30,
		MemoryMB:    512,
		Environment: map[string]string{"ENVIRONMENT": "production"},
	})
	orders := NewGoFunction(stack, "OrderServiceFunction", root, &GoFunctionProps{
		Binary:      "orders",
		TimeoutSecs: 30,
		MemoryMB:    512,
	})

	api := awsapigateway.NewRestApi(stack, jsii.String("ServicesApi"), &awsapigateway.RestApiProps{
		RestApiName:                 jsii.String("Lambda Services"),
		Description:                 jsii.String("This service serves Lambda functions via API Gateway."),
		DefaultCorsPreflightOptions: corsPreflight(apiClientHeaders...),
	})

	addResourceRoutes(api, "users", "{userId}", awsapigateway.NewLambdaIntegration(users, nil))
	addResourceRoutes(api, "orders", "{orderId}", awsapigateway.NewLambdaIntegration(orders, nil))

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{
		Value:       api.Url(),
		Description: jsii.String("API Gateway URL"),
	})

	return stack
}

func addResourceRoutes(api awsapigateway.RestApi, collection, idParam string, integration awsapigateway.Integration) {
	resource := api.Root().AddResource(jsii.String(collection), nil)
	resource.AddMethod(jsii.String("POST"), integration, nil)
	resource.AddResource(jsii.String(idParam), nil).AddMethod(jsii.String("GET"), integration, nil)
}

// NewHelloWorldStack declares the hello-world function with read access to
// the account's bucket inventory.
func NewHelloWorldStack(scope constructs.Construct, id string, props *StackProps) awscdk.Stack {
	stack := newStack(scope, id, props)

	fn := NewGoFunction(stack, "HelloWorldFunction", assetRoot(props), &GoFunctionProps{
		Binary:      "hello",
		Description: "A Go Hello World Lambda function with AWS SDK",
		TimeoutSecs: 30,
		MemoryMB:    128,
	})

	fn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings("s3:ListAllMyBuckets", "s3:GetBucketLocation"),
		Resources: jsii.Strings("*"),
	}))

	awscdk.NewCfnOutput(stack, jsii.String("HelloWorldLambdaArn"), &awscdk.CfnOutputProps{
		Value:       fn.FunctionArn(),
		Description: jsii.String("ARN of the Hello World Lambda function"),
	})
	awscdk.NewCfnOutput(stack, jsii.String("HelloWorldLambdaName"), &awscdk.CfnOutputProps{
		Value:       fn.FunctionName(),
		Description: jsii.String("Name of the Hello World Lambda function"),
	})

	return stack
}
