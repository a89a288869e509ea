package infra

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscognito"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// NewGreetingStack declares a Cognito user pool, the greeting function, and a
// REST API with GET /greet behind a Cognito authorizer and a public GET /health.
func NewGreetingStack(scope constructs.Construct, id string, props *StackProps) awscdk.Stack {
	stack := newStack(scope, id, props)

	userPool := awscognito.NewUserPool(stack, jsii.String("GreetingApiUserPool"), &awscognito.UserPoolProps{
		UserPoolName: jsii.String("greeting-api-user-pool"),
		SignInAliases: &awscognito.SignInAliases{
			Email:    jsii.Bool(true),
			Username: jsii.Bool(true),
		},
		AutoVerify: &awscognito.AutoVerifiedAttrs{Email: jsii.Bool(true)},
		PasswordPolicy: &awscognito.PasswordPolicy{
			MinLength:        jsii.Number(8),
			RequireLowercase: jsii.Bool(true),
			RequireUppercase: jsii.Bool(true),
			RequireDigits:    jsii.Bool(true),
			RequireSymbols:   jsii.Bool(false),
		},
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	client := awscognito.NewUserPoolClient(stack, jsii.String("GreetingApiUserPoolClient"), &awscognito.UserPoolClientProps{
		UserPool:           userPool,
		UserPoolClientName: jsii.String("greeting-api-client"),
		GenerateSecret:     jsii.Bool(false),
		AuthFlows: &awscognito.AuthFlow{
			UserPassword:      jsii.Bool(true),
			UserSrp:           jsii.Bool(true),
			AdminUserPassword: jsii.Bool(true),
		},
	})

	fn := NewGoFunction(stack, "GreetingLambda", assetRoot(props), &GoFunctionProps{
		Binary:      "greeting",
		TimeoutSecs: 30,
		MemoryMB:    256,
	})
	// Tokens resolve at deploy time, so these go through AddEnvironment
	fn.AddEnvironment(jsii.String("USER_POOL_ID"), userPool.UserPoolId(), nil)
	fn.AddEnvironment(jsii.String("USER_POOL_CLIENT_ID"), client.UserPoolClientId(), nil)

	api := awsapigateway.NewRestApi(stack, jsii.String("GreetingApi"), &awsapigateway.RestApiProps{
		RestApiName:                 jsii.String("Greeting API"),
		Description:                 jsii.String("API Gateway for greeting service with Cognito authentication"),
		DefaultCorsPreflightOptions: corsPreflight("Content-Type", "Authorization"),
	})

	authorizer := awsapigateway.NewCognitoUserPoolsAuthorizer(stack, jsii.String("CognitoAuthorizer"), &awsapigateway.CognitoUserPoolsAuthorizerProps{
		CognitoUserPools: &[]awscognito.IUserPool{userPool},
		AuthorizerName:   jsii.String("greeting-api-authorizer"),
		IdentitySource:   jsii.String("method.request.header.Authorization"),
	})

	integration := awsapigateway.NewLambdaIntegration(fn, nil)

	api.Root().AddResource(jsii.String("greet"), nil).AddMethod(jsii.String("GET"), integration, &awsapigateway.MethodOptions{
		Authorizer:        authorizer,
		AuthorizationType: awsapigateway.AuthorizationType_COGNITO,
	})
	api.Root().AddResource(jsii.String("health"), nil).AddMethod(jsii.String("GET"), integration, nil)

	poolID := *userPool.UserPoolId()
	clientID := *client.UserPoolClientId()

	outputs := []struct {
		id, description string
		value           *string
	}{
		{"ApiEndpoint", "API Gateway endpoint URL", api.Url()},
		{"UserPoolId", "Cognito User Pool ID", userPool.UserPoolId()},
		{"UserPoolClientId", "Cognito User Pool Client ID", client.UserPoolClientId()},
		{"GreetEndpoint", "Authenticated greet endpoint", api.UrlForPath(jsii.String("/greet"))},
		{"HealthEndpoint", "Public health check endpoint", api.UrlForPath(jsii.String("/health"))},
		{"CreateTestUserCommand", "Command to create a test user", jsii.String(fmt.Sprintf(
			"aws cognito-idp admin-create-user --user-pool-id %s --username testuser --user-attributes Name=email,Value=test@example.com Name=email_verified,Value=true --temporary-password TempPass123! --message-action SUPPRESS",
			poolID))},
		{"SetUserPasswordCommand", "Command to set permanent password for test user", jsii.String(fmt.Sprintf(
			"aws cognito-idp admin-set-user-password --user-pool-id %s --username testuser --password TestPass123! --permanent",
			poolID))},
		{"AuthenticateCommand", "Command to get authentication token", jsii.String(fmt.Sprintf(
			"aws cognito-idp admin-initiate-auth --user-pool-id %s --client-id %s --auth-flow ADMIN_NO_SRP_AUTH --auth-parameters USERNAME=testuser,PASSWORD=TestPass123!",
			poolID, clientID))},
	}
	for _, out := range outputs {
		awscdk.NewCfnOutput(stack, jsii.String(out.id), &awscdk.CfnOutputProps{
			Value:       out.value,
			Description: jsii.String(out.description),
		})
	}

	return stack
}
