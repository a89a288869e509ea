// Package infra declares the CloudFormation stacks that deploy the functions.
package infra

import (
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// StackProps carries the settings every stack in the app shares
type StackProps struct {
	awscdk.StackProps

	// AssetRoot holds one directory per function, each containing the
	// compiled "bootstrap" binary.
	AssetRoot string
}

// GoFunctionProps describes a function built from cmd/lambda/<Binary>
type GoFunctionProps struct {
	Binary       string
	FunctionName string
	Description  string
	TimeoutSecs  float64
	MemoryMB     float64
	Environment  map[string]string
}

// NewGoFunction declares a function on the provided.al2023 runtime whose
// code is <assetRoot>/<Binary>. Logs are kept for one week.
func NewGoFunction(scope constructs.Construct, id string, assetRoot string, props *GoFunctionProps) awslambda.Function {
	logGroup := awslogs.NewLogGroup(scope, jsii.String(id+"Logs"), &awslogs.LogGroupProps{
		Retention:     awslogs.RetentionDays_ONE_WEEK,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	fnProps := &awslambda.FunctionProps{
		Runtime:    awslambda.Runtime_PROVIDED_AL2023(),
		Handler:    jsii.String("bootstrap"),
		Code:       awslambda.Code_FromAsset(jsii.String(filepath.Join(assetRoot, props.Binary)), nil),
		Timeout:    awscdk.Duration_Seconds(jsii.Number(props.TimeoutSecs)),
		MemorySize: jsii.Number(props.MemoryMB),
		LogGroup:   logGroup,
	}
	if props.FunctionName != "" {
		fnProps.FunctionName = jsii.String(props.FunctionName)
	}
	if props.Description != "" {
		fnProps.Description = jsii.String(props.Description)
	}
	if len(props.Environment) > 0 {
		env := make(map[string]*string, len(props.Environment))
		for k, v := range props.Environment {
			env[k] = jsii.String(v)
		}
		fnProps.Environment = &env
	}

	return awslambda.NewFunction(scope, jsii.String(id), fnProps)
}

// corsPreflight allows any origin and method with the given request headers
func corsPreflight(headers ...string) *awsapigateway.CorsOptions {
	return &awsapigateway.CorsOptions{
		AllowOrigins: awsapigateway.Cors_ALL_ORIGINS(),
		AllowMethods: awsapigateway.Cors_ALL_METHODS(),
		AllowHeaders: jsii.Strings(headers...),
	}
}
