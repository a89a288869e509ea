package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

// AppConfig selects the deployment target for every stack
type AppConfig struct {
	Account   string
	Region    string
	AssetRoot string
}

// NewApp declares every stack on a new CDK app
func NewApp(cfg AppConfig) awscdk.App {
	app := awscdk.NewApp(nil)
	AddStacks(app, cfg)
	return app
}

// AddStacks declares every stack on app and returns them by id
func AddStacks(app awscdk.App, cfg AppConfig) map[string]awscdk.Stack {
	props := &StackProps{AssetRoot: cfg.AssetRoot}
	if cfg.Account != "" || cfg.Region != "" {
		props.Env = &awscdk.Environment{}
		if cfg.Account != "" {
			props.Env.Account = jsii.String(cfg.Account)
		}
		if cfg.Region != "" {
			props.Env.Region = jsii.String(cfg.Region)
		}
	}

	return map[string]awscdk.Stack{
		"HelloCdkStack":     NewHelloStack(app, "HelloCdkStack", props),
		"SimpleLambdaStack": NewWeatherStack(app, "SimpleLambdaStack", props),
		"BetterLambdaStack": NewServicesStack(app, "BetterLambdaStack", props),
		"GreetingApiStack":  NewGreetingStack(app, "GreetingApiStack", props),
		"HelloWorldLambda":  NewHelloWorldStack(app, "HelloWorldLambda", props),
		"HelloVpcCdkStack":  NewVpcStack(app, "HelloVpcCdkStack", props),
	}
}
