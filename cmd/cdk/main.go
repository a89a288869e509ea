// Command cdk synthesizes the stacks that deploy the functions.
package main

import (
	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/config"
	"lambda-services-api/internal/infra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	app := infra.NewApp(infra.AppConfig{
		Account:   cfg.CDK.Account,
		Region:    cfg.CDK.Region,
		AssetRoot: cfg.CDK.AssetRoot,
	})

	logrus.WithField("asset_root", cfg.CDK.AssetRoot).Info("Synthesizing stacks")
	app.Synth(nil)
}
