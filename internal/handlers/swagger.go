package handlers

// @title Lambda Services API
// @version 1.0
// @description Mock user, order, weather, hello-world and greeting functions served locally with the same contract as the deployed API Gateway stacks

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a token from POST /dev/token.

// @tag.name users
// @tag.description Mock user resource

// @tag.name orders
// @tag.description Mock order resource

// @tag.name weather
// @tag.description Mock weather readings

// @tag.name hello
// @tag.description Invocation metadata and account snapshot

// @tag.name greeting
// @tag.description Authenticated greeting
