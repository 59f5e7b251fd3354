// @title Simple Polls API
// @version 1.0
// @description Polls with one vote per user per question, owner-managed questions and throttled logins

// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
package main

import (
	_ "github.com/alex-pricope/simple-polls/docs"

	"errors"
	"github.com/alex-pricope/simple-polls/api"
	"github.com/alex-pricope/simple-polls/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"os"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.BootstrapLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT") == "json")

	// Load env
	api.SetupViper()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logging.Log.Errorf("Failed to read config file: %v", err)
			panic("Failed to read config file: " + err.Error())
		}
		logging.Log.Warn("No config file found, using environment and defaults")
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
