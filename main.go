package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/mywatt/mywatt/client"
	"github.com/mywatt/mywatt/cmd"
	"github.com/mywatt/mywatt/config"
	"github.com/mywatt/mywatt/logging"
	"github.com/mywatt/mywatt/session"
)

func main() {
	// Load the .env file. Missing is fine, the defaults cover development.
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using defaults")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	sess := session.New()
	api := client.New(cfg, sess)

	cmd.Init(api)
	cmd.Execute()
}
