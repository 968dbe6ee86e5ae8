package main

import (
	"context"

	"lodgehub/config"
	"lodgehub/di"
	"lodgehub/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	go app.Consumer.Run(context.Background())

	app.HTTP.Serve()
}
