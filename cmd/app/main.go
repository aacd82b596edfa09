package main

import (
	"context"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/di"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	service := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go service.Bot.Run(ctx)

	service.HTTP.Serve()
}
