package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/giftshop/internal/devserver"
	"github.com/dmitrijs2005/giftshop/internal/devserver/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := devserver.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
