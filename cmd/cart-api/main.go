package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-cart-widget/internal/app/cartapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := cartapi.Run(ctx); err != nil {
		log.Fatalf("cart API: %v", err)
	}
}
