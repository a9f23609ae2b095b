package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-cart-widget/internal/app/widget"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := widget.Run(ctx); err != nil {
		log.Fatalf("cart widget: %v", err)
	}
}
