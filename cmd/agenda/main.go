package main

import (
	"log"

	"github.com/MrSnakeDoc/agenda/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ agenda failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ agenda stopped with error: %v", err)
	}
}
