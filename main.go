package main

import (
	"slotinsight_backend/internal/app"

	log "github.com/sirupsen/logrus"
)

func main() {
	err := app.NewApp().Run()
	if err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
