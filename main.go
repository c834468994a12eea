package main

import (
	"log"

	"transferviz/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("transferviz: %v", err)
	}
}
