package main

import (
	"os"

	"tubelens/cmd/handlers"
)

func main() {
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
