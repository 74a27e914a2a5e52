package main

import (
	"minebrief/cmd/cmd"
	"minebrief/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
