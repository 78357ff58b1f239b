package main

import (
	"os"

	"github.com/yacook/yacook/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
