package main

import (
	"os"

	"github.com/GoShelter-Admin/GoShelter-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
