package main

import (
	"log"

	"github.com/gx0r/jwt-secret-finder/cmd/jwtcrack/app"
)

func main() {
	err := app.New().Execute()
	if err != nil {
		log.Fatal(err)
	}
}
