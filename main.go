package main

import (
	"log"

	"github.com/fawsd/crewrotation/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
