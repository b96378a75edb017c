// Package main — entry point of class-service (HTTP API).
package main

import (
	"log"

	"github.com/ahaldeman-8thlight/video-class-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
