package main

import (
	"log"

	"github.com/nicholaswilde/rescue-groups-mcp/cmd/rescue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	rescue.Execute()
}
