package main

import (
	"github.td.teradata.com/sandbox/touch-ctl/internal/cmd"
	"log"
)

func main() {
	log.Fatal(cmd.Execute())
}
