package main

import (
	"os"

	"github.com/hashgraph-online/conversational-agent-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
