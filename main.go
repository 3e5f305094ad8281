package main

import (
	"fmt"
	"os"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
