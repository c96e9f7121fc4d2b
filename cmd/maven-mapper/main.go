package main

import (
	"os"

	"github.com/raulmeloferreira/maven-mapper/internal/commands"
	"github.com/raulmeloferreira/maven-mapper/pkg/output"
)

func main() {
	if err := commands.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
