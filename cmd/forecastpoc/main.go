// Package main is the entry point for the forecastpoc CLI.
//
// forecastpoc provisions the working environment for an Amazon Forecast
// proof of concept: a SageMaker notebook instance preloaded with the POC
// guide notebooks, and the IAM roles the walkthrough needs. Provisioning
// goes through a CloudFormation stack so teardown is a single command.
//
// Commands: init, deploy, status, destroy, template, diagnose, role, stage.
//
// For detailed usage information, run:
//
//	forecastpoc --help
package main

import (
	"fmt"
	"os"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
