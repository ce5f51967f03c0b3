package main

import (
	"os"

	"github.com/project-registry/cmd"
	"github.com/project-registry/logutils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logutils.Log.WithError(err).Error("projectd exited")
		os.Exit(1)
	}
}
