package main

import (
	"fmt"

	"github.com/temirov/ctxdump/internal/cli"
	"github.com/temirov/ctxdump/internal/utils"
)

// main is the entry point for the ctxdump command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(utils.LogLevelFromEnvironment())
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
