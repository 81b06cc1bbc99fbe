package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/ghaudit/cmd/cli"
	"github.com/temirov/ghaudit/internal/audit"
)

const (
	exitErrorTemplateConstant = "%v\n"

	exitCodeSuccessConstant       = 0
	exitCodeFailureConstant       = 1
	exitCodeConfigurationConstant = 2
)

// main executes the ghaudit command-line application. Configuration problems
// exit with a distinct code so callers can tell misconfiguration apart from a
// failed audit.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(exitCodeFor(executionError))
}

// exitCodeFor maps an execution error onto the process exit code:
// configuration problems exit 2, every other failure (including a non-empty
// audit report) exits 1.
func exitCodeFor(executionError error) int {
	if executionError == nil {
		return exitCodeSuccessConstant
	}

	var configurationError audit.ConfigurationError
	if errors.As(executionError, &configurationError) {
		return exitCodeConfigurationConstant
	}
	return exitCodeFailureConstant
}
