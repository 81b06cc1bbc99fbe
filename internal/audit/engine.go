package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/ghaudit/internal/githubapi"
)

const (
	checkStartedMessageConstant  = "audit check started"
	checkPassedMessageConstant   = "audit check passed"
	checkFailedMessageConstant   = "audit check failed"
	checkErroredMessageConstant  = "audit check aborted by error"
	noChecksRanMessageConstant   = "no audit checks were executed"
	runCompletedMessageConstant  = "audit run completed"
	logFieldCheckNameConstant    = "check_name"
	logFieldCheckErrorConstant   = "check_error"
	logFieldFailureCountConstant = "failure_count"
)

// Engine runs the enabled checks against one organisation snapshot and
// aggregates every failure into an ordered report. Checks execute strictly
// sequentially in the registered order; one check's failure never hides
// another's.
type Engine struct {
	reader OrganisationReader
	checks []Check
	logger *zap.Logger
}

// NewEngine constructs an Engine with the default check set in its fixed
// execution order.
func NewEngine(reader OrganisationReader, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		reader: reader,
		logger: logger,
		checks: []Check{
			TwoFactorCheck{},
			AdminCommitActivityCheck{},
			BranchProtectionCheck{},
			AdminAllowListCheck{},
			MemberAllowListCheck{},
			InstalledAppAllowListCheck{},
		},
	}
}

// Run executes every enabled check and returns the aggregated report. A
// non-audit error inside a check is captured as that check's failure and the
// run continues. When configuration disabled every check, the report carries
// a single synthesized no-checks-executed failure instead of a silent pass.
func (engine *Engine) Run(executionContext context.Context, organisation githubapi.Organisation, configuration Config) Report {
	var report Report
	anyCheckExecuted := false

	for _, registeredCheck := range engine.checks {
		if !registeredCheck.Enabled(configuration) {
			continue
		}
		anyCheckExecuted = true

		checkNameField := zap.String(logFieldCheckNameConstant, string(registeredCheck.Name()))
		engine.logger.Info(checkStartedMessageConstant, checkNameField)

		outcome, checkError := registeredCheck.Evaluate(executionContext, organisation, configuration, engine.reader)
		switch {
		case checkError != nil:
			engine.logger.Warn(checkErroredMessageConstant, checkNameField, zap.String(logFieldCheckErrorConstant, checkError.Error()))
			report.Failures = append(report.Failures, CheckErrorDetail{Check: registeredCheck.Name(), Cause: checkError})
		case !outcome.Passed():
			engine.logger.Info(checkFailedMessageConstant, checkNameField)
			report.Failures = append(report.Failures, outcome.Detail())
		default:
			engine.logger.Info(checkPassedMessageConstant, checkNameField)
		}
	}

	if !anyCheckExecuted {
		engine.logger.Warn(noChecksRanMessageConstant)
		report.Failures = append(report.Failures, NoChecksExecutedDetail{})
	}

	engine.logger.Info(runCompletedMessageConstant, zap.Int(logFieldFailureCountConstant, len(report.Failures)))
	return report
}
