// Package audit implements the organisation security audit engine used by
// the ghaudit CLI.
//
// It exposes CommandBuilder for wiring the audit Cobra command, Engine for
// driving the enabled checks against one organisation snapshot, the check
// implementations themselves, and the report formatter that renders each
// failure into observation and recommendation text.
package audit
