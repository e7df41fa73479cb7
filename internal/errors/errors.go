package errors

import "fmt"

// ─── types ────────────────────────────────────────────────────────────────────

// InputError reports a programming-contract violation in a request: bad
// port range, unknown service name, malformed flag value.
type InputError struct {
	Field   string
	Message string
}

// ExecError reports a failure running an external tool (ping, traceroute,
// iperf3), typically a missing binary.
type ExecError struct {
	Command string
	Message string
}

// NetworkError reports an operational network failure tied to a target.
type NetworkError struct {
	Target  string
	Message string
}

// ─── error interfaces ─────────────────────────────────────────────────────────

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("input error: %s", e.Message)
}

func (e *ExecError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("cannot run %s: %s", e.Command, e.Message)
	}
	return fmt.Sprintf("exec error: %s", e.Message)
}

func (e *NetworkError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("network error [%s]: %s", e.Target, e.Message)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

// ─── constructors ─────────────────────────────────────────────────────────────

func Input(field, msg string) error {
	return &InputError{Field: field, Message: msg}
}

func Exec(command, msg string) error {
	return &ExecError{Command: command, Message: msg}
}

func Network(target, msg string) error {
	return &NetworkError{Target: target, Message: msg}
}
