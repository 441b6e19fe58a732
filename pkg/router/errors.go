package router

import "fmt"

// ActionNotFoundError reports an envelope whose actionName does not match
// any registered action. No handler is ever invoked in this case.
type ActionNotFoundError struct {
	Name string
}

func (e *ActionNotFoundError) Error() string {
	return fmt.Sprintf("action not found: %q", e.Name)
}

// ActionExecutionError wraps a failure raised by an action handler. The
// router performs no automatic retry; retry policy belongs to the caller.
type ActionExecutionError struct {
	Action string
	Err    error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action %q execution failed: %v", e.Action, e.Err)
}

func (e *ActionExecutionError) Unwrap() error {
	return e.Err
}
