package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-gallery/internal/platform/logging"
)

// Operations run in three steps: Validate → Perform → Respond.
//
//  1. VALIDATE - check inputs and preconditions before anything leaves the process
//  2. PERFORM  - make the single outbound call
//  3. RESPOND  - shape the result for the caller
//
// A failed step stops the operation; later steps never run.

// ExecutionStep names a step of an operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionValidationError creates an error for the validate step.
func NewExecutionValidationError(message string, cause error) error {
	return &ExecutionError{Step: StepValidate, Message: message, Cause: cause}
}

// NewPerformError creates an error for the perform step.
func NewPerformError(message string, cause error) error {
	return &ExecutionError{Step: StepPerform, Message: message, Cause: cause}
}

// NewRespondError creates an error for the respond step.
func NewRespondError(message string, cause error) error {
	return &ExecutionError{Step: StepRespond, Message: message, Cause: cause}
}

// Executor runs operations step by step with logging at each boundary.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the functions for each step.
type Operation[I, P, O any] struct {
	// Name identifies this operation for logging.
	Name string

	// Validate checks inputs and preconditions.
	// Return an error to abort before Perform runs.
	Validate func(ctx context.Context, input I) error

	// Perform executes the main operation, usually one outbound call.
	Perform func(ctx context.Context, input I) (P, error)

	// Respond transforms the performed result for the caller.
	Respond func(ctx context.Context, input I, performed P) (O, error)
}

type executionContext[I, P, O any] struct {
	logger *slog.Logger
	op     Operation[I, P, O]
	input  I
}

func (e *executionContext[I, P, O]) runValidate(ctx context.Context) error {
	if e.op.Validate == nil {
		return nil
	}

	e.logger.DebugContext(ctx, "starting validation")

	err := e.op.Validate(ctx, e.input)
	if err != nil {
		e.logger.WarnContext(ctx, "validation failed", slog.Any("error", err))

		return NewExecutionValidationError("input validation failed", err)
	}

	e.logger.DebugContext(ctx, "validation passed")

	return nil
}

func (e *executionContext[I, P, O]) runPerform(ctx context.Context) (P, error) {
	var zero P

	if e.op.Perform == nil {
		return zero, nil
	}

	e.logger.DebugContext(ctx, "performing operation")

	performed, err := e.op.Perform(ctx, e.input)
	if err != nil {
		e.logger.ErrorContext(ctx, "perform failed", slog.Any("error", err))

		return zero, NewPerformError("operation failed", err)
	}

	e.logger.DebugContext(ctx, "operation performed")

	return performed, nil
}

func (e *executionContext[I, P, O]) runRespond(ctx context.Context, performed P) (O, error) {
	var zero O

	if e.op.Respond == nil {
		return zero, nil
	}

	e.logger.DebugContext(ctx, "preparing response")

	result, err := e.op.Respond(ctx, e.input, performed)
	if err != nil {
		e.logger.WarnContext(ctx, "respond formatting failed", slog.Any("error", err))

		return zero, NewRespondError("response formatting failed", err)
	}

	return result, nil
}

// Execute runs op against input. The context logger is preferred over the
// executor's own so request IDs appear on every step's log line.
func Execute[I, P, O any](ctx context.Context, exec *Executor, op Operation[I, P, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	ec := &executionContext[I, P, O]{
		logger: logger,
		op:     op,
		input:  input,
	}

	err := ec.runValidate(ctx)
	if err != nil {
		return zero, err
	}

	performed, err := ec.runPerform(ctx)
	if err != nil {
		return zero, err
	}

	result, err := ec.runRespond(ctx, performed)
	if err != nil {
		return zero, err
	}

	logger.InfoContext(ctx, "operation completed",
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
