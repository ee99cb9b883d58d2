// Package ucdef defines the use case shapes shared across the application.
package ucdef

import "context"

// UserAction is a synchronous operation triggered by a user, usually over HTTP.
// The caller waits for the result and errors go straight back to the user.
//
// Type parameters:
//   - I: input data type (request payload)
//   - O: output data type
type UserAction[I, O any] interface {
	// OperationID returns a unique identifier for the use case.
	OperationID() string

	// Execute executes the use case.
	Execute(ctx context.Context, in I) (O, error)
}

// ManualCommand is an operation run by an operator from the command line.
// It returns no structured output; results go to the writer or logs carried by I.
type ManualCommand[I any] interface {
	// OperationID returns a unique identifier for the command.
	OperationID() string

	// Execute executes the manual command.
	Execute(ctx context.Context, in I) error
}
