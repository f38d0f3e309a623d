// Package errs provides the standardized error types of the application.
//
// Besides the generic validation errors (ValueIsRequiredError,
// ValueIsInvalidError, ValueIsOutOfRangeError, ObjectNotFoundError) the
// package carries the coordination error taxonomy returned by the order
// lifecycle operations:
//
//   - ConflictError: a conditional update predicate failed, e.g. another
//     partner already claimed the order
//   - ForbiddenError: the caller is not authorized for the object or action
//   - IllegalTransitionError: the requested status is not reachable from the
//     current one
//   - NoOpError: the requested status equals the current one
//
// Each error type follows the same pattern: a sentinel error variable, a
// struct with detail fields and an optional Cause, constructor functions with
// and without cause, Error() for formatting and Unwrap() so that errors.Is
// classification against the sentinel works. All decisions these errors
// describe are terminal and local; none of them triggers a retry inside the
// core.
package errs
