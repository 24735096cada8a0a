// Package service contains the board and memo use cases. It sits between the
// HTTP handlers in internal/api and the stores in internal/store.
//
// Services validate input against the domain rules, run every write inside
// store.RunInTransaction, and decide between INSERT and UPDATE for memo
// upserts. They never build HTTP responses: a zero-row update or delete is
// reported through WriteResult rather than an error, and the caller decides
// how to present it.
//
// Error handling:
//   - Validation failures are returned as *domain.ValidationError.
//   - Missing records map to ErrPostNotFound and ErrMemoNotFound.
//   - Anything else is wrapped in *ServiceError, which keeps the store
//     error reachable through errors.Is and errors.As.
package service
