// Package request provides the medication request aggregate and its status
// state machine for the pharmacy ordering system.
//
// The package includes:
//   - Request: the aggregate root tracking a patient's medication ask
//   - Status: a state machine enforcing the request transition table
//   - Urgency: the requested urgency level
//
// Key business rules:
//   - Requests start in pending and move only along the transition table
//   - Quantity is at least 1 and immutable once the status leaves pending
//   - Fulfilled and cancelled are terminal; the only privileged exception is
//     Reopen, which the lifecycle coordinator uses to return a fulfilled
//     request to available when its order is cancelled
package request
