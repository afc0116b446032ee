// Package inventory provides the stock ledger side of the lifecycle engine:
// per-medication on-hand quantities with atomic reserve and release
// semantics. Reservations are tied to order creation and releases to order
// cancellation; both are persisted inside the same transaction as the order
// write so no partial decrement ever survives an abort.
package inventory
