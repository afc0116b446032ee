// Package order provides the fulfillment order aggregate for the pharmacy
// ordering system: the delivery status state machine, the orthogonal payment
// sub-state machine, the pricing snapshot, and the append-only tracking log.
//
// Key business rules:
//   - Orders are created exclusively from an available medication request
//   - Line totals, subtotal, tax (5% of subtotal), and total are always
//     derived from the snapshot, never stored independently
//   - Delivery status follows confirmed -> packed -> out_for_delivery ->
//     delivered, with cancellation possible from any non-terminal status
//   - Payment follows pending -> paid/failed, paid -> refunded, and
//     failed -> pending for re-attempts
//   - Every status change appends exactly one tracking update
//   - Order numbers are ORD-<year>-<6-digit sequence>, strictly increasing
//     within a calendar year
package order
