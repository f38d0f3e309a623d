// Package order contains the Order aggregate root and its Status state
// machine.
//
// The aggregate enforces the lifecycle invariants locally (legal transitions,
// single assignment, write-once timestamps, terminal states), while the
// storage adapter enforces the same preconditions atomically on write. The
// pairing means a claim is decided by one conditional update at the storage
// layer, never by a read-check-write sequence, so at most one partner can
// ever win an order even across concurrent processes.
package order
