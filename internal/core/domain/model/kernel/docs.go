// Package kernel provides the shared domain primitives of the system.
//
// It currently contains the UUID value object used as the identity type for
// orders and principals. Kernel types are immutable, validated at
// construction, and safe for concurrent use. Higher-level packages depend on
// kernel; kernel depends on nothing above internal/pkg.
package kernel
