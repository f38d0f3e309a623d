// Package principal models the authenticated caller identity handed to the
// core by the authentication collaborator.
//
// Credential issuance and verification happen outside this system; by the
// time a request reaches the core it carries an opaque, already-authenticated
// principal consisting of an identity and a role. The core only uses the
// principal for authorization decisions (who may claim, advance, cancel, or
// subscribe to what).
package principal

import (
	"fmt"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/pkg/errs"
	"quickdrop/internal/pkg/guard"
)

// Role is the coarse authorization role of a principal.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places orders and tracks their own deliveries.
	RoleCustomer

	// RolePartner claims orders and reports progress and location.
	RolePartner

	// RoleAdmin observes every order through the admin console.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RolePartner:  "partner",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a wire name ("customer", "partner", "admin") into a
// Role. Returns a ValueIsInvalidError for unrecognized names.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the defined roles.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RolePartner && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// ErrPrincipalIsNotConstructed is returned when validating a zero-value
// Principal that was not created via NewPrincipal.
var ErrPrincipalIsNotConstructed = errs.NewValueIsRequiredError(
	"Principal must be created via NewPrincipal constructor")

// Principal is the immutable identity+role pair of an authenticated caller.
type Principal struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewPrincipal creates a validated principal.
func NewPrincipal(id kernel.UUID, role Role) (Principal, error) {
	p := Principal{
		guard: guard.NewConstructorGuard(),
	}

	if err := p.setID(id); err != nil {
		return Principal{}, err
	}
	if err := p.setRole(role); err != nil {
		return Principal{}, err
	}

	return p, nil
}

// Validate ensures the principal was created via NewPrincipal.
func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

// ID returns the principal's identity.
func (p Principal) ID() kernel.UUID {
	return p.id
}

// Role returns the principal's role.
func (p Principal) Role() Role {
	return p.role
}

// IsCustomer reports whether the principal acts as a customer.
func (p Principal) IsCustomer() bool {
	return p.role == RoleCustomer
}

// IsPartner reports whether the principal acts as a delivery partner.
func (p Principal) IsPartner() bool {
	return p.role == RolePartner
}

// IsAdmin reports whether the principal acts as an admin.
func (p Principal) IsAdmin() bool {
	return p.role == RoleAdmin
}

// String returns "role:id" for logging.
func (p Principal) String() string {
	return fmt.Sprintf("%s:%s", p.role, p.id)
}

func (p *Principal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Principal) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}
