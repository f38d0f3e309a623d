// Package auth extracts the authenticated principal from incoming requests.
//
// Authentication itself happens upstream; a trusted gateway verifies
// credentials and forwards the caller's identity and role. This package only
// parses what the gateway attached and never does verification of its own.
package auth

import (
	"net/http"
	"net/url"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/principal"
	"quickdrop/internal/pkg/errs"
)

// Header names populated by the gateway.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Query parameter names for transports without custom headers (websocket
// handshakes from browsers).
const (
	QueryUserID   = "userId"
	QueryUserRole = "role"
)

// FromHeaders builds the principal from gateway headers.
func FromHeaders(header http.Header) (principal.Principal, error) {
	return build(header.Get(HeaderUserID), header.Get(HeaderUserRole))
}

// FromQuery builds the principal from handshake query parameters.
func FromQuery(values url.Values) (principal.Principal, error) {
	return build(values.Get(QueryUserID), values.Get(QueryUserRole))
}

func build(rawID, rawRole string) (principal.Principal, error) {
	if rawID == "" {
		return principal.Principal{}, errs.NewValueIsRequiredError("userId")
	}
	if rawRole == "" {
		return principal.Principal{}, errs.NewValueIsRequiredError("role")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return principal.Principal{}, err
	}

	role, err := principal.RoleFromString(rawRole)
	if err != nil {
		return principal.Principal{}, err
	}

	return principal.NewPrincipal(id, role)
}
