package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Identity is the verified principal behind a credential.
type Identity struct {
	ID   kernel.UUID
	Role kernel.Role
	Name string
}

// IdentityVerifier resolves an opaque credential into a verified identity.
// Returns PermissionDeniedError when the credential does not check out.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}
