package ports

import "context"

// PasswordHasher performs one-way hashing and verification of plaintext
// passwords. Compare returns (false, nil) on a clean mismatch; an error
// means the transform itself failed and should be treated as fatal.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Compare(ctx context.Context, plaintext, hashed string) (bool, error)
}
