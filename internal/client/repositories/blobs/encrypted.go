package blobs

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
)

// Keys holding the encryption parameters. They are stored in clear text
// next to the sealed blobs.
const (
	KeySalt     = "crypto/salt"
	KeyVerifier = "crypto/verifier"
)

// EncryptedRepository seals every value with AES-GCM before handing it to
// the wrapped repository.
type EncryptedRepository struct {
	inner Repository
	key   []byte
}

// NewEncryptedRepository derives the storage key from passphrase. On first
// use it generates a salt and stores it together with a key verifier; later
// calls check the passphrase against that verifier and fail with
// common.ErrWrongPassphrase on mismatch.
func NewEncryptedRepository(ctx context.Context, inner Repository, passphrase []byte) (*EncryptedRepository, error) {
	salt, err := inner.Get(ctx, KeySalt)
	if err != nil {
		return nil, err
	}

	if salt == nil {
		salt = cryptox.NewSalt()
		key := cryptox.DeriveKey(passphrase, salt)
		err := inner.SetMany(ctx, map[string][]byte{
			KeySalt:     salt,
			KeyVerifier: cryptox.MakeVerifier(key),
		})
		if err != nil {
			common.WipeByteArray(key)
			return nil, err
		}
		return &EncryptedRepository{inner: inner, key: key}, nil
	}

	stored, err := inner.Get(ctx, KeyVerifier)
	if err != nil {
		return nil, err
	}

	key := cryptox.DeriveKey(passphrase, salt)
	if subtle.ConstantTimeCompare(stored, cryptox.MakeVerifier(key)) != 1 {
		common.WipeByteArray(key)
		return nil, common.ErrWrongPassphrase
	}

	return &EncryptedRepository{inner: inner, key: key}, nil
}

func (r *EncryptedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := r.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	plain, err := cryptox.Open(sealed, r.key)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", key, err)
	}
	if plain == nil {
		plain = []byte{}
	}
	return plain, nil
}

func (r *EncryptedRepository) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, r.key)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}
	return r.inner.Set(ctx, key, sealed)
}

func (r *EncryptedRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	sealed := make(map[string][]byte, len(values))
	for k, v := range values {
		s, err := cryptox.Seal(v, r.key)
		if err != nil {
			return fmt.Errorf("encrypt %s: %w", k, err)
		}
		sealed[k] = s
	}
	return r.inner.SetMany(ctx, sealed)
}

func (r *EncryptedRepository) Delete(ctx context.Context, key string) error {
	return r.inner.Delete(ctx, key)
}

// Close wipes the derived key from memory.
func (r *EncryptedRepository) Close() {
	common.WipeByteArray(r.key)
}
