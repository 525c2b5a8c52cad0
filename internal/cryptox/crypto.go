// Package cryptox holds the at-rest encryption primitives used for stored
// blobs: argon2id key derivation, a key verifier and AES-GCM sealing.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of derived keys (AES-256).
const KeySize = 32

// SaltSize is the length of salts generated by NewSalt.
const SaltSize = 32

var ErrSealedTooShort = errors.New("sealed value is shorter than the nonce")

// DeriveKey stretches a passphrase into a KeySize key with argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier returns a value that proves knowledge of key without revealing it.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-GCM under key. The random nonce is
// prepended to the returned ciphertext.
func Seal(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())

	out := make([]byte, 0, len(nonce)+len(plaintext)+aesgcm.Overhead())
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func Open(sealed, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return nil, ErrSealedTooShort
	}

	return aesgcm.Open(nil, sealed[:ns], sealed[ns:], nil)
}
