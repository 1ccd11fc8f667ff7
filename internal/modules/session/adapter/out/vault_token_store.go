package out

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"

	"shiftware/internal/modules/session/domain"
	sessionout "shiftware/internal/modules/session/port/out"
	apperrors "shiftware/internal/platform/errors"
)

const (
	vaultSecretSize = 32
	vaultSaltSize   = 16
	vaultNonceSize  = 12
	vaultKeySize    = 32
	argonTime       = 3
	argonMem        = 64 * 1024
	argonPar        = 4
)

// FileTokenVault stores the persisted session as an AES-256-GCM encrypted
// JSON blob. The AEAD key is derived with Argon2id from a random secret
// created on first use and held in a 0600 key file. File layout:
// [16-byte salt][12-byte nonce][ciphertext].
type FileTokenVault struct {
	path    string
	keyPath string
}

func NewFileTokenVault(path, keyPath string) sessionout.TokenVault {
	return &FileTokenVault{path: path, keyPath: keyPath}
}

func (v *FileTokenVault) Save(_ context.Context, session domain.PersistedSession) error {
	secret, err := v.loadOrCreateSecret()
	if err != nil {
		return &apperrors.PersistenceError{Op: "vault key", Err: err}
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return &apperrors.PersistenceError{Op: "encode session", Err: err}
	}

	salt := make([]byte, vaultSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return &apperrors.PersistenceError{Op: "generate salt", Err: err}
	}
	gcm, err := newGCM(secret, salt)
	if err != nil {
		return &apperrors.PersistenceError{Op: "init cipher", Err: err}
	}
	nonce := make([]byte, vaultNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return &apperrors.PersistenceError{Op: "generate nonce", Err: err}
	}

	out := make([]byte, 0, vaultSaltSize+vaultNonceSize+len(payload)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, payload, nil)

	// Write-then-rename so the slot is never partially updated.
	tmp := v.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o600); err != nil {
		return &apperrors.PersistenceError{Op: "write vault", Err: err}
	}
	if err := os.Rename(tmp, v.path); err != nil {
		_ = os.Remove(tmp)
		return &apperrors.PersistenceError{Op: "commit vault", Err: err}
	}
	return nil
}

func (v *FileTokenVault) Load(_ context.Context) (domain.PersistedSession, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.PersistedSession{}, apperrors.ErrNoSavedSession
		}
		return domain.PersistedSession{}, &apperrors.PersistenceError{Op: "read vault", Err: err}
	}
	if len(data) < vaultSaltSize+vaultNonceSize {
		return domain.PersistedSession{}, &apperrors.PersistenceError{Op: "read vault", Err: fmt.Errorf("vault file truncated")}
	}

	secret, err := os.ReadFile(v.keyPath)
	if err != nil {
		return domain.PersistedSession{}, &apperrors.PersistenceError{Op: "read vault key", Err: err}
	}

	salt := data[:vaultSaltSize]
	nonce := data[vaultSaltSize : vaultSaltSize+vaultNonceSize]
	ciphertext := data[vaultSaltSize+vaultNonceSize:]

	gcm, err := newGCM(secret, salt)
	if err != nil {
		return domain.PersistedSession{}, &apperrors.PersistenceError{Op: "init cipher", Err: err}
	}
	payload, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return domain.PersistedSession{}, &apperrors.PersistenceError{Op: "decrypt vault", Err: err}
	}

	var session domain.PersistedSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.PersistedSession{}, &apperrors.PersistenceError{Op: "decode session", Err: err}
	}
	if session.Token == "" {
		return domain.PersistedSession{}, apperrors.ErrNoSavedSession
	}
	return session, nil
}

func (v *FileTokenVault) Clear(_ context.Context) error {
	if err := os.Remove(v.path); err != nil && !os.IsNotExist(err) {
		return &apperrors.PersistenceError{Op: "clear vault", Err: err}
	}
	return nil
}

func (v *FileTokenVault) loadOrCreateSecret() ([]byte, error) {
	secret, err := os.ReadFile(v.keyPath)
	if err == nil {
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(v.keyPath), 0o700); err != nil {
		return nil, err
	}
	secret = make([]byte, vaultSecretSize)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, err
	}
	if err := os.WriteFile(v.keyPath, secret, 0o600); err != nil {
		return nil, err
	}
	return secret, nil
}

func newGCM(secret, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(secret, salt, argonTime, argonMem, argonPar, vaultKeySize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
