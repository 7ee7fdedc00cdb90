package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/aretw0/envcheck/pkg/ports"
)

// KeySize is the length of an AES-256 key.
const KeySize = 32

// ErrNotSealed is returned when encryption is configured but the stored
// report was saved in the clear.
var ErrNotSealed = errors.New("report is missing its sealed envelope")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ReportStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals reports with
// AES-GCM before they reach the backend.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != KeySize {
		return nil, fmt.Errorf("active key must be %d bytes (AES-256), got %d", KeySize, len(config.ActiveKey))
	}
	return func(next ports.ReportStore) ports.ReportStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, workspace string, report *domain.Report) error {
	plainText, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt report: %w", err)
	}

	envelope := &domain.Report{
		Workspace: report.Workspace,
		CheckedAt: report.CheckedAt,
		Sealed:    ciphertext,
	}
	return m.next.Save(ctx, workspace, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, workspace string) (*domain.Report, error) {
	envelope, err := m.next.Load(ctx, workspace)
	if err != nil {
		return nil, err
	}
	if len(envelope.Sealed) == 0 {
		return nil, ErrNotSealed
	}

	plainText, err := decryptWithRotation(envelope.Sealed, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt report: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(plainText, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted report: %w", err)
	}
	return &report, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, workspace string) error {
	return m.next.Delete(ctx, workspace)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	for _, key := range append([][]byte{activeKey}, fallbackKeys...) {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
