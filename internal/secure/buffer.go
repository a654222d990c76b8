// Package secure provides memory-safe custody for sensitive strings held for
// the lifetime of the process, such as the raw endpoints recorded in the
// registration ledger.
package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned by Open after the buffer has been destroyed.
var ErrDestroyed = errors.New("secure: buffer destroyed")

// Buffer seals sensitive bytes in an encrypted memguard enclave. The
// plaintext only exists while a caller holds the locked buffer returned by
// Open, and the encrypted form is safe against swapping and heap dumps.
type Buffer struct {
	mu        sync.RWMutex
	enclave   *memguard.Enclave
	destroyed bool
}

// NewBuffer copies data into a protected enclave. The caller keeps ownership
// of data and should zero it if it is sensitive. Empty data yields a buffer
// that only ever reports ErrDestroyed; memguard cannot seal zero bytes.
func NewBuffer(data []byte) *Buffer {
	if len(data) == 0 {
		return &Buffer{}
	}
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// Open decrypts the buffer and returns the plaintext in a locked buffer.
// The caller must Destroy the returned buffer when done:
//
//	locked, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer locked.Destroy()
//	use(locked.Bytes())
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed || b.enclave == nil {
		return nil, ErrDestroyed
	}
	return b.enclave.Open()
}

// Destroy marks the buffer as destroyed; subsequent Opens fail with
// ErrDestroyed. Idempotent. For full cleanup of all enclaves at exit, call
// memguard.Purge.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.enclave = nil
	b.destroyed = true
}
