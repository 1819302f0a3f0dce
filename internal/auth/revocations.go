package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Revocations remembers logged-out tokens until they would have expired anyway.
// Each entry is dropped by one timer set at the token's exp.
type Revocations struct {
	mu      sync.Mutex
	revoked map[string]*time.Timer
	closed  bool
}

func NewRevocations() *Revocations {
	return &Revocations{revoked: make(map[string]*time.Timer)}
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *Revocations) Revoke(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	key := fingerprint(token)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if t, ok := r.revoked[key]; ok {
		t.Stop()
	}
	r.revoked[key] = time.AfterFunc(ttl, func() { r.forget(key) })
}

func (r *Revocations) forget(key string) {
	r.mu.Lock()
	delete(r.revoked, key)
	r.mu.Unlock()
}

func (r *Revocations) IsRevoked(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[fingerprint(token)]
	return ok
}

func (r *Revocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}

// Close stops every pending timer.
func (r *Revocations) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, t := range r.revoked {
		t.Stop()
		delete(r.revoked, key)
	}
	r.closed = true
}
