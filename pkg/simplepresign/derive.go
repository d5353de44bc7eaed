package simplepresign

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
	"strings"
	"sync"
)

// newHash is the constructor behind every digest this package computes. It
// is a variable so tests can observe whether signing work happened at all.
var newHash func() hash.Hash = sha256.New

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(newHash, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}

func hashSHA256(data []byte) []byte {
	h := newHash()
	h.Write(data)
	return h.Sum(nil)
}

// deriveSigningKey runs the four-stage HMAC chain that turns a secret access
// key into the key material for one date, region, and service.
func deriveSigningKey(secret, shortDate, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secret), shortDate)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)
	return hmacSHA256(kService, RequestSuffix)
}

// derivedKeyCache memoizes signing keys. The chain output changes only when
// the access key, date, region, or service changes, so a signer minting many
// URLs in one day reuses a single derivation.
type derivedKeyCache struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func newDerivedKeyCache() *derivedKeyCache {
	return &derivedKeyCache{values: make(map[string][]byte)}
}

func (c *derivedKeyCache) get(creds Credentials, region, service, shortDate string) []byte {
	id := strings.Join([]string{creds.AccessKeyID, shortDate, region, service}, "/")

	c.mu.RLock()
	key, ok := c.values[id]
	c.mu.RUnlock()
	if ok {
		return key
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if key, ok := c.values[id]; ok {
		return key
	}
	key = deriveSigningKey(creds.SecretAccessKey, shortDate, region, service)
	c.values[id] = key
	return key
}
