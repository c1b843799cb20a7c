package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrURLExpired       = errors.New("signed url has expired")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformedExpiry  = errors.New("malformed expiry")
)

// Signer mints and verifies time-limited access tokens for objects in
// private buckets.
type Signer struct {
	key []byte
}

func NewSigner(key []byte) *Signer {
	return &Signer{
		key: key,
	}
}

func (s *Signer) Sign(bucket, path string, expiresAt time.Time) string {
	mac := hmac.New(sha256.New, s.key)
	fmt.Fprintf(mac, "%s/%s:%d", bucket, path, expiresAt.Unix())

	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Signer) Verify(bucket, path, expires, signature string) error {
	unix, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrMalformedExpiry
	}
	if time.Now().After(time.Unix(unix, 0)) {
		return ErrURLExpired
	}

	expected := s.Sign(bucket, path, time.Unix(unix, 0))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// SignedURL returns a time-limited link to an object in a private bucket.
func (s *DiskStore) SignedURL(bucket, path string, ttl time.Duration) string {
	expiresAt := time.Now().Add(ttl)
	query := url.Values{}
	query.Set("expires", strconv.FormatInt(expiresAt.Unix(), 10))
	query.Set("signature", s.signer.Sign(bucket, path, expiresAt))

	return fmt.Sprintf("%s/files/%s/%s?%s", s.baseURL, bucket, path, query.Encode())
}

// PublicURL returns a stable link to an object in a public bucket. The ts
// query parameter busts caches after replacement uploads.
func (s *DiskStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/files/%s/%s?t=%d", s.baseURL, bucket, path, time.Now().UnixMilli())
}

// VerifyAccess checks the expiry and signature of a request against a
// private bucket; public buckets always pass.
func (s *DiskStore) VerifyAccess(bucket, path, expires, signature string) error {
	if s.IsPublicBucket(bucket) {
		return nil
	}

	return s.signer.Verify(bucket, path, expires, signature)
}
