package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignAndVerify(t *testing.T) {
	secret := []byte("webhook-secret")
	payload := []byte(`{"event":"subscription.charged"}`)

	sig := Sign(secret, payload)
	assert.Len(t, sig, 64) // SHA256的十六进制长度
	assert.True(t, Verify(secret, payload, sig))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	secret := []byte("webhook-secret")
	sig := Sign(secret, []byte("original"))

	assert.False(t, Verify(secret, []byte("tampered"), sig))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	payload := []byte("payload")
	sig := Sign([]byte("secret-a"), payload)

	assert.False(t, Verify([]byte("secret-b"), payload, sig))
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	assert.False(t, Verify([]byte("secret"), []byte("payload"), "不是十六进制"))
	assert.False(t, Verify([]byte("secret"), []byte("payload"), ""))
}
