package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// ComputeSignature returns the hex SHA-512 digest the gateway sends on callbacks.
// The concatenation order (order id, status code, gross amount, secret) is part
// of the gateway contract and must not change.
func ComputeSignature(orderID, statusCode, grossAmount, secret string) string {
	raw := orderID + statusCode + grossAmount + secret
	hash := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(hash[:])
}

// VerifySignature checks a callback signature in constant time.
func VerifySignature(orderID, statusCode, grossAmount, secret, signature string) bool {
	expected := ComputeSignature(orderID, statusCode, grossAmount, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
