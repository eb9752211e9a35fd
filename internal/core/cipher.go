package core

import (
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/comalice/adis/internal/primitives"
)

var (
	// ErrDecode reports ciphertext that is not valid lowercase/uppercase hex
	// of even length.
	ErrDecode = errors.New("malformed ciphertext")

	// ErrEncoding reports a decryption whose XOR result is not valid UTF-8,
	// i.e. the keystream does not match the one used to encrypt.
	ErrEncoding = errors.New("decrypted bytes are not valid UTF-8")
)

// Encrypt XORs the UTF-8 bytes of plaintext with the cyclically repeated
// keystream and returns the result as a lowercase hex string. The empty
// plaintext encrypts to the empty string.
func Encrypt(plaintext string, keystream []byte) (string, error) {
	if len(keystream) == 0 {
		return "", fmt.Errorf("%w: empty keystream", primitives.ErrConfig)
	}
	data := []byte(plaintext)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ keystream[i%len(keystream)]
	}
	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. The keystream must be the one derived from the
// grid snapshot captured at encryption time (the key imprint), not from
// whatever the live grid has since evolved into.
func Decrypt(ciphertext string, keystream []byte) (string, error) {
	if len(keystream) == 0 {
		return "", fmt.Errorf("%w: empty keystream", primitives.ErrConfig)
	}
	data, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	for i := range data {
		data[i] ^= keystream[i%len(keystream)]
	}
	if !utf8.Valid(data) {
		return "", ErrEncoding
	}
	return string(data), nil
}
