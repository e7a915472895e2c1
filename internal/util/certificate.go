package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randBase36 draws n characters from crypto/rand.
func randBase36(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(base36Upper)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure is unrecoverable for code generation
			panic(err)
		}
		buf[i] = base36Upper[idx.Int64()]
	}
	return string(buf)
}

// GenerateCertificateID returns an identifier of the form
// CERT-<epoch-millis>-<9 random base36 chars>.
func GenerateCertificateID() string {
	return fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(), randBase36(9))
}

// GenerateVerificationCode returns a 12-character base36 code.
func GenerateVerificationCode() string {
	return randBase36(12)
}
