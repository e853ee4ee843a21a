package rand

import (
	"crypto/rand"

	"github.com/sirupsen/logrus"
)

const tokenLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Token returns a random string of the requested length made from
// alphanumeric characters, using crypto/rand.
func Token(length int) string {
	// 64 characters would divide evenly into the 256 byte values; 62 do
	// not, so reject bytes that mask to an out-of-range index.
	var bitLength byte
	var bitMask byte
	for bits := len(tokenLetters) - 1; bits != 0; {
		bits = bits >> 1
		bitLength++
	}
	bitMask = 1<<bitLength - 1

	bufferSize := length + length/3

	result := make([]byte, length)
	for i, j, randomBytes := 0, 0, []byte{}; i < length; j++ {
		if j%bufferSize == 0 {
			randomBytes = secureRandomBytes(bufferSize)
		}
		if idx := int(randomBytes[j%bufferSize] & bitMask); idx < len(tokenLetters) {
			result[i] = tokenLetters[idx]
			i++
		}
	}

	return string(result)
}

func secureRandomBytes(length int) []byte {
	var randomBytes = make([]byte, length)
	_, err := rand.Read(randomBytes)
	if err != nil {
		logrus.Fatal("Unable to generate random bytes")
	}
	return randomBytes
}
