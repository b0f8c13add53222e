package envelope

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

// idSize is the digest length in bytes; ids are twice as many hex characters.
const idSize = 16

// NewID returns a random 32 character hex request id.
func NewID() string {
	var seed [24]byte
	_, _ = rand.Read(seed[:16])
	binary.BigEndian.PutUint64(seed[16:], uint64(time.Now().UnixNano()))

	h, err := blake2b.New(idSize, nil)
	if err != nil {
		// Only possible for an invalid size or key.
		panic("envelope: blake2b: " + err.Error())
	}
	h.Write(seed[:])
	return hex.EncodeToString(h.Sum(nil))
}
