package cityposter

import (
	"crypto/sha256"
	"encoding/binary"
	"hash/fnv"
	"math/rand"
)

// DeriveSeed returns the pseudo-random seed for a generation request.
// A non-nil override is returned unchanged; otherwise the seed is the first
// eight bytes of SHA-256 over the normalized text, masked non-negative.
// Stable across runs and platforms: two requests with the same text always
// agree on the seed.
func DeriveSeed(text string, override *int64) int64 {
	if override != nil {
		return *override
	}
	sum := sha256.Sum256([]byte(normalizeText(text)))
	return int64(binary.BigEndian.Uint64(sum[:8]) & 0x7fffffffffffffff)
}

// layerSeed mixes the request seed with a per-layer tag so every renderer
// owns an independent stream. Layers then keep identical geometry no matter
// which other layers run, or in what order.
func layerSeed(seed int64, tag string) int64 {
	h := fnv.New64a()
	h.Write([]byte(tag))
	return seed ^ int64(h.Sum64()&0x7fffffffffffffff)
}

func newRand(seed int64, tag string) *rand.Rand {
	return rand.New(rand.NewSource(layerSeed(seed, tag)))
}
