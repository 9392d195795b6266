package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand"

	"rayimpact/rmath"
)

// rng wraps a per-sampler-clone math/rand PRNG (§4.B "A Sampler is cloned
// per worker thread; each clone owns its RNG state"), standing in for
// original_source's RandomNumberGenerator; math/rand's generator is not a
// Mersenne Twister.
type rng struct {
	r *mrand.Rand
}

func newRNG() *rng {
	return &rng{r: mrand.New(mrand.NewSource(osEntropySeed()))}
}

func newRNGWithSeed(seed int64) *rng {
	return &rng{r: mrand.New(mrand.NewSource(seed))}
}

func osEntropySeed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		var buf [8]byte
		_, _ = rand.Read(buf[:])
		return int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return n.Int64()
}

func (g *rng) uniformFloat() rmath.Float {
	return rmath.Float(g.r.Float32())
}

// uniformUint32 returns a value in [0, upperLimit).
func (g *rng) uniformUint32(upperLimit uint32) uint32 {
	return uint32(g.r.Int63n(int64(upperLimit)))
}
