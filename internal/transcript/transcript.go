// Package transcript implements the SHA-256 Fiat-Shamir transcript used by
// the PlonK verifier: named, strictly-ordered challenges whose digests
// chain into one another.
package transcript

import (
	"crypto/sha256"

	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

type challenge struct {
	position int
	bindings [][]byte
	value    [32]byte
	computed bool
}

// Transcript is a rolling SHA-256 hash with named, positional challenges.
// Challenges must be computed in strictly ascending position order; each
// challenge's digest is chained in as a prefix of the next.
type Transcript struct {
	order      []string
	challenges map[string]*challenge
	previous   *challenge
}

// New creates a transcript over the given ordered challenge names. Position
// is assigned by index in names.
func New(names ...string) *Transcript {
	t := &Transcript{
		order:      names,
		challenges: make(map[string]*challenge, len(names)),
	}
	for i, name := range names {
		t.challenges[name] = &challenge{position: i}
	}
	return t
}

// Bind appends data to the accumulating binding list for the named
// challenge. It fails if the challenge was already computed.
func (t *Transcript) Bind(name string, data []byte) error {
	c, ok := t.challenges[name]
	if !ok {
		return verifyerr.New(verifyerr.KindChallengeNotFound)
	}
	if c.computed {
		return verifyerr.New(verifyerr.KindChallengeAlreadyComputed)
	}
	c.bindings = append(c.bindings, append([]byte(nil), data...))
	return nil
}

// ComputeChallenge resets the hash, absorbs the challenge name, the
// previous positional challenge's digest (if any), then every binding in
// insertion order, and returns the 32-byte digest. Repeat calls are
// idempotent. Challenges must be computed in ascending position order.
func (t *Transcript) ComputeChallenge(name string) ([32]byte, error) {
	c, ok := t.challenges[name]
	if !ok {
		return [32]byte{}, verifyerr.New(verifyerr.KindChallengeNotFound)
	}
	if c.computed {
		return c.value, nil
	}

	h := sha256.New()
	h.Write([]byte(name))

	if c.position != 0 {
		if t.previous == nil || t.previous.position != c.position-1 {
			return [32]byte{}, verifyerr.New(verifyerr.KindPreviousChallengeNotComputed)
		}
		h.Write(t.previous.value[:])
	}

	for _, binding := range c.bindings {
		h.Write(binding)
	}

	sum := h.Sum(nil)
	copy(c.value[:], sum)
	c.computed = true
	t.previous = c

	return c.value, nil
}
