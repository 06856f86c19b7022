// Package hashtofield implements the BSB22 commitment hash-to-field step: a
// streaming writer that accumulates bytes and, on Sum, reduces them to a
// single scalar field element via expand-message-XMD with SHA-256.
package hashtofield

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

// domainSeparator is the tag gnark uses for the BSB22 commitment challenge.
const domainSeparator = "BSB22-Plonk"

// maxDST is the largest domain separator tag expand_message_xmd accepts
// before falling back to hashing the tag itself; gnark-crypto enforces the
// same 255-byte ceiling internally.
const maxDST = 255

// WrappedHashToField accumulates written bytes and reduces them to one Fr
// element using SHA-256-based expand-message-XMD on Sum. It is not safe for
// concurrent use.
type WrappedHashToField struct {
	buf []byte
}

func New() *WrappedHashToField {
	return &WrappedHashToField{}
}

// Write appends p to the accumulated message. It never fails.
func (w *WrappedHashToField) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Sum hashes the accumulated message to a single scalar field element and
// leaves the accumulator untouched; call Reset to clear it.
func (w *WrappedHashToField) Sum() (fr.Element, error) {
	if len(domainSeparator) > maxDST {
		return fr.Element{}, verifyerr.New(verifyerr.KindDSTTooLarge)
	}
	elements, err := fr.Hash(w.buf, []byte(domainSeparator), 1)
	if err != nil {
		return fr.Element{}, verifyerr.Wrap(verifyerr.KindFieldError, err)
	}
	return elements[0], nil
}

// Reset clears the accumulated message.
func (w *WrappedHashToField) Reset() {
	w.buf = w.buf[:0]
}
