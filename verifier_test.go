package verifier

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

func TestVerifyGroth16RejectsTruncatedVerifyingKey(t *testing.T) {
	c := qt.New(t)
	_, err := VerifyGroth16([]byte{1, 2, 3}, []byte{1, 2, 3}, nil)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestVerifyPlonkRejectsTruncatedVerifyingKey(t *testing.T) {
	c := qt.New(t)
	_, err := VerifyPlonk([]byte{1, 2, 3}, []byte{1, 2, 3}, nil)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestVerifyDispatchesOnUnknownSystem(t *testing.T) {
	c := qt.New(t)
	ok, err := Verify(ProvingSystem(99), nil, nil, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestVerifyGroth16DecodeErrorIsInvalidXLength(t *testing.T) {
	c := qt.New(t)
	_, err := VerifyGroth16(nil, nil, nil)
	c.Assert(err, qt.ErrorIs, verifyerr.New(verifyerr.KindInvalidXLength))
}
