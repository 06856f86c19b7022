package transcript

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

func TestComputeChallengeDeterministic(t *testing.T) {
	c := qt.New(t)

	run := func() [32]byte {
		tr := New("gamma", "beta", "alpha", "zeta")
		c.Assert(tr.Bind("gamma", []byte("binding-1")), qt.IsNil)
		c.Assert(tr.Bind("gamma", []byte("binding-2")), qt.IsNil)
		_, err := tr.ComputeChallenge("gamma")
		c.Assert(err, qt.IsNil)
		c.Assert(tr.Bind("beta", []byte("other")), qt.IsNil)
		v, err := tr.ComputeChallenge("beta")
		c.Assert(err, qt.IsNil)
		return v
	}

	first := run()
	second := run()
	c.Assert(first, qt.DeepEquals, second)
}

func TestComputeChallengeOrderingEnforced(t *testing.T) {
	c := qt.New(t)
	tr := New("gamma", "beta", "alpha", "zeta")

	_, err := tr.ComputeChallenge("beta")
	c.Assert(err, qt.Not(qt.IsNil))
	var verr *verifyerr.Error
	c.Assert(errors.As(err, &verr), qt.IsTrue)
	c.Assert(verr.Kind, qt.Equals, verifyerr.KindPreviousChallengeNotComputed)
}

func TestComputeChallengeUnknownName(t *testing.T) {
	c := qt.New(t)
	tr := New("gamma")

	c.Assert(tr.Bind("nope", []byte("x")), qt.Not(qt.IsNil))
	_, err := tr.ComputeChallenge("nope")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestBindAfterComputeFails(t *testing.T) {
	c := qt.New(t)
	tr := New("gamma", "beta")

	_, err := tr.ComputeChallenge("gamma")
	c.Assert(err, qt.IsNil)

	err = tr.Bind("gamma", []byte("too-late"))
	c.Assert(err, qt.Not(qt.IsNil))
	var verr *verifyerr.Error
	c.Assert(errors.As(err, &verr), qt.IsTrue)
	c.Assert(verr.Kind, qt.Equals, verifyerr.KindChallengeAlreadyComputed)
}

func TestComputeChallengeIdempotent(t *testing.T) {
	c := qt.New(t)
	tr := New("gamma", "beta")
	c.Assert(tr.Bind("gamma", []byte("x")), qt.IsNil)

	first, err := tr.ComputeChallenge("gamma")
	c.Assert(err, qt.IsNil)
	second, err := tr.ComputeChallenge("gamma")
	c.Assert(err, qt.IsNil)
	c.Assert(first, qt.DeepEquals, second)
}

func TestChallengeChaining(t *testing.T) {
	c := qt.New(t)

	trA := New("gamma", "beta")
	c.Assert(trA.Bind("gamma", []byte("x")), qt.IsNil)
	gammaA, err := trA.ComputeChallenge("gamma")
	c.Assert(err, qt.IsNil)
	betaA, err := trA.ComputeChallenge("beta")
	c.Assert(err, qt.IsNil)

	trB := New("gamma", "beta")
	c.Assert(trB.Bind("gamma", []byte("y")), qt.IsNil)
	gammaB, err := trB.ComputeChallenge("gamma")
	c.Assert(err, qt.IsNil)
	betaB, err := trB.ComputeChallenge("beta")
	c.Assert(err, qt.IsNil)

	c.Assert(gammaA, qt.Not(qt.DeepEquals), gammaB)
	c.Assert(betaA, qt.Not(qt.DeepEquals), betaB)
}
