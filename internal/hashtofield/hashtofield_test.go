package hashtofield

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSumDeterministic(t *testing.T) {
	c := qt.New(t)

	w := New()
	_, err := w.Write([]byte("hello "))
	c.Assert(err, qt.IsNil)
	_, err = w.Write([]byte("world"))
	c.Assert(err, qt.IsNil)
	first, err := w.Sum()
	c.Assert(err, qt.IsNil)

	second := New()
	_, err = second.Write([]byte("hello world"))
	c.Assert(err, qt.IsNil)
	got, err := second.Sum()
	c.Assert(err, qt.IsNil)

	c.Assert(first.Equal(&got), qt.IsTrue)
}

func TestSumDiffersOnDifferentInput(t *testing.T) {
	c := qt.New(t)

	a := New()
	_, _ = a.Write([]byte("alpha"))
	va, err := a.Sum()
	c.Assert(err, qt.IsNil)

	b := New()
	_, _ = b.Write([]byte("beta"))
	vb, err := b.Sum()
	c.Assert(err, qt.IsNil)

	c.Assert(va.Equal(&vb), qt.IsFalse)
}

func TestReset(t *testing.T) {
	c := qt.New(t)

	w := New()
	_, _ = w.Write([]byte("some bytes"))
	withData, err := w.Sum()
	c.Assert(err, qt.IsNil)

	w.Reset()
	empty, err := w.Sum()
	c.Assert(err, qt.IsNil)
	c.Assert(withData.Equal(&empty), qt.IsFalse)

	fresh := New()
	freshEmpty, err := fresh.Sum()
	c.Assert(err, qt.IsNil)
	c.Assert(empty.Equal(&freshEmpty), qt.IsTrue)
}
