package groth16

import "github.com/vocdoni/snark-bn254-verifier/verifyerr"

// Error is the error type returned by this package's decode and verify
// functions. It is the shared verifyerr taxonomy under a name specific to
// the Groth16 verifier.
type Error = verifyerr.Error
