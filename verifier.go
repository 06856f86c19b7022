// Package verifier verifies Groth16 and PlonK SNARK proofs over the BN254
// curve, as produced by the gnark proving toolchain. It decodes the gnark
// wire format for verifying keys and proofs and re-derives the pairing
// checks directly from gnark-crypto, without depending on gnark's
// circuit-compilation or proving machinery.
package verifier

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/snark-bn254-verifier/groth16"
	"github.com/vocdoni/snark-bn254-verifier/plonk"
)

// ProvingSystem identifies which SNARK backend a verifying key and proof
// were produced by.
type ProvingSystem int

const (
	// Groth16 identifies the Groth16 proving system.
	Groth16 ProvingSystem = iota
	// PlonK identifies the PlonK proving system with KZG commitments.
	PlonK
)

// VerifyGroth16 decodes a gnark-encoded Groth16 verifying key and proof and
// checks the proof against the given public inputs. It returns false, nil
// for a well-formed but invalid proof, and a non-nil error for malformed
// input or an internal curve failure.
func VerifyGroth16(proofBytes, vkBytes []byte, publicInputs []fr.Element) (bool, error) {
	vk, err := groth16.VerifyingKeyFromBytes(vkBytes)
	if err != nil {
		return false, err
	}
	proof, err := groth16.ProofFromBytes(proofBytes)
	if err != nil {
		return false, err
	}
	return groth16.Verify(vk, proof, publicInputs)
}

// VerifyPlonk decodes a gnark-encoded PlonK verifying key and proof and
// checks the proof against the given public inputs.
func VerifyPlonk(proofBytes, vkBytes []byte, publicInputs []fr.Element) (bool, error) {
	vk, err := plonk.VerifyingKeyFromBytes(vkBytes)
	if err != nil {
		return false, err
	}
	proof, err := plonk.ProofFromBytes(proofBytes)
	if err != nil {
		return false, err
	}
	return plonk.Verify(vk, proof, publicInputs)
}

// Verify dispatches to VerifyGroth16 or VerifyPlonk depending on system.
func Verify(system ProvingSystem, proofBytes, vkBytes []byte, publicInputs []fr.Element) (bool, error) {
	switch system {
	case Groth16:
		return VerifyGroth16(proofBytes, vkBytes, publicInputs)
	case PlonK:
		return VerifyPlonk(proofBytes, vkBytes, publicInputs)
	default:
		return false, nil
	}
}
