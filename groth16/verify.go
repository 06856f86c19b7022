package groth16

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

// Verify checks a Groth16 proof against a verifying key and a list of
// public inputs. It returns (false, nil) for a well-formed but invalid
// proof, including one whose commitment proof of knowledge does not check
// out, and a non-nil error for a wrong witness length or a failure reported
// by the curve library. The number of commitments in the proof is not
// checked against the verifying key.
func Verify(vk *VerifyingKey, proof *Proof, publicInputs []fr.Element) (bool, error) {
	if len(publicInputs) != len(vk.K)-1 {
		return false, verifyerr.New(verifyerr.KindInvalidWitness)
	}

	vkX, err := aggregatePublicInputs(vk, publicInputs)
	if err != nil {
		return false, err
	}

	if len(proof.Commitments) > 0 {
		commitmentSum, err := sumCommitments(proof.Commitments)
		if err != nil {
			return false, err
		}
		vkX.Add(&vkX, &commitmentSum)

		pokOK, err := bn254.PairingCheck(
			[]bn254.G1Affine{proof.CommitmentPok, commitmentSum},
			[]bn254.G2Affine{vk.CommitmentKey.G, vk.CommitmentKey.GRootSigmaNeg},
		)
		if err != nil {
			return false, verifyerr.Wrap(verifyerr.KindCurveError, err)
		}
		if !pokOK {
			return false, nil
		}
	}

	var negAr bn254.G1Affine
	negAr.Neg(&proof.Ar)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{negAr, vk.G1Alpha, vkX, proof.Krs},
		[]bn254.G2Affine{proof.Bs, vk.G2Beta, vk.G2Gamma, vk.G2Delta},
	)
	if err != nil {
		return false, verifyerr.Wrap(verifyerr.KindCurveError, err)
	}
	return ok, nil
}

// aggregatePublicInputs computes vk.K[0] + sum(w_i * vk.K[i+1]) via MSM.
func aggregatePublicInputs(vk *VerifyingKey, publicInputs []fr.Element) (bn254.G1Affine, error) {
	if len(publicInputs) == 0 {
		return vk.K[0], nil
	}

	var weighted bn254.G1Affine
	if _, err := weighted.MultiExp(vk.K[1:], publicInputs, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, verifyerr.Wrap(verifyerr.KindCurveError, err)
	}
	weighted.Add(&weighted, &vk.K[0])
	return weighted, nil
}

func sumCommitments(commitments []bn254.G1Affine) (bn254.G1Affine, error) {
	ones := make([]fr.Element, len(commitments))
	for i := range ones {
		ones[i].SetOne()
	}
	var sum bn254.G1Affine
	if _, err := sum.MultiExp(commitments, ones, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, verifyerr.Wrap(verifyerr.KindCurveError, err)
	}
	return sum, nil
}
