// Package kzg implements the batched KZG polynomial-commitment opening
// check used by the PlonK verifier: folding several claimed openings at a
// single point into one pairing check, and batching several such folded
// openings (one per evaluation point) into the final two-pairing check.
package kzg

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/snark-bn254-verifier/internal/gnarkio"
	"github.com/vocdoni/snark-bn254-verifier/internal/transcript"
	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

// VerifyingKey holds the SRS elements needed to check KZG openings: the
// two G2 points ([1]G2 and [alpha]G2) and the G1 generator.
type VerifyingKey struct {
	G2 [2]bn254.G2Affine
	G1 bn254.G1Affine
}

// BatchOpeningProof bundles one quotient commitment with the claimed value
// of every digest it opens, as produced by a PlonK proof's folded opening.
type BatchOpeningProof struct {
	H             bn254.G1Affine
	ClaimedValues []fr.Element
}

// OpeningProof is a single-digest KZG opening: a quotient commitment and
// the one value it claims the polynomial evaluates to.
type OpeningProof struct {
	H            bn254.G1Affine
	ClaimedValue fr.Element
}

func deriveGamma(point *fr.Element, digests []bn254.G1Affine, claimedValues []fr.Element, dataTranscript []byte) (fr.Element, error) {
	tr := transcript.New("gamma")

	pointBytes := point.Bytes()
	if err := tr.Bind("gamma", pointBytes[:]); err != nil {
		return fr.Element{}, err
	}
	for _, d := range digests {
		if err := tr.Bind("gamma", gnarkio.G1ToUncompressedBytes(d)); err != nil {
			return fr.Element{}, err
		}
	}
	for _, v := range claimedValues {
		b := v.Bytes()
		if err := tr.Bind("gamma", b[:]); err != nil {
			return fr.Element{}, err
		}
	}
	if dataTranscript != nil {
		if err := tr.Bind("gamma", dataTranscript); err != nil {
			return fr.Element{}, err
		}
	}

	digest, err := tr.ComputeChallenge("gamma")
	if err != nil {
		return fr.Element{}, err
	}
	return gnarkio.FrFromBytesReduceModOrder(digest[:]), nil
}

// fold computes sum(evaluations[i] * coeffs[i]) and the multi-scalar
// multiplication sum(coeffs[i] * digests[i]), the shared core of both
// folding operations below.
func fold(digests []bn254.G1Affine, evaluations []fr.Element, coeffs []fr.Element) (bn254.G1Affine, fr.Element, error) {
	var foldedEvaluations fr.Element
	for i := range digests {
		var term fr.Element
		term.Mul(&evaluations[i], &coeffs[i])
		foldedEvaluations.Add(&foldedEvaluations, &term)
	}

	var foldedDigests bn254.G1Affine
	if _, err := foldedDigests.MultiExp(digests, coeffs, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, fr.Element{}, verifyerr.Wrap(verifyerr.KindCurveError, err)
	}
	return foldedDigests, foldedEvaluations, nil
}

// FoldProof derives gamma from the transcript and folds a batch opening
// proof covering several digests at one point into a single opening proof
// plus the corresponding folded digest.
func FoldProof(digests []bn254.G1Affine, proof *BatchOpeningProof, point *fr.Element, dataTranscript []byte) (OpeningProof, bn254.G1Affine, error) {
	nbDigests := len(digests)
	if nbDigests != len(proof.ClaimedValues) {
		return OpeningProof{}, bn254.G1Affine{}, verifyerr.New(verifyerr.KindInvalidNumberOfDigests)
	}

	gamma, err := deriveGamma(point, digests, proof.ClaimedValues, dataTranscript)
	if err != nil {
		return OpeningProof{}, bn254.G1Affine{}, err
	}

	gammai := make([]fr.Element, nbDigests)
	if nbDigests > 0 {
		gammai[0].SetOne()
	}
	if nbDigests > 1 {
		gammai[1] = gamma
	}
	for i := 2; i < nbDigests; i++ {
		gammai[i].Mul(&gammai[i-1], &gamma)
	}

	foldedDigests, foldedEvaluations, err := fold(digests, proof.ClaimedValues, gammai)
	if err != nil {
		return OpeningProof{}, bn254.G1Affine{}, err
	}

	return OpeningProof{H: proof.H, ClaimedValue: foldedEvaluations}, foldedDigests, nil
}

// BatchVerifyMultiPoints checks a batch of KZG opening proofs, one per
// evaluation point, using a single randomized pairing check. It returns a
// PairingCheckFailed error, not a boolean, when the check does not hold.
func BatchVerifyMultiPoints(digests []bn254.G1Affine, proofs []OpeningProof, points []fr.Element, vk *VerifyingKey) error {
	nbDigests := len(digests)
	if nbDigests != len(proofs) {
		return verifyerr.New(verifyerr.KindInvalidNumberOfDigests)
	}
	if nbDigests != len(points) {
		return verifyerr.New(verifyerr.KindInvalidNumberOfDigests)
	}

	if nbDigests == 1 {
		return verifySinglePoint(&digests[0], &proofs[0], &points[0], vk)
	}

	randomNumbers := make([]fr.Element, nbDigests)
	randomNumbers[0].SetOne()
	for i := 1; i < nbDigests; i++ {
		if _, err := randomNumbers[i].SetRandom(); err != nil {
			return verifyerr.Wrap(verifyerr.KindFieldError, err)
		}
	}

	quotients := make([]bn254.G1Affine, nbDigests)
	for i := range quotients {
		quotients[i] = proofs[i].H
	}

	var foldedQuotients bn254.G1Affine
	if _, err := foldedQuotients.MultiExp(quotients, randomNumbers, ecc.MultiExpConfig{}); err != nil {
		return verifyerr.Wrap(verifyerr.KindCurveError, err)
	}

	evals := make([]fr.Element, nbDigests)
	for i := range evals {
		evals[i] = proofs[i].ClaimedValue
	}

	foldedDigests, foldedEvals, err := fold(digests, evals, randomNumbers)
	if err != nil {
		return err
	}

	var foldedEvalsBig big.Int
	foldedEvals.BigInt(&foldedEvalsBig)
	var foldedEvalsCommit bn254.G1Affine
	foldedEvalsCommit.ScalarMultiplication(&vk.G1, &foldedEvalsBig)
	foldedDigests.Sub(&foldedDigests, &foldedEvalsCommit)

	pointsScaled := make([]fr.Element, nbDigests)
	for i := range pointsScaled {
		pointsScaled[i].Mul(&randomNumbers[i], &points[i])
	}
	var foldedPointsQuotients bn254.G1Affine
	if _, err := foldedPointsQuotients.MultiExp(quotients, pointsScaled, ecc.MultiExpConfig{}); err != nil {
		return verifyerr.Wrap(verifyerr.KindCurveError, err)
	}

	foldedDigests.Add(&foldedDigests, &foldedPointsQuotients)
	foldedQuotients.Neg(&foldedQuotients)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{foldedDigests, foldedQuotients},
		[]bn254.G2Affine{vk.G2[0], vk.G2[1]},
	)
	if err != nil {
		return verifyerr.Wrap(verifyerr.KindCurveError, err)
	}
	if !ok {
		return verifyerr.New(verifyerr.KindPairingCheckFailed)
	}
	return nil
}

// verifySinglePoint handles the degenerate nb_digests == 1 case: a direct
// two-pairing KZG opening check with no randomization needed since there is
// nothing to batch.
func verifySinglePoint(digest *bn254.G1Affine, proof *OpeningProof, point *fr.Element, vk *VerifyingKey) error {
	var claimedValueBig big.Int
	proof.ClaimedValue.BigInt(&claimedValueBig)
	var claimedValueCommit bn254.G1Affine
	claimedValueCommit.ScalarMultiplication(&vk.G1, &claimedValueBig)

	var pointBig big.Int
	point.BigInt(&pointBig)
	var pointCommit bn254.G1Affine
	pointCommit.ScalarMultiplication(&proof.H, &pointBig)

	var totalG1 bn254.G1Affine
	totalG1.Sub(digest, &claimedValueCommit)
	totalG1.Add(&totalG1, &pointCommit)
	totalG1.Neg(&totalG1)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{totalG1, proof.H},
		[]bn254.G2Affine{vk.G2[0], vk.G2[1]},
	)
	if err != nil {
		return verifyerr.Wrap(verifyerr.KindCurveError, err)
	}
	if !ok {
		return verifyerr.New(verifyerr.KindPairingCheckFailed)
	}
	return nil
}
