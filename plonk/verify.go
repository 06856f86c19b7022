package plonk

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/snark-bn254-verifier/internal/gnarkio"
	"github.com/vocdoni/snark-bn254-verifier/internal/hashtofield"
	"github.com/vocdoni/snark-bn254-verifier/internal/kzg"
	"github.com/vocdoni/snark-bn254-verifier/internal/transcript"
	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

const (
	challengeGamma = "gamma"
	challengeBeta  = "beta"
	challengeAlpha = "alpha"
	challengeZeta  = "zeta"
)

// Verify checks a PlonK proof against a verifying key and a list of public
// inputs. It returns a non-nil error for both structural problems and a
// cryptographically invalid proof, since the final batched KZG check
// itself returns a typed error rather than a plain boolean.
func Verify(vk *VerifyingKey, proof *Proof, publicInputs []fr.Element) (bool, error) {
	if len(proof.BSB22Commitments) != len(vk.Qcp) {
		return false, verifyerr.New(verifyerr.KindBsb22CommitmentMismatch)
	}
	if uint64(len(publicInputs)) != vk.NbPublicVariables {
		return false, verifyerr.New(verifyerr.KindInvalidWitness)
	}

	tr := transcript.New(challengeGamma, challengeBeta, challengeAlpha, challengeZeta)
	if err := bindPublicData(tr, vk, publicInputs); err != nil {
		return false, err
	}

	gamma, err := deriveChallenge(tr, challengeGamma, proof.LRO[:])
	if err != nil {
		return false, err
	}
	beta, err := deriveChallenge(tr, challengeBeta, nil)
	if err != nil {
		return false, err
	}
	alphaDeps := append(append([]bn254.G1Affine{}, proof.BSB22Commitments...), proof.Z)
	alpha, err := deriveChallenge(tr, challengeAlpha, alphaDeps)
	if err != nil {
		return false, err
	}
	zeta, err := deriveChallenge(tr, challengeZeta, proof.H[:])
	if err != nil {
		return false, err
	}

	var one fr.Element
	one.SetOne()

	zetaPowerN, err := fieldPow(&zeta, vk.Size)
	if err != nil {
		return false, err
	}
	var zhZeta fr.Element
	zhZeta.Sub(&zetaPowerN, &one)

	var zetaMinusOne fr.Element
	zetaMinusOne.Sub(&zeta, &one)
	zetaMinusOneInv, ok := invert(&zetaMinusOne)
	if !ok {
		return false, verifyerr.New(verifyerr.KindInverseNotFound)
	}
	var lagrangeOne fr.Element
	lagrangeOne.Mul(&zetaMinusOneInv, &zhZeta)
	lagrangeOne.Mul(&lagrangeOne, &vk.SizeInv)

	pi, err := evaluatePublicInputPolynomial(vk, publicInputs, &zeta, &zhZeta)
	if err != nil {
		return false, err
	}
	if err := addBSB22Contribution(vk, proof, &zeta, &zhZeta, &pi); err != nil {
		return false, err
	}

	if len(proof.BatchedProof.ClaimedValues) < 6 {
		return false, verifyerr.New(verifyerr.KindInvalidData)
	}
	l := proof.BatchedProof.ClaimedValues[1]
	r := proof.BatchedProof.ClaimedValues[2]
	o := proof.BatchedProof.ClaimedValues[3]
	s1 := proof.BatchedProof.ClaimedValues[4]
	s2 := proof.BatchedProof.ClaimedValues[5]
	zu := proof.ZShiftedOpening.ClaimedValue

	var alphaSquareLagrangeOne fr.Element
	alphaSquareLagrangeOne.Mul(&lagrangeOne, &alpha)
	alphaSquareLagrangeOne.Mul(&alphaSquareLagrangeOne, &alpha)

	constLin, err := computeConstLin(&l, &r, &o, &s1, &s2, &beta, &gamma, &alpha, &zu, &alphaSquareLagrangeOne, &pi)
	if err != nil {
		return false, err
	}
	if !constLin.Equal(&proof.BatchedProof.ClaimedValues[0]) {
		return false, verifyerr.New(verifyerr.KindOpeningPolyMismatch)
	}

	s1Coeff := computeS1Coeff(&l, &r, &s1, &s2, &beta, &gamma, &alpha, &zu)
	coeffZ := computeCoeffZ(&l, &r, &o, &beta, &gamma, &alpha, &zeta, &vk.CosetShift, &alphaSquareLagrangeOne)

	var rl fr.Element
	rl.Mul(&l, &r)

	nPlusTwo := vk.Size + 2
	zetaNPlusTwo, err := fieldPow(&zeta, nPlusTwo)
	if err != nil {
		return false, err
	}
	var zetaNPlusTwoSquare fr.Element
	zetaNPlusTwoSquare.Mul(&zetaNPlusTwo, &zetaNPlusTwo)

	var zetaNPlusTwoZh fr.Element
	zetaNPlusTwoZh.Mul(&zetaNPlusTwo, &zhZeta)
	zetaNPlusTwoZh.Neg(&zetaNPlusTwoZh)

	var zetaNPlusTwoSquareZh fr.Element
	zetaNPlusTwoSquareZh.Mul(&zetaNPlusTwoSquare, &zhZeta)
	zetaNPlusTwoSquareZh.Neg(&zetaNPlusTwoSquareZh)

	var zh fr.Element
	zh.Neg(&zhZeta)

	if len(proof.BatchedProof.ClaimedValues) < 6+len(vk.Qcp) {
		return false, verifyerr.New(verifyerr.KindInvalidData)
	}
	qc := proof.BatchedProof.ClaimedValues[6:]

	points := make([]bn254.G1Affine, 0, len(qc)+10)
	points = append(points, proof.BSB22Commitments...)
	points = append(points, vk.Ql, vk.Qr, vk.Qm, vk.Qo, vk.Qk, vk.S[2], proof.Z, proof.H[0], proof.H[1], proof.H[2])

	scalars := make([]fr.Element, 0, len(qc)+10)
	scalars = append(scalars, qc...)
	scalars = append(scalars, l, r, rl, o, one, s1Coeff, coeffZ, zh, zetaNPlusTwoZh, zetaNPlusTwoSquareZh)

	var linearizedDigest bn254.G1Affine
	if _, err := linearizedDigest.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return false, verifyerr.Wrap(verifyerr.KindCurveError, err)
	}

	digestsToFold := make([]bn254.G1Affine, 6+len(vk.Qcp))
	digestsToFold[0] = linearizedDigest
	digestsToFold[1] = proof.LRO[0]
	digestsToFold[2] = proof.LRO[1]
	digestsToFold[3] = proof.LRO[2]
	digestsToFold[4] = vk.S[0]
	digestsToFold[5] = vk.S[1]
	copy(digestsToFold[6:], vk.Qcp)

	zuBytes := zu.Bytes()
	foldedProof, foldedDigest, err := kzg.FoldProof(digestsToFold, &proof.BatchedProof, &zeta, zuBytes[:])
	if err != nil {
		return false, err
	}

	var shiftedZeta fr.Element
	shiftedZeta.Mul(&zeta, &vk.Generator)

	if err := kzg.BatchVerifyMultiPoints(
		[]bn254.G1Affine{foldedDigest, proof.Z},
		[]kzg.OpeningProof{foldedProof, proof.ZShiftedOpening},
		[]fr.Element{zeta, shiftedZeta},
		&vk.KZG,
	); err != nil {
		return false, err
	}

	return true, nil
}

func bindPublicData(tr *transcript.Transcript, vk *VerifyingKey, publicInputs []fr.Element) error {
	for _, p := range []bn254.G1Affine{vk.S[0], vk.S[1], vk.S[2], vk.Ql, vk.Qr, vk.Qm, vk.Qo, vk.Qk} {
		if err := tr.Bind(challengeGamma, gnarkio.G1ToUncompressedBytes(p)); err != nil {
			return err
		}
	}
	for _, p := range vk.Qcp {
		if err := tr.Bind(challengeGamma, gnarkio.G1ToUncompressedBytes(p)); err != nil {
			return err
		}
	}
	for _, w := range publicInputs {
		b := w.Bytes()
		if err := tr.Bind(challengeGamma, b[:]); err != nil {
			return err
		}
	}
	return nil
}

func deriveChallenge(tr *transcript.Transcript, name string, points []bn254.G1Affine) (fr.Element, error) {
	for _, p := range points {
		if err := tr.Bind(name, gnarkio.G1ToUncompressedBytes(p)); err != nil {
			return fr.Element{}, err
		}
	}
	digest, err := tr.ComputeChallenge(name)
	if err != nil {
		return fr.Element{}, err
	}
	return gnarkio.FrFromBytesReduceModOrder(digest[:]), nil
}

func fieldPow(base *fr.Element, exp uint64) (fr.Element, error) {
	var result fr.Element
	result.Exp(*base, new(big.Int).SetUint64(exp))
	return result, nil
}

func invert(x *fr.Element) (fr.Element, bool) {
	if x.IsZero() {
		return fr.Element{}, false
	}
	var inv fr.Element
	inv.Inverse(x)
	return inv, true
}

// evaluatePublicInputPolynomial computes pi(zeta) = sum(w_i * (omega^i/n) *
// (zeta^n-1)/(zeta-omega^i)), using a single batch inversion of the
// denominators.
func evaluatePublicInputPolynomial(vk *VerifyingKey, publicInputs []fr.Element, zeta, zhZeta *fr.Element) (fr.Element, error) {
	var pi fr.Element
	if len(publicInputs) == 0 {
		return pi, nil
	}

	dens := make([]fr.Element, len(publicInputs))
	var accw fr.Element
	accw.SetOne()
	for i := range publicInputs {
		dens[i].Sub(zeta, &accw)
		accw.Mul(&accw, &vk.Generator)
	}
	if err := batchInvert(dens); err != nil {
		return fr.Element{}, err
	}

	accw.SetOne()
	for i, w := range publicInputs {
		var xiLi fr.Element
		xiLi.Mul(zhZeta, &dens[i])
		xiLi.Mul(&xiLi, &vk.SizeInv)
		xiLi.Mul(&xiLi, &accw)
		xiLi.Mul(&xiLi, &w)
		pi.Add(&pi, &xiLi)
		accw.Mul(&accw, &vk.Generator)
	}
	return pi, nil
}

// batchInvert replaces each element of v with its multiplicative inverse
// using Montgomery's trick: one real inversion instead of len(v).
func batchInvert(v []fr.Element) error {
	prod := make([]fr.Element, 0, len(v))
	var tmp fr.Element
	tmp.SetOne()
	for _, f := range v {
		if f.IsZero() {
			return verifyerr.New(verifyerr.KindInverseNotFound)
		}
		tmp.Mul(&tmp, &f)
		prod = append(prod, tmp)
	}
	if tmp.IsZero() {
		return verifyerr.New(verifyerr.KindInverseNotFound)
	}
	tmp.Inverse(&tmp)

	prodIdx := len(prod) - 1
	for i := len(v) - 1; i >= 0; i-- {
		if v[i].IsZero() {
			continue
		}
		var s fr.Element
		if prodIdx == 0 {
			s.SetOne()
		} else {
			s = prod[prodIdx-1]
		}
		var newTmp fr.Element
		newTmp.Mul(&tmp, &v[i])
		v[i].Mul(&tmp, &s)
		tmp = newTmp
		prodIdx--
	}
	return nil
}

// addBSB22Contribution adds each BSB22 commitment's hashed-to-field value,
// weighted by its Lagrange coefficient, into pi.
func addBSB22Contribution(vk *VerifyingKey, proof *Proof, zeta, zhZeta *fr.Element, pi *fr.Element) error {
	h := hashtofield.New()
	for i, idx := range vk.CommitmentConstraintIndexes {
		h.Reset()
		if _, err := h.Write(gnarkio.G1ToUncompressedBytes(proof.BSB22Commitments[i])); err != nil {
			return verifyerr.Wrap(verifyerr.KindFieldError, err)
		}
		hashedCmt, err := h.Sum()
		if err != nil {
			return err
		}

		exponent := vk.NbPublicVariables + idx
		wPowI, err := fieldPow(&vk.Generator, exponent)
		if err != nil {
			return err
		}

		var den fr.Element
		den.Sub(zeta, &wPowI)
		if den.IsZero() {
			return verifyerr.New(verifyerr.KindInverseNotFound)
		}
		denInv, ok := invert(&den)
		if !ok {
			return verifyerr.New(verifyerr.KindInverseNotFound)
		}

		var lagrange fr.Element
		lagrange.Mul(zhZeta, &wPowI)
		lagrange.Mul(&lagrange, &denInv)
		lagrange.Mul(&lagrange, &vk.SizeInv)

		var xiLi fr.Element
		xiLi.Mul(&lagrange, &hashedCmt)
		pi.Add(pi, &xiLi)
	}
	return nil
}

func computeConstLin(l, r, o, s1, s2, beta, gamma, alpha, zu, alphaSquareLagrangeOne, pi *fr.Element) (fr.Element, error) {
	var lhs fr.Element
	lhs.Mul(beta, s1)
	lhs.Add(&lhs, gamma)
	lhs.Add(&lhs, l)

	var rhs fr.Element
	rhs.Mul(beta, s2)
	rhs.Add(&rhs, gamma)
	rhs.Add(&rhs, r)

	var constLin fr.Element
	constLin.Mul(&lhs, &rhs)

	var oPlusGamma fr.Element
	oPlusGamma.Add(o, gamma)
	constLin.Mul(&constLin, &oPlusGamma)
	constLin.Mul(&constLin, alpha)
	constLin.Mul(&constLin, zu)

	constLin.Sub(&constLin, alphaSquareLagrangeOne)
	constLin.Add(&constLin, pi)
	constLin.Neg(&constLin)

	return constLin, nil
}

func computeS1Coeff(l, r, s1, s2, beta, gamma, alpha, zu *fr.Element) fr.Element {
	var lhs fr.Element
	lhs.Mul(beta, s1)
	lhs.Add(&lhs, l)
	lhs.Add(&lhs, gamma)

	var rhs fr.Element
	rhs.Mul(beta, s2)
	rhs.Add(&rhs, r)
	rhs.Add(&rhs, gamma)

	var s1Coeff fr.Element
	s1Coeff.Mul(&lhs, &rhs)
	s1Coeff.Mul(&s1Coeff, beta)
	s1Coeff.Mul(&s1Coeff, alpha)
	s1Coeff.Mul(&s1Coeff, zu)
	return s1Coeff
}

func computeCoeffZ(l, r, o, beta, gamma, alpha, zeta, cosetShift, alphaSquareLagrangeOne *fr.Element) fr.Element {
	var term1 fr.Element
	term1.Mul(beta, zeta)
	term1.Add(&term1, gamma)
	term1.Add(&term1, l)

	var uZeta fr.Element
	uZeta.Mul(cosetShift, zeta)
	var term2 fr.Element
	term2.Mul(beta, &uZeta)
	term2.Add(&term2, gamma)
	term2.Add(&term2, r)

	var u2 fr.Element
	u2.Mul(cosetShift, cosetShift)
	var u2Zeta fr.Element
	u2Zeta.Mul(&u2, zeta)
	var term3 fr.Element
	term3.Mul(beta, &u2Zeta)
	term3.Add(&term3, gamma)
	term3.Add(&term3, o)

	var s2 fr.Element
	s2.Mul(&term1, &term2)
	s2.Mul(&s2, &term3)
	s2.Mul(&s2, alpha)
	s2.Neg(&s2)

	var coeffZ fr.Element
	coeffZ.Add(alphaSquareLagrangeOne, &s2)
	return coeffZ
}
