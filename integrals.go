// integrals.go --  This file is part of goOMP2 project.
//
//	goOMP2 is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

func quadDist(v1, v2 [3]float64) float64 {
	vv1 := mat.NewVecDense(3, v1[:])
	vv2 := mat.NewVecDense(3, v2[:])
	dist := mat.NewVecDense(3, nil)
	dist.SubVec(vv2, vv1)
	dist.MulElemVec(dist, dist)
	return mat.Sum(dist)
}

// gaussCenter is the exponent-weighted center (a1*v1 + a2*v2) / (a1+a2).
func gaussCenter(a1, a2 float64, v1, v2 [3]float64) [3]float64 {
	var res [3]float64
	p := a1 + a2
	for i := range res {
		res[i] = (a1*v1[i] + a2*v2[i]) / p
	}
	return res
}

func boys(x float64, n int) float64 {
	nf := float64(n)
	if x == 0 {
		return 1.0 / (2.0*nf + 1)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) * (1.0 / (2.0 * math.Pow(x, (nf+0.5))))
}

func overlapPrim(g1, g2 PrimitiveGaussian) float64 {
	N := g1.NormCoeff() * g2.NormCoeff()
	p := g1.Alpha + g2.Alpha
	q := g1.Alpha * g2.Alpha / p
	Q2 := quadDist(g1.Coords, g2.Coords)
	return N * g1.Coeff * g2.Coeff * math.Exp(-q*Q2) * math.Pow((math.Pi/p), 1.5)
}

// Overlap builds the AO overlap matrix S.
func Overlap(m []AO) *mat.Dense {
	nAO := len(m)
	res := mat.NewDense(nAO, nAO, nil)
	for i := 0; i < nAO; i++ {
		for j := 0; j < nAO; j++ {
			sum := 0.0
			for _, g1 := range m[i].PGs {
				for _, g2 := range m[j].PGs {
					sum += overlapPrim(g1, g2)
				}
			}
			res.Set(i, j, sum)
		}
	}
	return res
}

// Kinetic builds the AO kinetic-energy matrix T.
func Kinetic(m []AO) *mat.Dense {
	nAO := len(m)
	res := mat.NewDense(nAO, nAO, nil)
	for i := 0; i < nAO; i++ {
		for j := 0; j < nAO; j++ {
			sum := 0.0
			for _, g1 := range m[i].PGs {
				for _, g2 := range m[j].PGs {
					p := g1.Alpha + g2.Alpha
					q := g1.Alpha * g2.Alpha / p
					Q2 := quadDist(g1.Coords, g2.Coords)
					s := overlapPrim(g1, g2)
					sum += q * (3.0 - 2.0*q*Q2) * s
				}
			}
			res.Set(i, j, sum)
		}
	}
	return res
}

// NucAttr builds the AO electron-nucleus attraction matrix.
func NucAttr(m []AO, atoms []Atom) *mat.Dense {
	nAO := len(m)
	res := mat.NewDense(nAO, nAO, nil)
	for _, at := range atoms {
		for i := 0; i < nAO; i++ {
			for j := 0; j < nAO; j++ {
				sum := res.At(i, j)
				for _, g1 := range m[i].PGs {
					for _, g2 := range m[j].PGs {
						N := g1.NormCoeff() * g2.NormCoeff()
						p := g1.Alpha + g2.Alpha
						q := g1.Alpha * g2.Alpha / p
						Q2 := quadDist(g1.Coords, g2.Coords)
						Pp := gaussCenter(g1.Alpha, g2.Alpha, g1.Coords, g2.Coords)
						PC2 := quadDist(Pp, at.Coords)
						sum += -float64(at.Z) * N * g1.Coeff * g2.Coeff *
							math.Exp(-q*Q2) * (2.0 * math.Pi / p) * boys(p*PC2, 0)
					}
				}
				res.Set(i, j, sum)
			}
		}
	}
	return res
}

// ElecElec builds the chemist-ordered two-electron repulsion tensor (ij|kl).
func ElecElec(m []AO) *Tensor4 {
	nAO := len(m)
	res := NewTensor4(nAO, nAO, nAO, nAO)
	for i := 0; i < nAO; i++ {
		for j := 0; j < nAO; j++ {
			for k := 0; k < nAO; k++ {
				for l := 0; l < nAO; l++ {
					sum := 0.0
					for _, g1 := range m[i].PGs {
						for _, g2 := range m[j].PGs {
							pij := g1.Alpha + g2.Alpha
							qij := g1.Alpha * g2.Alpha / pij
							Pij := gaussCenter(g1.Alpha, g2.Alpha, g1.Coords, g2.Coords)
							Q2ij := quadDist(g1.Coords, g2.Coords)
							for _, g3 := range m[k].PGs {
								for _, g4 := range m[l].PGs {
									pkl := g3.Alpha + g4.Alpha
									qkl := g3.Alpha * g4.Alpha / pkl
									Pkl := gaussCenter(g3.Alpha, g4.Alpha, g3.Coords, g4.Coords)
									Q2kl := quadDist(g3.Coords, g4.Coords)

									N := g1.NormCoeff() * g2.NormCoeff() * g3.NormCoeff() * g4.NormCoeff()
									cccc := g1.Coeff * g2.Coeff * g3.Coeff * g4.Coeff

									term1 := 2.0 * math.Pi * math.Pi / (pij * pkl)
									term2 := math.Sqrt(math.Pi / (pij + pkl))
									term3 := math.Exp(-qij * Q2ij)
									term4 := math.Exp(-qkl * Q2kl)
									denom := (1.0 / pij) + (1.0 / pkl)

									sum += N * cccc * term1 * term2 * term3 * term4 *
										boys(quadDist(Pij, Pkl)/denom, 0)
								}
							}
						}
					}
					res.Set(i, j, k, l, sum)
				}
			}
		}
	}
	return res
}
