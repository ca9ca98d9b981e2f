// rotate_test.go --  This file is part of goOMP2 project.
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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func requireOrthogonal(t *testing.T, U *mat.Dense, tol float64) {
	t.Helper()
	n, _ := U.Dims()
	var utu mat.Dense
	utu.Mul(U.T(), U)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, utu.At(i, j), tol)
		}
	}
}

func TestRotationOperatorOrthogonal(t *testing.T) {
	tests := []struct {
		name string
		x    func(n int) *mat.Dense
	}{
		{"zero generator", func(n int) *mat.Dense { return mat.NewDense(n, n, nil) }},
		{"random vo block", func(n int) *mat.Dense {
			rng := rand.New(rand.NewSource(13))
			X := mat.NewDense(n, n, nil)
			nOcc := n / 2
			for a := nOcc; a < n; a++ {
				for i := 0; i < nOcc; i++ {
					X.Set(a, i, rng.NormFloat64())
				}
			}
			return X
		}},
		{"large entries", func(n int) *mat.Dense {
			X := mat.NewDense(n, n, nil)
			X.Set(n-1, 0, 25.0)
			X.Set(n-2, 1, -14.0)
			return X
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			n := 6
			U, err := RotationOperator(test.x(n))
			require.NoError(t, err)
			requireOrthogonal(t, U, 1e-12)
		})
	}
}

func TestZeroGeneratorIsIdentity(t *testing.T) {
	n := 5
	U, err := RotationOperator(mat.NewDense(n, n, nil))
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, U.At(i, j), 1e-14)
		}
	}
}

// A vanishing orbital gradient must leave the coefficients untouched.
func TestZeroGradientNoOp(t *testing.T) {
	n, nOcc := 6, 2
	eps := []float64{-1.2, -0.8, 0.3, 0.9, 1.4, 2.0}
	grad := mat.NewDense(n-nOcc, nOcc, nil)

	X, err := RotationGenerator(grad, eps, nOcc, 1, 1e-10)
	require.NoError(t, err)
	U, err := RotationOperator(X)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(17))
	cData := make([]float64, n*n)
	for i := range cData {
		cData[i] = rng.NormFloat64()
	}
	C := mat.NewDense(n, n, cData)
	var rotated mat.Dense
	rotated.Mul(C, U)
	assert.True(t, mat.EqualApprox(C, &rotated, 1e-13))
}

func TestRotationGeneratorDegeneracy(t *testing.T) {
	// occupied level on top of a virtual one: zero energy gap
	eps := []float64{-0.5, 0.7, 0.7, 1.3}
	nOcc := 2
	grad := mat.NewDense(2, 2, []float64{0.1, 0.2, 0.3, 0.4})
	_, err := RotationGenerator(grad, eps, nOcc, 3, 1e-10)
	require.Error(t, err)
	var degen *DegeneracyError
	require.ErrorAs(t, err, &degen)
	assert.Equal(t, 3, degen.Iter)
	assert.Equal(t, "rotation generator", degen.Stage)
}

func TestOrbitalGradientAntisymmetricSource(t *testing.T) {
	// For a symmetric generalized Fock matrix the gradient vanishes.
	n, nOcc := 4, 2
	F := mat.NewDense(n, n, []float64{
		1, 2, 3, 4,
		2, 5, 6, 7,
		3, 6, 8, 9,
		4, 7, 9, 10,
	})
	G := OrbitalGradient(F, nOcc)
	nv := n - nOcc
	for a := 0; a < nv; a++ {
		for i := 0; i < nOcc; i++ {
			assert.InDelta(t, 0.0, G.At(a, i), 1e-14)
		}
	}
}
