// transform_test.go --  This file is part of goOMP2 project.
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

// randAntisymG builds a random rank-4 tensor with the two-electron
// antisymmetry g[p,q,r,s] = -g[q,p,r,s] = -g[p,q,s,r].
func randAntisymG(n int, seed int64) *Tensor4 {
	raw := randTensor4(n, n, n, n, seed)
	return Antisymmetrize(Antisymmetrize(raw, BraPair), KetPair)
}

func checkAntisymG(t *testing.T, g *Tensor4, tol float64) {
	t.Helper()
	n, _, _, _ := g.Dims()
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					assert.InDelta(t, -g.At(p, q, r, s), g.At(q, p, r, s), tol)
					assert.InDelta(t, -g.At(p, q, r, s), g.At(p, q, s, r), tol)
				}
			}
		}
	}
}

func TestTransformOneElectronIdentity(t *testing.T) {
	n := 4
	rng := rand.New(rand.NewSource(3))
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	h := mat.NewDense(n, n, data)
	eye := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		eye.Set(i, i, 1.0)
	}
	hmo := TransformOneElectron(h, eye)
	assert.True(t, mat.EqualApprox(h, hmo, 1e-14))
}

func TestTransformTwoElectronIdentity(t *testing.T) {
	n := 3
	g := randAntisymG(n, 5)
	eye := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		eye.Set(i, i, 1.0)
	}
	gmo := TransformTwoElectron(g, eye)
	for i, v := range g.Raw() {
		assert.InDelta(t, v, gmo.Raw()[i], 1e-14)
	}
}

// The congruence transform must preserve two-electron antisymmetry for any
// coefficient matrix.
func TestTransformPreservesAntisymmetry(t *testing.T) {
	n := 4
	g := randAntisymG(n, 7)
	checkAntisymG(t, g, 1e-14)

	// an arbitrary orthogonal C, generated the way the driver generates them
	X := mat.NewDense(n, n, nil)
	X.Set(2, 0, 0.3)
	X.Set(3, 1, -0.7)
	U, err := RotationOperator(X)
	require.NoError(t, err)

	gmo := TransformTwoElectron(g, U)
	checkAntisymG(t, gmo, 1e-12)
}
