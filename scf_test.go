// scf_test.go --  This file is part of goOMP2 project.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// Reference energies computed with an independent step-for-step realization
// of the same integral and SCF formulas (atomic units throughout).
func TestRunSCFReferenceEnergies(t *testing.T) {
	tests := []struct {
		name   string
		mol    *Molecule
		basis  string
		eTotal float64
		nOrbs  int
	}{
		{"H2 STO-3G R=1.4", HydrogenChain(2, 1.4), "sto-3g", -1.1167143252, 2},
		{"H2 6-31G R=1.4", HydrogenChain(2, 1.4), "6-31g", -1.1267427007, 4},
		{"H4 chain STO-3G d=1.8", HydrogenChain(4, 1.8), "sto-3g", -2.1134289173, 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.mol.SetBasis(test.basis))
			res, err := RunSCF(test.mol, 1e-12, 200)
			require.NoError(t, err)
			assert.InDelta(t, test.eTotal, res.E+test.mol.NucNuc(), 1e-6)
			assert.Len(t, res.Eps, test.nOrbs)
			for i := 1; i < len(res.Eps); i++ {
				assert.LessOrEqual(t, res.Eps[i-1], res.Eps[i], "orbital energies must come out ascending")
			}
		})
	}
}

func TestRunSCFOrthonormalOrbitals(t *testing.T) {
	mol := HydrogenChain(2, 1.4)
	require.NoError(t, mol.SetBasis("6-31g"))
	res, err := RunSCF(mol, 1e-12, 200)
	require.NoError(t, err)

	var m mat.Dense
	m.Mul(res.C.T(), res.S)
	m.Mul(&m, res.C)
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, m.At(i, j), 1e-9)
		}
	}
}

func TestRunSCFRejectsOpenShell(t *testing.T) {
	mol := HydrogenChain(3, 1.4)
	require.NoError(t, mol.SetBasis("sto-3g"))
	_, err := RunSCF(mol, 1e-10, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "even electron count")
}

func TestMoleculeNucNuc(t *testing.T) {
	mol := HydrogenChain(2, 1.4)
	assert.InDelta(t, 1.0/1.4, mol.NucNuc(), 1e-14)
}
