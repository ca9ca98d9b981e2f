// density_test.go --  This file is part of goOMP2 project.
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
)

func TestBuildDensitiesZeroAmplitudes(t *testing.T) {
	n, nOcc := 6, 2
	nv := n - nOcc
	amp := NewTensor4(nv, nv, nOcc, nOcc)
	opdm, tpdm := BuildDensities(amp, n, nOcc)

	// reference-only one-particle density: identity on the occupied block
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			want := 0.0
			if p == q && p < nOcc {
				want = 1.0
			}
			assert.InDelta(t, want, opdm.At(p, q), 1e-14)
		}
	}
	// reference two-particle density: delta(r,p)delta(s,q) - delta(s,p)delta(r,q)
	// over occupied indices only
	for r := 0; r < n; r++ {
		for s := 0; s < n; s++ {
			for p := 0; p < n; p++ {
				for q := 0; q < n; q++ {
					want := 0.0
					if r < nOcc && s < nOcc {
						if r == p && s == q {
							want += 1.0
						}
						if s == p && r == q {
							want -= 1.0
						}
					}
					assert.InDelta(t, want, tpdm.At(r, s, p, q), 1e-14)
				}
			}
		}
	}
}

func TestBuildDensitiesTraceAndSymmetry(t *testing.T) {
	n, nOcc := 6, 2
	nv := n - nOcc
	raw := randTensor4(nv, nv, nOcc, nOcc, 43)
	amp := Antisymmetrize(Antisymmetrize(raw, BraPair), KetPair)

	opdm, tpdm := BuildDensities(amp, n, nOcc)

	// particle number: the correlation corrections to the occupied and
	// virtual blocks cancel exactly in the trace
	tr := 0.0
	for p := 0; p < n; p++ {
		tr += opdm.At(p, p)
	}
	assert.InDelta(t, float64(nOcc), tr, 1e-12)

	// opdm is symmetric
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			assert.InDelta(t, opdm.At(p, q), opdm.At(q, p), 1e-13)
		}
	}

	// tpdm carries the full two-particle antisymmetry
	for r := 0; r < n; r++ {
		for s := 0; s < n; s++ {
			for p := 0; p < n; p++ {
				for q := 0; q < n; q++ {
					assert.InDelta(t, -tpdm.At(r, s, p, q), tpdm.At(s, r, p, q), 1e-13)
					assert.InDelta(t, -tpdm.At(r, s, p, q), tpdm.At(r, s, q, p), 1e-13)
				}
			}
		}
	}
}
