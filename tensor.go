// tensor.go --  This file is part of goOMP2 project.
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

// Tensor4 is a real rank-4 tensor backed by a single contiguous row-major
// slice. All four-index quantities in the program (two-electron integrals,
// amplitudes, two-particle densities) live in one of these; occupied/virtual
// blocks are addressed by index offsets into the same backing array, never
// copied out.
type Tensor4 struct {
	d0, d1, d2, d3 int
	data           []float64
}

func NewTensor4(d0, d1, d2, d3 int) *Tensor4 {
	return &Tensor4{d0, d1, d2, d3, make([]float64, d0*d1*d2*d3)}
}

func (t *Tensor4) Dims() (int, int, int, int) {
	return t.d0, t.d1, t.d2, t.d3
}

func (t *Tensor4) At(p, q, r, s int) float64 {
	return t.data[((p*t.d1+q)*t.d2+r)*t.d3+s]
}

func (t *Tensor4) Set(p, q, r, s int, v float64) {
	t.data[((p*t.d1+q)*t.d2+r)*t.d3+s] = v
}

func (t *Tensor4) Add(p, q, r, s int, v float64) {
	t.data[((p*t.d1+q)*t.d2+r)*t.d3+s] += v
}

// Raw exposes the backing slice.
func (t *Tensor4) Raw() []float64 {
	return t.data
}

// Pair names one of the two index pairs of a rank-4 tensor: the first two
// indices (bra) or the last two (ket).
type Pair int

const (
	BraPair Pair = iota
	KetPair
)

// Antisymmetrize returns a new tensor a - a|swapped, with the given index
// pair transposed in the subtracted copy. This is the one permute-then-
// subtract combinator shared by the amplitude update and the spin-orbital
// integral setup.
func Antisymmetrize(a *Tensor4, pair Pair) *Tensor4 {
	out := NewTensor4(a.d0, a.d1, a.d2, a.d3)
	for p := 0; p < a.d0; p++ {
		for q := 0; q < a.d1; q++ {
			for r := 0; r < a.d2; r++ {
				for s := 0; s < a.d3; s++ {
					var swapped float64
					if pair == BraPair {
						swapped = a.At(q, p, r, s)
					} else {
						swapped = a.At(p, q, s, r)
					}
					out.Set(p, q, r, s, a.At(p, q, r, s)-swapped)
				}
			}
		}
	}
	return out
}
