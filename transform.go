// transform.go --  This file is part of goOMP2 project.
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
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// parallelRange splits [0,n) into GOMAXPROCS contiguous chunks and runs work
// on each concurrently. Chunks partition output rows only, so every tensor
// element is still reduced in a fixed index order and results do not depend
// on the thread count.
func parallelRange(n int, work func(lo, hi int)) {
	maxGoroutines := runtime.GOMAXPROCS(-1)
	if maxGoroutines > n {
		maxGoroutines = n
	}
	if maxGoroutines <= 1 {
		work(0, n)
		return
	}
	chunk := n / maxGoroutines
	var wg sync.WaitGroup
	for w := 0; w < maxGoroutines; w++ {
		lo := w * chunk
		hi := lo + chunk
		if w == maxGoroutines-1 {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			work(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// TransformOneElectron returns Cᵀ h C.
func TransformOneElectron(h, C *mat.Dense) *mat.Dense {
	n, _ := h.Dims()
	var tmp mat.Dense
	tmp.Mul(C.T(), h)
	res := mat.NewDense(n, n, nil)
	res.Mul(&tmp, C)
	return res
}

// TransformTwoElectron applies the basis change to all four legs of g, one
// leg at a time so the cost stays O(N^5) per leg. Antisymmetry of g carries
// through unchanged because every leg is a plain congruence contraction.
func TransformTwoElectron(g *Tensor4, C *mat.Dense) *Tensor4 {
	n, _, _, _ := g.Dims()
	cur := g
	for leg := 0; leg < 4; leg++ {
		next := NewTensor4(n, n, n, n)
		parallelRange(n, func(lo, hi int) {
			for p := lo; p < hi; p++ {
				for q := 0; q < n; q++ {
					for r := 0; r < n; r++ {
						for s := 0; s < n; s++ {
							acc := 0.0
							switch leg {
							case 0:
								for m := 0; m < n; m++ {
									acc += C.At(m, p) * cur.At(m, q, r, s)
								}
							case 1:
								for m := 0; m < n; m++ {
									acc += C.At(m, q) * cur.At(p, m, r, s)
								}
							case 2:
								for m := 0; m < n; m++ {
									acc += C.At(m, r) * cur.At(p, q, m, s)
								}
							case 3:
								for m := 0; m < n; m++ {
									acc += C.At(m, s) * cur.At(p, q, r, m)
								}
							}
							next.Set(p, q, r, s, acc)
						}
					}
				}
			}
		})
		cur = next
	}
	return cur
}
