// molecule.go --  This file is part of goOMP2 project.
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
	"fmt"
	"math"
)

type PrimitiveGaussian struct {
	Alpha  float64
	Coeff  float64
	Coords [3]float64 //Center coordinates
}

func (p PrimitiveGaussian) NormCoeff() float64 {
	return math.Pow((2 * p.Alpha / math.Pi), 0.75)
}

// AO is one contracted s-type basis function.
type AO struct {
	PGs []PrimitiveGaussian
}

type Atom struct {
	Z      int
	Coords [3]float64
}

type Molecule struct {
	Atoms []Atom
	Basis []AO
}

func (m *Molecule) NElec() int {
	res := 0
	for _, a := range m.Atoms {
		res += a.Z
	}
	return res
}

// NucNuc is the point-charge nuclear repulsion energy.
func (m *Molecule) NucNuc() float64 {
	res := 0.0
	for i := range m.Atoms {
		for j := 0; j < i; j++ {
			res += float64(m.Atoms[i].Z) * float64(m.Atoms[j].Z) /
				math.Sqrt(quadDist(m.Atoms[i].Coords, m.Atoms[j].Coords))
		}
	}
	return res
}

// STO-3G hydrogen, exponents and contraction coefficients from the EMSL
// tabulation.
func sto3gH(center [3]float64) []AO {
	return []AO{{[]PrimitiveGaussian{
		{0.3425250914e+01, 0.1543289673e+00, center},
		{0.6239137298e+00, 0.5353281423e+00, center},
		{0.1688554040e+00, 0.4446345422e+00, center},
	}}}
}

// 6-31G hydrogen: a three-primitive inner function and a single diffuse one.
func basis631gH(center [3]float64) []AO {
	return []AO{
		{[]PrimitiveGaussian{
			{0.1873113696e+02, 0.3349460434e-01, center},
			{0.2825394365e+01, 0.2347269535e+00, center},
			{0.6401216923e+00, 0.8137573261e+00, center},
		}},
		{[]PrimitiveGaussian{
			{0.1612777588e+00, 1.0000000, center},
		}},
	}
}

// SetBasis attaches the named basis to every atom. Only elements with
// in-source tables are supported; anything else is an input error.
func (m *Molecule) SetBasis(name string) error {
	m.Basis = nil
	for _, a := range m.Atoms {
		if a.Z != 1 {
			return fmt.Errorf("no %s basis table for Z=%d", name, a.Z)
		}
		switch name {
		case "sto-3g":
			m.Basis = append(m.Basis, sto3gH(a.Coords)...)
		case "6-31g":
			m.Basis = append(m.Basis, basis631gH(a.Coords)...)
		default:
			return fmt.Errorf("unknown basis %q", name)
		}
	}
	return nil
}

// HydrogenChain places n hydrogens on the x axis separated by dist bohr.
func HydrogenChain(n int, dist float64) *Molecule {
	m := &Molecule{}
	for i := 0; i < n; i++ {
		m.Atoms = append(m.Atoms, Atom{1, [3]float64{dist * float64(i), 0.0, 0.0}})
	}
	return m
}
