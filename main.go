// main.go --  This file is part of goOMP2 project.
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
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	WarningLogger *log.Logger
	InfoLogger    *log.Logger
	ErrorLogger   *log.Logger
	OutputLogger  *log.Logger
)

// element symbols indexed by Z-1
var elemSymbols = []string{"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne"}

func initLog(fname string) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}

	InfoLogger = log.New(file, "INFO: ", log.Ldate|log.Ltime)
	WarningLogger = log.New(file, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	OutputLogger = log.New(file, "", 0)
}

func printOutputDelimiter() {
	OutputLogger.Println(strings.Repeat("-", 70))
}

// RunSettings is everything the input file controls: the molecule, the basis
// name, the optimizer options and the memory budget for the O(N^4) tensors.
type RunSettings struct {
	Mol        *Molecule
	BasisName  string
	Cfg        Config
	MemLimitMB uint64
}

func processInput(data []string) (*RunSettings, error) {
	set := &RunSettings{
		Mol:        &Molecule{},
		BasisName:  "sto-3g",
		Cfg:        DefaultConfig(),
		MemLimitMB: 4096,
	}
	var haveAtoms bool
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 {
			continue
		}
		switch strings.ToLower(words[0]) {
		case "atoms":
			end, err := findBlockEnd(i, data, "Atoms")
			if err != nil {
				return nil, err
			}
			if err := addAtoms(set.Mol, data, i+1, end-1); err != nil {
				return nil, err
			}
			haveAtoms = true
			OutputLogger.Print("Parsing input. Atoms block found at lines ", i, " -- ", end, ".")
		case "basis":
			if _, err := findBlockEnd(i, data, "Basis"); err != nil {
				return nil, err
			}
			set.BasisName = strings.ToLower(strings.Fields(data[i+1])[0])
			OutputLogger.Print("Parsing input. Basis block found: ", set.BasisName)
		case "omp2":
			end, err := findBlockEnd(i, data, "OMP2")
			if err != nil {
				return nil, err
			}
			if err := parseOMP2Options(&set.Cfg, data, i+1, end-1); err != nil {
				return nil, err
			}
			OutputLogger.Print("Parsing input. OMP2 options block found.")
		case "nprocs":
			nprocs, err := strconv.Atoi(words[1])
			if err != nil {
				return nil, fmt.Errorf("bad NProcs value %q", words[1])
			}
			runtime.GOMAXPROCS(nprocs)
			OutputLogger.Print("Parsing input. Number of threads set to " + words[1] + ".")
		case "memory":
			mb, err := strconv.ParseUint(words[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad Memory value %q", words[1])
			}
			set.MemLimitMB = mb
			OutputLogger.Print("Parsing input. Memory limit set to " + words[1] + " MB.")
		}
	}
	if !haveAtoms {
		return nil, fmt.Errorf("parsing input: no Atoms block found")
	}
	return set, nil
}

func addAtoms(mol *Molecule, data []string, start, end int) error {
	for i := start; i < end+1; i++ {
		words := strings.Fields(data[i])
		if len(words) < 4 {
			return fmt.Errorf("incorrect format of coordinates at line %d: %q", i, data[i])
		}
		z := slices.Index(elemSymbols, words[0])
		if z < 0 {
			return fmt.Errorf("unknown element %q at line %d", words[0], i)
		}
		var coords [3]float64
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(words[k+1], 64)
			if err != nil {
				return fmt.Errorf("bad coordinate %q at line %d", words[k+1], i)
			}
			coords[k] = v
		}
		mol.Atoms = append(mol.Atoms, Atom{Z: z + 1, Coords: coords})
	}
	return nil
}

func parseOMP2Options(cfg *Config, data []string, start, end int) error {
	for i := start; i < end+1; i++ {
		words := strings.Fields(data[i])
		if len(words) < 2 {
			continue
		}
		switch strings.ToLower(words[0]) {
		case "maxiter":
			v, err := strconv.Atoi(words[1])
			if err != nil || v <= 0 {
				return fmt.Errorf("bad maxiter value %q", words[1])
			}
			cfg.MaxIter = v
		case "tol":
			v, err := strconv.ParseFloat(words[1], 64)
			if err != nil || v <= 0 {
				return fmt.Errorf("bad tol value %q", words[1])
			}
			cfg.EnergyTol = v
		case "degentol":
			v, err := strconv.ParseFloat(words[1], 64)
			if err != nil || v <= 0 {
				return fmt.Errorf("bad degentol value %q", words[1])
			}
			cfg.DegenTol = v
		default:
			return fmt.Errorf("unknown OMP2 option %q", words[0])
		}
	}
	return nil
}

func findBlockEnd(n int, data []string, bname string) (int, error) {
	for i := n; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 {
			if strings.ToLower(words[0]) == "end" {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("no end of block %s", bname)
}

func run(set *RunSettings) error {
	if err := set.Mol.SetBasis(set.BasisName); err != nil {
		return err
	}

	scf, err := RunSCF(set.Mol, 1e-12, 200)
	if err != nil {
		return err
	}
	OutputLogger.Println("Reference SCF electronic energy: ", scf.E, " a.u.")
	OutputLogger.Println("Reference SCF total energy: ", scf.E+set.Mol.NucNuc(), " a.u.")
	printOutputDelimiter()

	sys := SpinBlock(scf, set.Mol)

	// The O(N^4) tensors must fit before the optimizer is entered.
	need := EstimateBytes(sys.N)
	if need > set.MemLimitMB*1024*1024 {
		return fmt.Errorf("capacity: %d spin orbitals need %d MB, limit is %d MB",
			sys.N, need/(1024*1024), set.MemLimitMB)
	}

	set.Cfg.OnIteration = func(iter int, energy, delta, gradRMS float64) {
		OutputLogger.Println("Iteration ", iter, ". Energy = ", energy, ", dE = ", delta, ", grad RMS = ", gradRMS)
		fmt.Println("Iteration ", iter, ". Energy = ", energy, ", dE = ", delta, ", grad RMS = ", gradRMS)
	}
	res, err := Optimize(sys, set.Cfg)
	if err != nil {
		return err
	}
	printOutputDelimiter()
	switch res.Status {
	case Converged:
		OutputLogger.Println("OMP2 converged after step ", res.Iterations)
		fmt.Println("OMP2 converged after step ", res.Iterations)
	case MaxIterationsExceeded:
		OutputLogger.Println("Warning! OMP2 NOT converged after step ", res.Iterations)
		WarningLogger.Println("OMP2 not converged; reporting best available energy.")
		fmt.Println("Warning! OMP2 NOT converged after step ", res.Iterations)
	}

	OutputLogger.Println("Nuclei Repulsion Energy: ", set.Mol.NucNuc(), " a.u.")
	OutputLogger.Println("Final orbital coefficients:")
	OutputLogger.Print(PrintDense(res.C))
	OutputLogger.Println("Final total energy = ", res.Energy, " a.u. (", res.Status, ")")
	fmt.Println("Nuc energy = ", set.Mol.NucNuc(), " a.u.")
	fmt.Println("Final total energy = ", res.Energy, " a.u.")
	return nil
}

func main() {
	var inpFname, outFname string
	if len(os.Args) > 1 {
		inpFname = os.Args[1]
		splitInpFname := strings.Split(inpFname, ".")
		fExt := splitInpFname[len(splitInpFname)-1]
		outFname = inpFname[0:(len(inpFname)-len(fExt))] + "out"
		fmt.Println("Output file: ", outFname)
	} else {
		log.Fatal("No input file.")
	}

	initLog(outFname)

	InfoLogger.Println("Starting goOMP2...")
	OutputLogger.Println("Input file content:")
	printOutputDelimiter()
	inpData, err := ReadFileLines(inpFname)
	if err != nil {
		ErrorLogger.Fatal("Cannot read input file: ", err)
	}
	for _, i := range inpData {
		OutputLogger.Println(i)
	}
	printOutputDelimiter()

	set, err := processInput(inpData)
	if err != nil {
		ErrorLogger.Fatal(err)
	}

	if err := run(set); err != nil {
		ErrorLogger.Fatal(err)
	}

	InfoLogger.Println("Exiting goOMP2...")
	fmt.Println("goOMP2 done.")
}
