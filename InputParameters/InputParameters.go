package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type RadParameters struct {
	Title          string            `yaml:"Title"`
	Nx1            int               `yaml:"Nx1"`
	Nx2            int               `yaml:"Nx2"`
	Nx3            int               `yaml:"Nx3"`
	X1Min          float64           `yaml:"X1Min"`
	X1Max          float64           `yaml:"X1Max"`
	X2Min          float64           `yaml:"X2Min"`
	X2Max          float64           `yaml:"X2Max"`
	X3Min          float64           `yaml:"X3Min"`
	X3Max          float64           `yaml:"X3Max"`
	NGhost         int               `yaml:"NGhost"`
	NZeta          int               `yaml:"NZeta"`
	NPsi           int               `yaml:"NPsi"`
	NGhostAng      int               `yaml:"NGhostAng"`
	Frame          string            `yaml:"Frame"` // minkowski or spherical
	BCs            map[string]string `yaml:"BCs"`   // Key is face name, value is boundary kind
	ParallelDegree int               `yaml:"ParallelDegree"`
}

func (rp *RadParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

func (rp *RadParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%d,%d,%d]\t\t= Mesh Cells\n", rp.Nx1, rp.Nx2, rp.Nx3)
	fmt.Printf("[%d]\t\t\t\t= Mesh Ghost Width\n", rp.NGhost)
	fmt.Printf("[%d,%d]\t\t\t= Angular Bins (NZeta, NPsi)\n", rp.NZeta, rp.NPsi)
	fmt.Printf("[%d]\t\t\t\t= Angular Ghost Width\n", rp.NGhostAng)
	fmt.Printf("[%s]\t\t= Frame\n", rp.Frame)
	keys := make([]string, len(rp.BCs))
	i := 0
	for k := range rp.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, rp.BCs[key])
	}
}
