/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gorad/InputParameters"
	"github.com/notargets/gorad/angles"
	"github.com/notargets/gorad/mesh"
	"github.com/notargets/gorad/remap"
	"github.com/notargets/gorad/tetrad"
	"github.com/notargets/gorad/utils"
)

type ModelTables struct {
	ICFile  string
	Profile bool
}

// TablesCmd represents the tables command
var TablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Builds the angular remap tables for the configured mesh block and boundary set",
	Long: `Builds the angular remap tables for the configured mesh block and boundary set,
validates every entry and prints per-face statistics`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("tables called")
		mt := &ModelTables{}
		if mt.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mt.Profile, _ = cmd.Flags().GetBool("profile")
		rp := processInput(mt)
		RunTables(mt, rp)
	},
}

func processInput(mt *ModelTables) (rp *InputParameters.RadParameters) {
	var (
		err error
	)
	if len(mt.ICFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Spherical Test Case"
Nx1: 16
Nx2: 8
Nx3: 8
X1Min: 1.
X1Max: 2.
X2Min: 0.
X2Max: 3.141592653589793
X3Min: 0.
X3Max: 6.283185307179586
NGhost: 2
NZeta: 4
NPsi: 4
NGhostAng: 1
Frame: spherical
BCs:
  inner_x1: reflect
  inner_x2: polar
  outer_x2: polar
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mt.ICFile); err != nil {
		panic(err)
	}
	rp = &InputParameters.RadParameters{}
	if err = rp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(TablesCmd)
	TablesCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- mesh extents\n\t- angular bin counts\n\t- per face boundary kinds")
	TablesCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the table build")
}

func RunTables(mt *ModelTables, rp *InputParameters.RadParameters) {
	rp.Print()
	if mt.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	var bcs [utils.NumFaces]utils.BCType
	for name, kind := range rp.BCs {
		f, err := utils.ParseFaceName(name)
		if err != nil {
			panic(err)
		}
		bcs[f] = utils.ParseBCName(kind)
	}

	blk, err := mesh.NewBlock(rp.Nx1, rp.Nx2, rp.Nx3, rp.NGhost,
		rp.X1Min, rp.X1Max, rp.X2Min, rp.X2Max, rp.X3Min, rp.X3Max, bcs)
	if err != nil {
		panic(err)
	}
	ag, err := angles.NewAngularGrid(rp.NZeta, rp.NPsi, rp.NGhostAng)
	if err != nil {
		panic(err)
	}

	var coords tetrad.Coordinates
	switch strings.ToLower(rp.Frame) {
	case "", "minkowski", "cartesian":
		coords = tetrad.Minkowski{}
	case "spherical", "spherical_polar":
		coords = tetrad.SphericalPolar{}
	default:
		panic(fmt.Errorf("unknown frame: %s", rp.Frame))
	}

	b := &remap.Builder{
		Block:          blk,
		Grid:           ag,
		Basis:          angles.NewDirectionBasis(ag),
		Coords:         coords,
		ParallelDegree: rp.ParallelDegree,
	}
	bt, err := b.BuildAll()
	if err != nil {
		panic(err)
	}
	if err = bt.Validate(); err != nil {
		panic(err)
	}
	printStats(bt)
}

func printStats(bt *remap.BoundaryTables) {
	stats := bt.Stats()
	faces := make([]string, len(stats))
	i := 0
	for f := range stats {
		faces[i] = f
		i++
	}
	sort.Strings(faces)
	for _, f := range faces {
		fmt.Printf("%s: entries = %d, exact hits = %d\n",
			f, stats[f]["entries"], stats[f]["exact_hits"])
	}
}
