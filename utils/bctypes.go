package utils

import (
	"fmt"
	"strings"
)

// BCType represents boundary condition types for radiation transport
type BCType uint16

const (
	// BCNone indicates no boundary condition (interior face)
	BCNone BCType = iota

	// BCOutflow lets radiation leave the domain freely
	BCOutflow
	// BCPeriodic wraps the domain
	BCPeriodic
	// BCVacuum zeroes incoming intensity
	BCVacuum
	// BCReflect returns outgoing radiation with the normal direction
	// component reversed; triggers angular remap table construction
	BCReflect
	// BCPolar continues radiation through a latitudinal coordinate pole
	// with both transverse direction components reversed; triggers
	// angular remap table construction
	BCPolar

	// User-defined (reserve space for custom BCs)
	BCUserDefined1
	BCUserDefined2
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:         "None",
		BCOutflow:      "Outflow",
		BCPeriodic:     "Periodic",
		BCVacuum:       "Vacuum",
		BCReflect:      "Reflect",
		BCPolar:        "Polar",
		BCUserDefined1: "UserDefined1",
		BCUserDefined2: "UserDefined2",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// BCNameMap provides a mapping from common boundary condition names to
// BCType. Keys are lowercase for case-insensitive matching.
var BCNameMap = map[string]BCType{
	"outflow":    BCOutflow,
	"outlet":     BCOutflow,
	"free":       BCOutflow,
	"periodic":   BCPeriodic,
	"vacuum":     BCVacuum,
	"reflect":    BCReflect,
	"reflecting": BCReflect,
	"wall":       BCReflect,
	"mirror":     BCReflect,
	"polar":      BCPolar,
	"pole":       BCPolar,
}

// ParseBCName converts a boundary condition name string to BCType
// The matching is case-insensitive and trims whitespace
func ParseBCName(name string) BCType {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if bcType, ok := BCNameMap[lowerName]; ok {
		return bcType
	}
	// Default to outflow for unknown types
	return BCOutflow
}

// BoundaryFace identifies one of the six faces of a mesh block
type BoundaryFace uint8

const (
	InnerX1 BoundaryFace = iota
	OuterX1
	InnerX2
	OuterX2
	InnerX3
	OuterX3
	NumFaces
)

// Axis returns the spatial axis (1, 2 or 3) normal to the face
func (f BoundaryFace) Axis() int {
	return int(f)/2 + 1
}

// Inner reports whether the face is on the lower side of its axis
func (f BoundaryFace) Inner() bool {
	return f%2 == 0
}

func (f BoundaryFace) String() string {
	names := [NumFaces]string{
		"InnerX1", "OuterX1", "InnerX2", "OuterX2", "InnerX3", "OuterX3",
	}
	if f < NumFaces {
		return names[f]
	}
	return "Unknown"
}

// FaceNameMap provides a mapping from input-file face names to
// BoundaryFace. Keys are lowercase for case-insensitive matching.
var FaceNameMap = map[string]BoundaryFace{
	"inner_x1": InnerX1,
	"outer_x1": OuterX1,
	"inner_x2": InnerX2,
	"outer_x2": OuterX2,
	"inner_x3": InnerX3,
	"outer_x3": OuterX3,
}

// ParseFaceName converts a face name string to BoundaryFace
// The matching is case-insensitive and trims whitespace
func ParseFaceName(name string) (f BoundaryFace, err error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	f, ok := FaceNameMap[lowerName]
	if !ok {
		err = fmt.Errorf("unknown boundary face name: %s", name)
	}
	return
}
