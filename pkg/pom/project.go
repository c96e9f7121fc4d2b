package pom

import (
	"github.com/raulmeloferreira/maven-mapper/pkg/field"
	"github.com/raulmeloferreira/maven-mapper/pkg/origin"
)

// Coordinates is the Maven identity of one module.
type Coordinates struct {
	GroupID     field.Value
	ArtifactID  field.Value
	Version     field.Value
	JavaVersion field.Value
}

// Parent references the module a descriptor inherits from.
type Parent struct {
	GroupID    field.Value
	ArtifactID field.Value
	Version    field.Value
}

// Dependency is one declared dependency edge.
type Dependency struct {
	GroupID    field.Value
	ArtifactID field.Value
	Version    field.Value
}

// Project is everything extracted from one descriptor. A Project is built
// once by the extraction pass and must not be modified afterwards.
type Project struct {
	Coordinates  Coordinates
	Parent       *Parent // nil when the descriptor declares no parent
	Dependencies []Dependency
	Origin       origin.Origin
	SourcePath   string
}

// ParentOrEmpty returns the parent reference, or an all-unknown one.
func (p *Project) ParentOrEmpty() Parent {
	if p.Parent == nil {
		return Parent{}
	}
	return *p.Parent
}
