// Package layout names the delimited columns produced and consumed by the
// inventory commands, and projects records onto them.
package layout

import (
	"github.com/raulmeloferreira/maven-mapper/pkg/field"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
)

// Dependency export columns.
const (
	ProjectGroupID       = "Project Group ID"
	ProjectArtifactID    = "Project Artifact ID"
	ProjectVersion       = "Project Version"
	DependencyGroupID    = "Dependency Group ID"
	DependencyArtifactID = "Dependency Artifact ID"
	DependencyVersion    = "Dependency Version"
	ParentGroupID        = "Parent Group ID"
	ParentArtifactID     = "Parent Artifact ID"
	ParentVersion        = "Parent Version"
	JavaVersion          = "Java Version"
	OriginCode           = "Origin Code"
)

// Project listing columns. VERSION is the parent version.
const (
	Path          = "PATH"
	Parent        = "PARENT"
	ParentGroup   = "PARENT GROUP"
	Version       = "VERSION"
	GroupID       = "GROUP ID"
	ArtifactID    = "ARTIFACT ID"
	ModuleVersion = "PROJECT VERSION"
	Java          = "JAVA VERSION"
	GitURL        = "GIT URL"
	Origin        = "ORIGIN"
)

// Column pairs a header with the projection that fills it.
type Column[T any] struct {
	Header string
	Value  func(T) field.Value
}

// Headers returns the header row for cols.
func Headers[T any](cols []Column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// Values projects item onto cols.
func Values[T any](cols []Column[T], item T) []field.Value {
	out := make([]field.Value, len(cols))
	for i, c := range cols {
		out[i] = c.Value(item)
	}
	return out
}

// Edge is one dependency of one project, the unit of the dependency export.
type Edge struct {
	Project    *pom.Project
	Dependency pom.Dependency
}

// Edges expands a project into its dependency edges, in declaration order.
func Edges(p *pom.Project) []Edge {
	out := make([]Edge, len(p.Dependencies))
	for i, d := range p.Dependencies {
		out[i] = Edge{Project: p, Dependency: d}
	}
	return out
}

// EdgeColumns is the dependency export layout. Extended adds parent,
// Java version and origin code after the six base columns.
func EdgeColumns(extended bool) []Column[Edge] {
	cols := []Column[Edge]{
		{ProjectGroupID, func(e Edge) field.Value { return e.Project.Coordinates.GroupID }},
		{ProjectArtifactID, func(e Edge) field.Value { return e.Project.Coordinates.ArtifactID }},
		{ProjectVersion, func(e Edge) field.Value { return e.Project.Coordinates.Version }},
		{DependencyGroupID, func(e Edge) field.Value { return e.Dependency.GroupID }},
		{DependencyArtifactID, func(e Edge) field.Value { return e.Dependency.ArtifactID }},
		{DependencyVersion, func(e Edge) field.Value { return e.Dependency.Version }},
	}
	if !extended {
		return cols
	}
	return append(cols,
		Column[Edge]{ParentGroupID, func(e Edge) field.Value { return e.Project.ParentOrEmpty().GroupID }},
		Column[Edge]{ParentArtifactID, func(e Edge) field.Value { return e.Project.ParentOrEmpty().ArtifactID }},
		Column[Edge]{ParentVersion, func(e Edge) field.Value { return e.Project.ParentOrEmpty().Version }},
		Column[Edge]{JavaVersion, func(e Edge) field.Value { return e.Project.Coordinates.JavaVersion }},
		Column[Edge]{OriginCode, func(e Edge) field.Value { return e.Project.Origin.Code }},
	)
}

// ProjectColumns is the per-project listing layout.
func ProjectColumns() []Column[*pom.Project] {
	return []Column[*pom.Project]{
		{Path, func(p *pom.Project) field.Value { return field.Known(p.SourcePath) }},
		{Parent, func(p *pom.Project) field.Value { return p.ParentOrEmpty().ArtifactID }},
		{ParentGroup, func(p *pom.Project) field.Value { return p.ParentOrEmpty().GroupID }},
		{Version, func(p *pom.Project) field.Value { return p.ParentOrEmpty().Version }},
		{GroupID, func(p *pom.Project) field.Value { return p.Coordinates.GroupID }},
		{ArtifactID, func(p *pom.Project) field.Value { return p.Coordinates.ArtifactID }},
		{ModuleVersion, func(p *pom.Project) field.Value { return p.Coordinates.Version }},
		{Java, func(p *pom.Project) field.Value { return p.Coordinates.JavaVersion }},
		{GitURL, func(p *pom.Project) field.Value { return p.Origin.URL }},
		{Origin, func(p *pom.Project) field.Value { return p.Origin.Code }},
	}
}

// Select keeps the columns whose headers are listed, in the listed order.
// Unknown headers are returned separately.
func Select[T any](cols []Column[T], headers []string) ([]Column[T], []string) {
	byHeader := make(map[string]Column[T], len(cols))
	for _, c := range cols {
		byHeader[c.Header] = c
	}

	var (
		out     []Column[T]
		missing []string
	)
	for _, h := range headers {
		c, ok := byHeader[h]
		if !ok {
			missing = append(missing, h)
			continue
		}
		out = append(out, c)
	}
	return out, missing
}
