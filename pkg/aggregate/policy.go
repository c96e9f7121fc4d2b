package aggregate

import (
	"github.com/raulmeloferreira/maven-mapper/pkg/layout"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
)

// Projection selects an ordered list of columns from a row.
type Projection []string

// Apply builds the tuple for row. Absent columns become unknown.
func (p Projection) Apply(row Row) Tuple {
	t := make(Tuple, len(p))
	for i, name := range p {
		t[i] = row.Get(name)
	}
	return t
}

// Missing lists the projected columns absent from r's header.
func (p Projection) Missing(r *Reader) []string {
	var out []string
	for _, name := range p {
		if !r.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// KeyPolicy chooses the dependency counting key. The two policies give
// genuinely different tables: dropping the version merges counts that
// differ only by version.
type KeyPolicy int

const (
	// KeyWithoutVersion keys by (groupId, artifactId).
	KeyWithoutVersion KeyPolicy = iota
	// KeyWithVersion keys by (groupId, artifactId, version).
	KeyWithVersion
)

// Projection returns the dependency export columns for the policy.
func (k KeyPolicy) Projection() Projection {
	if k == KeyWithVersion {
		return Projection{layout.DependencyGroupID, layout.DependencyArtifactID, layout.DependencyVersion}
	}
	return Projection{layout.DependencyGroupID, layout.DependencyArtifactID}
}

// Arity returns the tuple width of the policy.
func (k KeyPolicy) Arity() int {
	return len(k.Projection())
}

// DependencyTuple projects a declared dependency under the policy.
func (k KeyPolicy) DependencyTuple(d pom.Dependency) Tuple {
	if k == KeyWithVersion {
		return Tuple{d.GroupID, d.ArtifactID, d.Version}
	}
	return Tuple{d.GroupID, d.ArtifactID}
}

// CountRows adds the projection of every row of r to t.
func CountRows(t *Table, r *Reader, p Projection) error {
	for row := range r.Rows() {
		t.Add(p.Apply(row))
	}
	return r.Err()
}

// CountDependencies adds every dependency of p to t under the policy.
func CountDependencies(t *Table, p *pom.Project, k KeyPolicy) {
	for _, d := range p.Dependencies {
		t.Add(k.DependencyTuple(d))
	}
}
