package pom

import (
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/raulmeloferreira/maven-mapper/pkg/field"
)

// FileName is the descriptor file name searched for during a walk.
const FileName = "pom.xml"

const compilerPlugin = "maven-compiler-plugin"

// ParseFile reads and parses the descriptor at path. The file is closed
// before returning, whether parsing succeeded or not.
func ParseFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening descriptor: %w", err)
	}
	defer f.Close()

	project, err := Parse(f)
	if err != nil {
		return nil, err
	}
	project.SourcePath = path

	return project, nil
}

// Parse extracts a Project from descriptor content. Origin and SourcePath
// are left for the caller.
func Parse(r io.Reader) (*Project, error) {
	root, err := decodeRoot(r)
	if err != nil {
		return nil, err
	}
	if root.Data != "project" {
		return nil, fmt.Errorf("%w: root element is <%s>, want <project>", ErrMalformed, root.Data)
	}

	project := &Project{
		Coordinates: Coordinates{
			GroupID:     value(root, "groupId"),
			ArtifactID:  value(root, "artifactId"),
			Version:     value(root, "version"),
			JavaVersion: javaVersion(root),
		},
		Dependencies: dependencies(root),
	}

	if el := find(root, "parent"); el != nil {
		parent := &Parent{
			GroupID:    value(el, "groupId"),
			ArtifactID: value(el, "artifactId"),
			Version:    value(el, "version"),
		}
		project.Parent = parent
		project.Coordinates.GroupID = project.Coordinates.GroupID.OrValue(parent.GroupID)
		project.Coordinates.Version = project.Coordinates.Version.OrValue(parent.Version)
	}

	return project, nil
}

// javaVersion checks the compiler property first, then the compiler plugin.
func javaVersion(root *xmlquery.Node) field.Value {
	if v := value(root, "properties", "maven.compiler.source"); v.IsKnown() {
		return v
	}

	for _, plugin := range all(root, "build", "plugins", "plugin") {
		if name, _ := value(plugin, "artifactId").Get(); name != compilerPlugin {
			continue
		}
		if v := value(plugin, "configuration", "source"); v.IsKnown() {
			return v
		}
	}

	return field.Unknown
}

func dependencies(root *xmlquery.Node) []Dependency {
	nodes := all(root, "dependencies", "dependency")
	deps := make([]Dependency, 0, len(nodes))
	for _, n := range nodes {
		deps = append(deps, Dependency{
			GroupID:    value(n, "groupId"),
			ArtifactID: value(n, "artifactId"),
			Version:    value(n, "version"),
		})
	}
	return deps
}
