package aggregate

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/raulmeloferreira/maven-mapper/pkg/field"
	"github.com/raulmeloferreira/maven-mapper/pkg/layout"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depsCSV = "Project Group ID;Project Artifact ID;Project Version;Dependency Group ID;Dependency Artifact ID;Dependency Version\n" +
	"com.acme;billing;1.0;junit;junit;4.12\n" +
	"com.acme;billing;1.0;org.slf4j;slf4j-api;2.0.9\n" +
	"com.acme;orders;1.0;junit;junit;4.13\n" +
	"com.acme;orders;1.0;junit;junit;4.12\n" +
	"com.acme;users;1.0;org.slf4j;slf4j-api;\n"

func countDeps(t *testing.T, policy KeyPolicy) *Table {
	t.Helper()
	r, err := NewReader(strings.NewReader(depsCSV), ';', nil)
	require.NoError(t, err)

	table := NewTable(policy.Arity())
	require.NoError(t, CountRows(table, r, policy.Projection()))
	return table
}

func TestKeyPolicies(t *testing.T) {
	without := countDeps(t, KeyWithoutVersion)
	with := countDeps(t, KeyWithVersion)

	assert.Equal(t, 5, without.Total())
	assert.Equal(t, 5, with.Total())
	assert.Equal(t, 2, without.Len())
	assert.Equal(t, 4, with.Len())
	assert.GreaterOrEqual(t, with.Len(), without.Len())

	assert.Equal(t, 3, without.Count(tuple("junit", "junit")))
	assert.Equal(t, 2, with.Count(tuple("junit", "junit", "4.12")))
	assert.Equal(t, 1, with.Count(Tuple{field.Known("org.slf4j"), field.Known("slf4j-api"), field.Unknown}))

	top := without.Entries()[0]
	assert.Equal(t, tuple("junit", "junit"), top.Tuple)
}

func TestReader_HeaderAddressing(t *testing.T) {
	input := "\ufeffVERSION,PARENT GROUP,PARENT\n" +
		"5,com.acme,acme-parent\n" +
		"5,com.acme,acme-parent\n" +
		",,\n" +
		"6,com.acme\n"

	r, err := NewReader(strings.NewReader(input), ',', nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"VERSION", "PARENT GROUP", "PARENT"}, r.Header())

	p := Projection{layout.Parent, layout.ParentGroup, layout.Version}
	table := NewTable(len(p))
	require.NoError(t, CountRows(table, r, p))

	assert.Equal(t, 4, table.Total())
	assert.Equal(t, 2, table.Count(tuple("acme-parent", "com.acme", "5")))
	assert.Equal(t, 1, table.Count(Tuple{field.Unknown, field.Unknown, field.Unknown}))
	assert.Equal(t, 1, table.Count(Tuple{field.Unknown, field.Known("com.acme"), field.Known("6")}))
}

func TestReader_SkipsMalformedRows(t *testing.T) {
	input := "A;B\n" +
		"1;2\n" +
		"bad\"quote;3\n" +
		"4;5\n"

	buf := &bytes.Buffer{}
	r, err := NewReader(strings.NewReader(input), ';', logger.NewLogger(logger.LevelInfo, buf))
	require.NoError(t, err)

	var lines []int
	for row := range r.Rows() {
		lines = append(lines, row.Line)
	}

	assert.NoError(t, r.Err())
	assert.Equal(t, 1, r.Skipped())
	assert.Equal(t, []int{2, 4}, lines)
	assert.Contains(t, buf.String(), "Skipping malformed row")
}

func TestReader_MissingColumns(t *testing.T) {
	r, err := NewReader(strings.NewReader("A;B\n1;2\n"), ';', nil)
	require.NoError(t, err)

	p := Projection{"A", "C"}
	assert.Equal(t, []string{"C"}, p.Missing(r))

	for row := range r.Rows() {
		assert.Equal(t, Tuple{field.Known("1"), field.Unknown}, p.Apply(row))
	}
}

func TestReader_EmptyInput(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), ';', nil)
	assert.True(t, errors.Is(err, ErrNoHeader))
}

func TestCountDependencies(t *testing.T) {
	p := &pom.Project{Dependencies: []pom.Dependency{
		{GroupID: field.Known("junit"), ArtifactID: field.Known("junit"), Version: field.Known("4.12")},
		{GroupID: field.Known("junit"), ArtifactID: field.Known("junit"), Version: field.Known("4.13")},
	}}

	without := NewTable(KeyWithoutVersion.Arity())
	CountDependencies(without, p, KeyWithoutVersion)
	with := NewTable(KeyWithVersion.Arity())
	CountDependencies(with, p, KeyWithVersion)

	assert.Equal(t, 1, without.Len())
	assert.Equal(t, 2, with.Len())
	assert.Equal(t, without.Total(), with.Total())
}
