package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raulmeloferreira/maven-mapper/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent>
    <groupId>com.acme</groupId>
    <artifactId>acme-parent</artifactId>
    <version>7</version>
  </parent>
  <artifactId>app</artifactId>
  <version>1.0</version>
  <properties><maven.compiler.source>17</maven.compiler.source></properties>
  <dependencies>
    <dependency><groupId>org.junit</groupId><artifactId>junit</artifactId><version>4.13</version></dependency>
    <dependency><groupId>com.google</groupId><artifactId>guava</artifactId></dependency>
  </dependencies>
</project>`

	libPom = `<project>
  <parent>
    <groupId>com.acme</groupId>
    <artifactId>acme-parent</artifactId>
    <version>7</version>
  </parent>
  <artifactId>lib</artifactId>
</project>`

	brokenPom = `<project><artifactId>broken</artifactId>`

	depsCSV = `Project Group ID;Project Artifact ID;Project Version;Dependency Group ID;Dependency Artifact ID;Dependency Version
g;p1;1;org.junit;junit;4.13
g;p2;1;com.google;guava;30
g;p3;1;org.junit;junit;4.12
g;p4;1;org.junit;junit;4.13
`
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// fixtureTree lays out two parsable projects, one with a git remote, and one
// malformed descriptor.
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write(t, filepath.Join(root, "app", "pom.xml"), appPom)
	write(t, filepath.Join(root, "app", ".git", "config"),
		"[remote \"origin\"]\n\turl = https://gitlab.example/TEAM/app.git\n")
	write(t, filepath.Join(root, "lib", "pom.xml"), libPom)
	write(t, filepath.Join(root, "zbroken", "pom.xml"), brokenPom)
	return root
}

// testConfig writes a config file pointing the origin base at gitlab.example.
func testConfig(t *testing.T) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Origin.BaseURL = "https://gitlab.example/"
	path := filepath.Join(t.TempDir(), "maven-mapper.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return runWithConfig(t, testConfig(t), args...)
}

func runWithConfig(t *testing.T, configPath string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := RootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append(args, "--config", configPath))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestDepsWritesOneRowPerEdge(t *testing.T) {
	root := fixtureTree(t)
	target := filepath.Join(t.TempDir(), "deps.csv")

	_, stderr, err := run(t, "deps", root, target)
	require.NoError(t, err)

	lines := readLines(t, target)
	require.Len(t, lines, 3)
	assert.Equal(t, "Project Group ID;Project Artifact ID;Project Version;Dependency Group ID;Dependency Artifact ID;Dependency Version", lines[0])
	assert.Equal(t, "com.acme;app;1.0;org.junit;junit;4.13", lines[1])
	assert.Equal(t, "com.acme;app;1.0;com.google;guava;", lines[2])

	assert.Contains(t, stderr, "[WARN] Skipping descriptor")
	assert.Contains(t, stderr, "zbroken")
}

func TestDepsExtended(t *testing.T) {
	root := fixtureTree(t)
	target := filepath.Join(t.TempDir(), "deps.csv")

	_, _, err := run(t, "deps", root, target, "--extended")
	require.NoError(t, err)

	lines := readLines(t, target)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], ";Parent Group ID;Parent Artifact ID;Parent Version;Java Version;Origin Code"))
	assert.Equal(t, "com.acme;app;1.0;org.junit;junit;4.13;com.acme;acme-parent;7;17;TEAM", lines[1])
}

func TestDepsOverwritesExistingFile(t *testing.T) {
	root := fixtureTree(t)
	target := filepath.Join(t.TempDir(), "deps.csv")
	write(t, target, "stale\nstale\nstale\nstale\nstale\n")

	_, _, err := run(t, "deps", root, target)
	require.NoError(t, err)
	assert.Len(t, readLines(t, target), 3)
}

func TestDepsMissingDirectory(t *testing.T) {
	_, _, err := run(t, "deps", filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}

func TestProjectsToStdout(t *testing.T) {
	root := fixtureTree(t)

	stdout, _, err := run(t, "projects", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		filepath.Join(root, "app", "pom.xml")+";acme-parent;com.acme;7;com.acme;app;1.0;17;https://gitlab.example/TEAM/app.git;TEAM",
		lines[0])
	assert.Equal(t,
		filepath.Join(root, "lib", "pom.xml")+";acme-parent;com.acme;7;com.acme;lib;7;;;",
		lines[1])
	assert.Equal(t, "Total projects: 2", lines[2])
}

func TestProjectsToFile(t *testing.T) {
	root := fixtureTree(t)
	target := filepath.Join(t.TempDir(), "projects.csv")

	stdout, _, err := run(t, "projects", root, target)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	lines := readLines(t, target)
	require.Len(t, lines, 3)
	assert.Equal(t, "PATH;PARENT;PARENT GROUP;VERSION;GROUP ID;ARTIFACT ID;PROJECT VERSION;JAVA VERSION;GIT URL;ORIGIN", lines[0])
}

func TestCountFromCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "deps.csv")
	write(t, csvPath, depsCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "without version",
			args: []string{"count", csvPath},
			want: "Dependency Count Results (ordered by occurrences):\n" +
				"org.junit:junit -> 3 occurrences\n" +
				"com.google:guava -> 1 occurrences\n" +
				"Total dependencies: 4\n",
		},
		{
			name: "with version",
			args: []string{"count", csvPath, "v"},
			want: "Dependency Count Results (ordered by occurrences):\n" +
				"org.junit:junit:4.13 -> 2 occurrences\n" +
				"com.google:guava:30 -> 1 occurrences\n" +
				"org.junit:junit:4.12 -> 1 occurrences\n" +
				"Total dependencies: 4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestCountFromDirectory(t *testing.T) {
	root := fixtureTree(t)

	stdout, _, err := run(t, "count", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "org.junit:junit -> 1 occurrences\n")
	assert.Contains(t, stdout, "com.google:guava -> 1 occurrences\n")
	assert.Contains(t, stdout, "Total dependencies: 2\n")
}

func TestCountMissingFile(t *testing.T) {
	_, _, err := run(t, "count", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestTallyDefaultColumns(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "projects.csv")
	write(t, csvPath, "PATH;PARENT;PARENT GROUP;VERSION\n"+
		"a;base;com.acme;1\n"+
		"b;base;com.acme;2\n"+
		"c;base;com.acme;1\n"+
		"d;;;\n")

	stdout, _, err := run(t, "tally", csvPath)
	require.NoError(t, err)
	assert.Equal(t,
		"PARENT: base, PARENT GROUP: com.acme, VERSION: 1 - Count: 2\n"+
			"PARENT: base, PARENT GROUP: com.acme, VERSION: 2 - Count: 1\n"+
			"PARENT: , PARENT GROUP: , VERSION:  - Count: 1\n"+
			"Total count: 4\n",
		stdout)
}

func TestTallyCustomColumnsAndSeparator(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "projects.csv")
	write(t, csvPath, "PARENT,JAVA VERSION\nbase,17\nbase,11\nother,17\n")

	stdout, _, err := run(t, "tally", csvPath, "--columns", "JAVA VERSION", "--separator", ",")
	require.NoError(t, err)
	assert.Equal(t, "JAVA VERSION: 17 - Count: 2\nJAVA VERSION: 11 - Count: 1\nTotal count: 3\n", stdout)
}

func TestTallyFromDirectory(t *testing.T) {
	root := fixtureTree(t)

	stdout, _, err := run(t, "tally", root)
	require.NoError(t, err)
	assert.Equal(t, "PARENT: acme-parent, PARENT GROUP: com.acme, VERSION: 7 - Count: 2\nTotal count: 2\n", stdout)
}

func TestTallyFromDirectoryUnknownColumn(t *testing.T) {
	root := fixtureTree(t)

	_, _, err := run(t, "tally", root, "--columns", "NOPE")
	assert.Error(t, err)
}

func TestLDMCollectsWithManifest(t *testing.T) {
	src := t.TempDir()
	write(t, filepath.Join(src, "svc", ".git", "config"), "[remote \"origin\"]\n\turl = https://gitlab.example/AAA/svc.git\n")
	write(t, filepath.Join(src, "svc", "model", "orders.ldm"), "orders")
	dest := t.TempDir()
	manifest := filepath.Join(t.TempDir(), "manifest.csv")

	_, _, err := run(t, "ldm", src, dest, "--manifest", manifest)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "AAA", "orders.ldm"))
	require.NoError(t, err)
	assert.Equal(t, "orders", string(data))

	lines := readLines(t, manifest)
	require.Len(t, lines, 2)
	assert.Equal(t, "ORIGIN;REPOSITORY;SOURCE;DESTINATION", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "AAA;"))
}

func TestWrongArgumentCountPrintsUsage(t *testing.T) {
	tests := [][]string{
		{"deps"},
		{"deps", "a", "b", "c"},
		{"count"},
		{"tally", "a", "b"},
		{"ldm", "only-source"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			stdout, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, "Usage:")
		})
	}
}

func TestWrongArgumentCountIgnoresBrokenConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "maven-mapper.yaml")
	write(t, configPath, "csv:\n  separator: \"too long\"\n")

	stdout, _, err := runWithConfig(t, configPath, "deps")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")

	_, _, err = runWithConfig(t, configPath, "deps", t.TempDir())
	assert.Error(t, err, "a valid invocation still reads the config")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maven-mapper.yaml")

	_, _, err := run(t, "config", "init", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ";", cfg.CSV.Separator)
	assert.Equal(t, "maven_dependencies.csv", cfg.Report.DependenciesFile)
}

func TestConfigInitKeepsExistingFileWithoutConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maven-mapper.yaml")
	write(t, path, "log:\n  level: warn\n")

	_, stderr, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Overwrite?")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log:\n  level: warn\n", string(data))

	_, _, err = run(t, "config", "init", path, "--force")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "maven-mapper "))
}
