// Package origin derives organizational codes from git remote URLs.
//
// The code is the first path segment after a known base URL, so
// "https://gitlab.example/TEAM/repo.git" with base "https://gitlab.example/"
// yields "TEAM".
package origin

import (
	"strings"

	"github.com/raulmeloferreira/maven-mapper/pkg/field"
)

// Origin is the remote URL of a project directory and the code derived from it.
type Origin struct {
	URL  field.Value
	Code field.Value
}

// Code strips base from url and returns the text up to the next '/'.
// Unknown urls, urls outside base and an empty base all yield field.Unknown.
func Code(url field.Value, base string) field.Value {
	s, ok := url.Get()
	if !ok || base == "" {
		return field.Unknown
	}

	rest, found := strings.CutPrefix(s, base)
	if !found {
		return field.Unknown
	}

	segment, _, _ := strings.Cut(rest, "/")
	return field.Known(segment)
}
