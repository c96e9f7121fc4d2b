package inventory

import (
	"errors"
	"io/fs"

	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
)

// Kind classifies a per-item failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindMalformedInput
	KindIOFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindMalformedInput:
		return "MalformedInput"
	case KindIOFailure:
		return "IOFailure"
	default:
		return "Unknown"
	}
}

// Classify maps an extraction or walk error onto a Kind.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, pom.ErrMalformed):
		return KindMalformedInput
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	default:
		return KindIOFailure
	}
}

// Failure records one path that could not be processed.
type Failure struct {
	Path string
	Kind Kind
	Err  error
}
