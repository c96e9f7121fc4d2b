package pom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/raulmeloferreira/maven-mapper/pkg/field"
)

// ErrMalformed is returned for documents that cannot be read as a descriptor.
var ErrMalformed = errors.New("malformed descriptor")

// decodeRoot parses the document and returns its single root element.
// xmlquery decodes declared charsets such as ISO-8859-1 itself.
func decodeRoot(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		if root != nil {
			return nil, fmt.Errorf("%w: multiple root elements", ErrMalformed)
		}
		root = n
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}

	return root, nil
}

// localPath builds a relative XPath over local names, so prefixes and
// xmlns declarations never affect lookups.
func localPath(steps ...string) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = "*[local-name()='" + s + "']"
	}
	return strings.Join(parts, "/")
}

// find returns the first element at path below n.
func find(n *xmlquery.Node, steps ...string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	return xmlquery.FindOne(n, localPath(steps...))
}

// all returns every element at path below n, in document order.
func all(n *xmlquery.Node, steps ...string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	return xmlquery.Find(n, localPath(steps...))
}

// value returns the text at path, or field.Unknown when any step is missing.
func value(n *xmlquery.Node, steps ...string) field.Value {
	el := find(n, steps...)
	if el == nil {
		return field.Unknown
	}
	return field.Known(el.InnerText())
}
