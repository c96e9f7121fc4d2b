// Package pom extracts Maven project metadata from pom.xml descriptors.
//
// # Overview
//
// A descriptor is reduced to a Project: its coordinates, its optional parent
// reference and the ordered list of declared dependencies. Lookups ignore XML
// namespaces and every missing field resolves to field.Unknown rather than an
// error. Only documents that are not well-formed, or whose root element is
// not <project>, fail to parse.
//
// # Inheritance
//
// Fallbacks are resolved once, at parse time:
//   - an unknown groupId takes the parent's groupId
//   - an unknown version takes the parent's version
//   - artifactId is never inherited
//
// The Java version comes from properties/maven.compiler.source, then from the
// <source> of the maven-compiler-plugin configuration.
//
// # Usage
//
//	project, err := pom.ParseFile("service/pom.xml")
//	if errors.Is(err, pom.ErrMalformed) {
//	    // skip this descriptor
//	}
package pom
