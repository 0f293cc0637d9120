// Package types defines the entity types, configuration, and standard
// errors shared by the songidb storage backend, parser, and CLI.
package types
