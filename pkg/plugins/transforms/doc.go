// Package transforms provides the built-in content transform plugins:
// emoticon substitution, keyword auto-linking, title slugging, and a
// single-entry footer. Each registers its factory on import, so linking
// this package is enough to make the impls available to descriptors.
package transforms
