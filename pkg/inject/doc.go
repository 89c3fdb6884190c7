/*
Package inject completes markup fragments with default namespace declarations.

It is a syntactic heuristic, not a parser: it only looks at the first tag
boundary of the fragment and never inspects attribute values or nesting.
Everything here is pure and deterministic.
*/
package inject
