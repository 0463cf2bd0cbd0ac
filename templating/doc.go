// Package templating expands mustache templates from files. The Engine type
// assembles a layered context from Bazel stamp info files, JSON/YAML/.env
// data files, Kubernetes ConfigMaps and NAME=VALUE variables, renders the
// template with the mustache package and writes the result to stdout or
// atomically to an output file.
//
// Cache keeps parsed templates keyed by a digest of their source so that
// repeated expansions of the same template skip parsing.
package templating
