// Package frames loads template context frames from external sources:
// JSON, YAML and .env data files, Bazel workspace status (stamp) files,
// NAME=VALUE variables and Kubernetes ConfigMaps. Every loader returns a
// map[string]any ready to be pushed onto a mustache.Context.
package frames
