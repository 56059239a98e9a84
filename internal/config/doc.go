// Package config defines the contract shared by the declaration front-ends
// (Loader), the file configuration of the scopegraph CLI, and a parse cache
// for dependency notation used by every front-end.
//
// Concrete loaders live in separate packages (hcl_adapter, yaml_adapter).
package config
