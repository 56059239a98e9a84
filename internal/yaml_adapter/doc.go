// Package yaml_adapter is the YAML implementation of config.Loader. A file
// holds one document with optional top-level lists `scopes`, `objects`,
// `spreadables` and `external`, mirroring the HCL blocks of hcl_adapter.
package yaml_adapter
