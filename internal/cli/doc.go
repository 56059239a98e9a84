// Package cli parses the scopegraph command line, merges it with the
// optional configuration file and environment, and produces an app.Config.
package cli
