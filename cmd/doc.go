// Package cmd implements the command-line interface of hlbridge. It provides
// a command to run the placement backend and a client command to send a problem
// to a running backend.
//
// The package is organized into several subpackages:
//
//   - serve: Starting and configuring the placement backend
//   - solve: Upload, solve and download cycle against a running backend
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See hlbridge -help for a list of all commands.
package cmd
