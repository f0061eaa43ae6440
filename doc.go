// Package eye provides a Go client for the eye process supervisor, driven
// through the eye command-line interface.
//
// The core functionality centers around the Client type, which issues eye
// subcommands and interprets their output:
//
//	client := eye.New()
//
//	// Load a config and start an application
//	err := client.Start(ctx, eye.Params{Config: "apps.eye", Application: "web"})
//
//	// Query a process; group defaults to "__default__"
//	state, err := client.Status(ctx, eye.Params{Application: "web", Process: "puma"})
//
// # Failure Model
//
// Operations that change eye's state (Load, Start, Stop, Destroy) fail with an
// *OpError carrying the issued command and its raw output. Use errors.Is with
// ErrConfigLoadFailed, ErrCommandFailed or ErrMissingArgument to classify them.
//
// Read-only operations degrade instead: Status returns "unknown" and ListApps
// an empty list when eye is not running or prints something unexpected.
// Info is available for callers that need the decode error.
//
// # Status Resolution
//
// The resolver is usable without a Client. Resolve and ListApplications take
// the text printed by `eye i -j`:
//
//	state := eye.Resolve(output, "web", "", "puma")
//
// # Runners
//
// The Client never spawns processes itself. It hands each command line to a
// Runner; ExecRunner runs it through /bin/sh and MockRunner returns canned
// output for tests.
package eye
