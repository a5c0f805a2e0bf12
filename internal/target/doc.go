// Package target defines the targets a proxy forwards requests to and the
// rules for telling them apart.
//
// A [Target] carries a name and exactly one of four field groups:
//
//	// local process
//	target.Target{Name: "github", Stdio: &target.Stdio{Cmd: "npx", Args: []string{"-y", "server-github"}}}
//
//	// remote MCP server over Server-Sent Events
//	target.Target{Name: "web", SSE: &target.SSE{Host: "10.0.0.5", Port: 8080, Path: "/mcp"}}
//
//	// OpenAPI-described HTTP service
//	target.Target{Name: "petstore", OpenAPI: &target.OpenAPI{Host: "petstore", Port: 80}}
//
//	// agent-to-agent endpoint
//	target.Target{Name: "planner", A2A: &target.A2A{Host: "planner", Port: 9000, Path: "/a2a"}}
//
// The persisted form has no discriminant field. [Classify] derives the
// [Kind] from which group is populated, in priority order stdio, sse,
// openapi, a2a, and falls back to [DefaultKind] when none is. [Target.Spec]
// returns the classified variant as a typed value for exhaustive switches.
//
// A [Draft] is the unvalidated form state an operator edits before
// submitting; validate it with the validator subpackage, then call
// [Draft.Build].
package target
