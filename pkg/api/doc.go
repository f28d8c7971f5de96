// Package api defines the error values returned by the searxng_search tool.
//
// A tool call produces either a result list or exactly one ToolError.
// ToolError carries one of two JSON-RPC codes: CodeInvalidParams for
// caller constraint violations detected before any network activity, and
// CodeInternalError for transport and unexpected failures.
package api
