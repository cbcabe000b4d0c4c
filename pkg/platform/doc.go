// Package platform is an in-process stand-in for the AgentCore control
// plane. Every call waits an artificial, context-aware delay and then
// returns canned or registry-backed data wrapped in a Response.
//
// Nothing here talks to a network. Resources created through the client
// live in memory for the lifetime of the process.
package platform
