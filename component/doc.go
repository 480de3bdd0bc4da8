// Package component defines the lifecycle interfaces shared by long-lived
// pieces of a dispatch program and a Registry that starts them in order,
// stops them in reverse and collects their health.
//
// The httpclient package exposes its Dispatcher as a Component.
package component
