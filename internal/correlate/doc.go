// Package correlate matches outbound requests with their responses and
// routes inbound traffic to method handlers.
//
// The Correlator sits beside the streaming turn channel: any discrete
// request/response exchange with a tool server goes through it. It allocates
// correlation IDs from a monotonic counter plus a random suffix, tracks each
// outstanding request in a pending table, and classifies inbound messages by
// shape: an ID plus a method is a request, no ID is a notification.
package correlate
