// Package server wires the Fiber application: request-ID middleware, the
// terminal delivery helpers, and the catch-all file pipeline that turns a
// resolver outcome into exactly one HTTP response.
package server
