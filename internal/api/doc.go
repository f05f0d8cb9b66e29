// Package api exposes the HTTP surface of taskdesk. Handlers decode and
// validate requests, call the application services with the authenticated
// caller, and translate service errors into HTTP status codes and safe
// response bodies.
package api
