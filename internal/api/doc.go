// Package api holds the HTTP handlers of the food-sharing server. Handlers
// decode and validate requests, call the listing and request services, and
// translate service errors into status codes and safe messages. Routing and
// middleware assembly live in cmd/server.
package api
