// Package middleware provides HTTP middleware for the file-bag service:
// request logging and Prometheus metrics collection.
package middleware
