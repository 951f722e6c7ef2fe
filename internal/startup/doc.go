// Package startup handles configuration loading and startup/shutdown
// logging for the file-bag service.
//
// Configuration comes from environment variables, logged at startup so a
// container log always shows the effective settings. Directory validation
// happens here too, before anything else touches the filesystem.
package startup
