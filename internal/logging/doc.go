// Package logging provides leveled logging for the file-bag service.
//
// Levels are DEBUG, INFO, WARN and ERROR. The active level is read once
// from the LOG_LEVEL environment variable (DEBUG=true is accepted as a
// shortcut for debug level) and defaults to INFO.
package logging
