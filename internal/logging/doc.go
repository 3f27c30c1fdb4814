// Package logging provides file-based logging with rotation for the
// pathfinder engine, written to ~/.bipass-pathfinder/logs/. The Store's
// cache-miss fallback warnings are logged at warn level, so they appear at
// both the info and the debug level; query-level milestones are not logged.
package logging
