// Package platform provides OS glue: default directories, file copies and
// size computation, and revealing files in the system file manager.
package platform
