// Package pkgfilename turns client supplied file names into names that are
// safe to join onto a storage directory.
package pkgfilename
