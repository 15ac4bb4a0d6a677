// Package pkguid provides helpers for generating unique identifiers.
//
// Request correlation IDs are produced through the StringID interface, backed
// either by UUIDv7 or by Snowflake numbers rendered as decimal strings.
package pkguid
