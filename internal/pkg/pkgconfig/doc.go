// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Values come from a YAML file, an optional dotenv file and the process
// environment, in increasing order of precedence, with registered defaults
// underneath. Business code should depend on the Config interface so it stays
// easy to test and does not care where values come from.
package pkgconfig
