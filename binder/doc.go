// Package binder fills request structs for handler.Wrap: BindJSON reads
// JSON bodies and Path reads router parameters. Failures wrap the
// sentinels in errors.go, which the handler package maps to 400 or 415.
package binder
