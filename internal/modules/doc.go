// Package modules contains all self-contained application features.
//
// Each subdirectory is a module that should implement the `module.Module` interface.
// Modules are listed in `internal/app/modules.go` and booted by the server
// on the protected /app route group.
package modules
