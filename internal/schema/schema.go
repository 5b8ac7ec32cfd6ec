// Package schema provides the principal schematics for all other packages. It
// defines the capability contract towards the operating system, wrapping the
// (Unix-based) syscalls the backing stores and the platform layer are built
// upon, and the metadata structure shared by all stores.
package schema
