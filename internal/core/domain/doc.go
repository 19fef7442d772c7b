// Package domain defines the core domain models for respkv.
//
// It contains the stored Entry type and the structured errors that the
// protocol layer turns into RESP error replies. The package has no
// dependencies on storage or transport.
package domain
