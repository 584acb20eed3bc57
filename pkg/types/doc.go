// Package types defines the entity types, collaborator interfaces, and
// standard errors shared by the semval value layer and its backends.
//
// The value core in pkg/value depends only on the interfaces declared here
// (Store, Messages) and on the Property descriptor; concrete storage and
// message catalogs live under internal/.
package types
