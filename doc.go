// Package main provides the entry point for the yacook recipe sharing application.
// It runs a server-rendered web application on the Fiber framework where users
// publish recipes, browse them by group, comment, follow authors and search.
// Data is persisted with gorm; uploaded dish photos go to a pluggable media store.
package main
