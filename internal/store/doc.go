// Package store defines interfaces for data persistence operations.
// These interfaces abstract the document database from the services,
// allowing business rules to remain independent of the MongoDB driver.
// Each interface covers one collection; relationships between collections
// are by convention (matching email or id fields) and are not enforced.
package store
