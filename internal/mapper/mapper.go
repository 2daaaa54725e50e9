// Package mapper converts between persisted entities and the payloads and
// responses exchanged over HTTP.
//
// Updates are partial merges: only the fields an update payload carries are
// copied onto the entity, ids, creation dates and loaded associations stay
// as they were.
package mapper
