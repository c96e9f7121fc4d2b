// Package report renders inventory results as delimited files and plain
// text lines.
//
// Delimited output always starts with a header row and is flushed after every
// row, so an interrupted run leaves only complete rows behind. CreateCSV
// truncates an existing file; reports are never appended to.
//
// Count reports print one line per table entry, in the table's order,
// followed by a total line:
//
//	PARENT: acme-parent, PARENT GROUP: com.acme, VERSION: 5 - Count: 12
//	junit:junit:4.12 -> 7 occurrences
package report
