// Package redact removes accession numbers from ABIF (.ab1) file names and
// file contents.
//
// A [Matcher] decides whether a file-name segment is an accession number. The
// pattern is anchored at the start of the segment only, so a segment such as
// "12-345-678910-extra" matches on its prefix.
//
// [Redactor.PopAccession] splits a base name on underscores and removes the
// first segment that matches. [Anonymize] then overwrites the same token inside
// the payload with an equal number of underscores, so the payload length never
// changes.
//
// Known limitation: only the first line-chunk of the payload that contains the
// token is rewritten. ABIF stores the identifier as a Pascal-style string whose
// leading length byte is left intact; only the literal identifier bytes are
// blanked.
package redact
