package redact

import (
	"path/filepath"
	"strings"
)

// DefaultExtension is the suffix of files whose contents are redacted.
const DefaultExtension = ".ab1"

const segmentSep = "_"

// Redactor removes accession numbers from target file names.
type Redactor struct {
	matcher   *Matcher
	extension string
}

// NewRedactor returns a Redactor that appends extension to every name it
// produces. An empty extension selects DefaultExtension.
func NewRedactor(m *Matcher, extension string) *Redactor {
	if extension == "" {
		extension = DefaultExtension
	}
	return &Redactor{matcher: m, extension: extension}
}

// PopAccession removes the accession number from the base name of
// pathOrName and returns the new file name together with the removed token.
//
// Only the first matching segment is removed; later matching segments stay in
// the name. When nothing matches, token is empty and the name is returned with
// its extension normalized.
func (r *Redactor) PopAccession(pathOrName string) (newName, token string) {
	base := filepath.Base(pathOrName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base, ""
	}

	segments := strings.Split(stem, segmentSep)
	for i, seg := range segments {
		if !r.matcher.Matches(seg) {
			continue
		}
		rest := append(segments[:i:i], segments[i+1:]...)
		return strings.Join(rest, segmentSep) + r.extension, seg
	}
	return stem + r.extension, ""
}

// IsTarget reports whether name carries the target extension. The
// comparison is case-sensitive.
func (r *Redactor) IsTarget(name string) bool {
	return strings.HasSuffix(name, r.extension)
}
