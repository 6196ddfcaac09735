// Package uscode turns index and title pages of a legal-code website into
// structured Title and Chapter records. Extraction is best-effort: malformed
// markup yields fewer records, never an error.
package uscode
