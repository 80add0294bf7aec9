// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes with only the tiny bits of behavior they own.
package model

import "github.com/maxviazov/survey-pdf-service/internal/pathsafe"

// PDFContentType is the media type every served document is sent with.
const PDFContentType = "application/pdf"

// Record is the four-part location descriptor associated with one GUID.
// Survey is kept as a string because source cells may be numeric or alphanumeric ("12/3", "45A").
type Record struct {
	GUID     string `json:"guid"`
	District string `json:"district"`
	Mandal   string `json:"mandal"`
	Village  string `json:"village"`
	Survey   string `json:"survey"`
}

// FileName is the on-disk and client-facing name of the record's PDF.
func (r Record) FileName() string {
	return pathsafe.SanitizeSurvey(r.Survey) + ".pdf"
}

// Document is a resolved file that exists on disk and is ready to be streamed.
type Document struct {
	Path        string `json:"-"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
