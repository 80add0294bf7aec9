package handler

// Public paths. Existing clients call these exact paths, so they carry no version prefix.
const (
	RootPath     = "/"
	DocumentPath = "/pdf"
)
