package models

import "io"

// UploadedDocument is one request's statement upload. FileName, ContentType
// and Size come from the upload headers; Open yields the bytes. It never
// outlives the request.
type UploadedDocument struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ExtractedText is the plain text pulled out of an uploaded PDF.
type ExtractedText struct {
	Text      string
	Pages     int
	CharCount int
}
