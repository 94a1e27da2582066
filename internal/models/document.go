package models

import "fmt"

// PDFMediaType is the only document type the mission service ingests.
const PDFMediaType = "application/pdf"

// Document is a locally selected file staged for ingestion
type Document struct {
	Name      string
	Path      string
	Size      int64
	MediaType string
}

// DisplaySize formats the size in megabytes with two decimals
func (d Document) DisplaySize() string {
	return fmt.Sprintf("%.2f MB", float64(d.Size)/1024/1024)
}
