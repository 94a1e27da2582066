package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Rorical/missionchat/internal/models"
)

// Inspect builds a staging candidate from a local file. The media type is
// detected from the file content, not its extension.
func Inspect(path string) (models.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return models.Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return models.Document{}, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(abs)
	if err != nil {
		return models.Document{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	return models.Document{
		Name:      info.Name(),
		Path:      abs,
		Size:      info.Size(),
		MediaType: mtype.String(),
	}, nil
}

// IsPDF reports whether the document carries the PDF media type.
func IsPDF(doc models.Document) bool {
	return mimetype.EqualsAny(doc.MediaType, models.PDFMediaType)
}
