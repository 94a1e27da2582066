package core

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Rorical/missionchat/internal/document"
	"github.com/Rorical/missionchat/internal/models"
)

const (
	msgInvalidPDF    = "Please select a valid PDF file"
	msgNothingStaged = "Please select a PDF file first"
	msgUploadBusy    = "An upload is already in progress"
	msgUploadFailed  = "Upload failed"
	msgIngested      = "PDF embedded into memory and vector store."
)

// UploadCoordinator owns the staged document and drives ingestion.
type UploadCoordinator struct {
	state    *ChatState
	mission  Mission
	notifier Notifier
	logger   *zap.Logger
}

func NewUploadCoordinator(state *ChatState, mission Mission, notifier Notifier, logger *zap.Logger) *UploadCoordinator {
	return &UploadCoordinator{state: state, mission: mission, notifier: notifier, logger: logger}
}

// Select stages doc if it is a PDF. Anything else is rejected and the
// currently staged document stays as it was.
func (u *UploadCoordinator) Select(doc models.Document) error {
	if !document.IsPDF(doc) {
		u.notifier.Push(models.Error, msgInvalidPDF)
		return &ValidationError{Field: "file", Reason: "media type " + doc.MediaType + " is not " + models.PDFMediaType}
	}

	u.state.Stage(doc)
	u.logger.Debug("document staged", zap.String("name", doc.Name), zap.Int64("size", doc.Size))
	return nil
}

// SelectPath inspects a local file and stages it.
func (u *UploadCoordinator) SelectPath(path string) error {
	doc, err := document.Inspect(path)
	if err != nil {
		u.notifier.Push(models.Error, "Cannot read "+filepath.Base(path))
		u.logger.Debug("inspect failed", zap.String("path", path), zap.Error(err))
		return &ValidationError{Field: "file", Reason: err.Error()}
	}
	return u.Select(doc)
}

// Submit sends the staged document to the mission service. It emits exactly
// one notification and never retries.
func (u *UploadCoordinator) Submit(ctx context.Context) error {
	doc, err := u.state.BeginIngest()
	if err != nil {
		if errors.Is(err, ErrBusy) {
			u.notifier.Push(models.Error, msgUploadBusy)
		} else {
			u.notifier.Push(models.Error, msgNothingStaged)
		}
		return err
	}

	err = u.ingest(ctx, doc)
	if err != nil {
		u.notifier.Push(models.Error, describe(err, msgUploadFailed))
		return err
	}
	u.notifier.Push(models.Success, msgIngested)
	return nil
}

func (u *UploadCoordinator) ingest(ctx context.Context, doc models.Document) error {
	defer u.state.FinishIngest()

	u.logger.Info("ingesting document", zap.String("name", doc.Name))
	if err := u.mission.Ingest(ctx, doc); err != nil {
		u.logger.Warn("ingest failed", zap.String("name", doc.Name), zap.Error(err))
		return err
	}
	return nil
}
