package application

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

const evidenceURLExpiry = 15 * time.Minute

type EvidenceUpload struct {
	IncidentID  *string
	Name        string
	Type        string
	Description *string
	FileName    string
	ContentType string
	Content     io.Reader
}

// UploadEvidence records the evidence row, stores the file under
// evidence/<evidenceId>/<fileName> and points fileUrl at it.
func (s *CaseService) UploadEvidence(ctx context.Context, in EvidenceUpload) (domain.Evidence, error) {
	if s.blobs == nil {
		return domain.Evidence{}, fmt.Errorf("%w: evidence storage is not configured", domain.ErrInvalidInput)
	}
	fileName := path.Base(strings.TrimSpace(in.FileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return domain.Evidence{}, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if in.Content == nil {
		return domain.Evidence{}, fmt.Errorf("%w: file content is required", domain.ErrInvalidInput)
	}

	ev, err := s.CreateEvidence(ctx, domain.Evidence{
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		IncidentID:  in.IncidentID,
	})
	if err != nil {
		return domain.Evidence{}, err
	}

	info, err := s.blobs.Put(ctx, EvidenceKey(ev.ID, fileName), in.Content, in.ContentType)
	if err != nil {
		// the row is useless without its file
		if _, derr := s.store.Delete(ctx, domain.KindEvidence, ev.ID); derr != nil {
			return domain.Evidence{}, fmt.Errorf("store evidence file: %w (cleanup: %v)", err, derr)
		}
		return domain.Evidence{}, fmt.Errorf("store evidence file: %w", err)
	}
	return s.store.SetEvidenceFile(ctx, ev.ID, s.blobs.URL(info.Key))
}

// EvidenceDownloadURL presigns a short-lived GET for an uploaded file.
func (s *CaseService) EvidenceDownloadURL(ctx context.Context, id string) (string, error) {
	if s.blobs == nil {
		return "", fmt.Errorf("%w: evidence storage is not configured", domain.ErrInvalidInput)
	}
	e, err := s.store.Find(ctx, domain.KindEvidence, id)
	if err != nil {
		return "", err
	}
	ev := e.(domain.Evidence)
	if ev.FileURL == nil || *ev.FileURL == "" {
		return "", fmt.Errorf("%w: evidence %q has no file", domain.ErrInvalidInput, id)
	}
	i := strings.Index(*ev.FileURL, EvidenceKey(ev.ID, ""))
	if i < 0 {
		return "", fmt.Errorf("%w: evidence %q was not uploaded here", domain.ErrInvalidInput, id)
	}
	return s.blobs.PresignURL(ctx, (*ev.FileURL)[i:], evidenceURLExpiry)
}

func EvidenceKey(evidenceID, fileName string) string {
	return "evidence/" + evidenceID + "/" + fileName
}
