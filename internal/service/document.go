package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/survey-pdf-service/internal/model"
	"github.com/maxviazov/survey-pdf-service/internal/pathsafe"
	"github.com/maxviazov/survey-pdf-service/internal/repository"
)

// DocumentConfig is the read-only state a documentService is built with.
type DocumentConfig struct {
	Root          string
	APIKey        string
	AllowedRegion string
}

type documentService struct {
	store repository.RecordStore
	cfg   DocumentConfig
	log   zerolog.Logger
}

// NewDocumentService wires the fetch pipeline. An empty APIKey makes every request fail
// with ErrUnauthorized; that state is logged once here.
func NewDocumentService(store repository.RecordStore, cfg DocumentConfig, logger zerolog.Logger) DocumentService {
	l := logger.With().Str("module", "service").Str("component", "document").Logger()
	if cfg.APIKey == "" {
		l.Warn().Msg("api key is not configured; all document requests will be rejected")
	}
	return &documentService{store: store, cfg: cfg, log: l}
}

// Fetch runs the checks in a fixed order and stops at the first failure:
// api key, required params, region, record lookup, path containment, file presence.
func (s *documentService) Fetch(ctx context.Context, req DocumentRequest) (model.Document, error) {
	if !s.authorized(req.APIKey) {
		s.log.Debug().Str("guid", req.GUID).Str("reason", "api_key").Msg("document request rejected")
		return model.Document{}, ErrUnauthorized
	}

	var ferrs []FieldError
	if req.MissingState {
		ferrs = append(ferrs, FieldError{Field: "state", Message: "is required"})
	}
	if req.MissingGUID {
		ferrs = append(ferrs, FieldError{Field: "guid", Message: "is required"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Document{}, err
	}

	if !strings.EqualFold(req.State, s.cfg.AllowedRegion) {
		s.log.Debug().Str("guid", req.GUID).Str("state", req.State).Str("reason", "region").Msg("document request rejected")
		return model.Document{}, ErrForbiddenRegion
	}

	rec, err := s.store.Lookup(ctx, req.GUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Debug().Str("guid", req.GUID).Str("reason", "guid").Msg("document request rejected")
			return model.Document{}, ErrRecordNotFound
		}
		return model.Document{}, fmt.Errorf("lookup %s: %w", req.GUID, err)
	}

	fileName := rec.FileName()
	path, err := pathsafe.SafePath(s.cfg.Root, rec.District, rec.Mandal, rec.Village, fileName)
	if err != nil {
		// A record pointing outside the root is a data problem worth a louder log line.
		s.log.Warn().Err(err).Str("guid", req.GUID).Str("reason", "traversal").Msg("record resolves outside document root")
		return model.Document{}, err
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		s.log.Debug().Str("guid", req.GUID).Str("path", path).Str("reason", "file").Msg("document request rejected")
		return model.Document{}, ErrFileNotFound
	}

	return model.Document{
		Path:        path,
		FileName:    fileName,
		ContentType: model.PDFContentType,
		Size:        info.Size(),
	}, nil
}

// authorized compares in constant time; the byte-for-byte match semantics are unchanged.
func (s *documentService) authorized(key string) bool {
	if s.cfg.APIKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) == 1
}
