package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyspace/internal/blob"
	"studyspace/pkg/domain"
)

const reportPrefix = "reports/"

// ReportDocument is the JSON body written by ExportReport.
type ReportDocument struct {
	GeneratedAt     time.Time               `json:"generatedAt"`
	Locations       []LocationAnalysis      `json:"locations"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Ratings         []LocationRating        `json:"ratings"`
}

// Report describes an exported report object.
type Report struct {
	Key         string    `json:"key"`
	Size        int64     `json:"sizeBytes"`
	URL         string    `json:"url,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// ExportReport writes the current analyses, admin recommendations and rating
// summaries to reports/<timestamp>.json in the blob store. URL is set when the
// backend can presign.
func (s *Service) ExportReport(ctx context.Context) (Report, error) {
	var out Report
	err := s.run(ctx, "export_report", func(ctx context.Context) error {
		if s.blobs == nil {
			return ErrReportsDisabled
		}
		doc, err := s.buildReport(ctx)
		if err != nil {
			return err
		}
		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		key := reportPrefix + doc.GeneratedAt.Format("20060102T150405.000000000Z") + ".json"
		info, err := s.blobs.Put(ctx, key, bytes.NewReader(body), blob.PutOptions{
			ContentType: "application/json",
			Metadata:    map[string]string{"locations": fmt.Sprint(len(doc.Locations))},
		})
		if err != nil {
			return fmt.Errorf("store report: %w", err)
		}
		url, err := s.blobs.PresignURL(ctx, key, blob.SignedURLOptions{Expiry: time.Hour})
		if err != nil && !errors.Is(err, blob.ErrUnsupported) {
			return fmt.Errorf("presign report: %w", err)
		}
		out = Report{Key: key, Size: info.Size, URL: url, GeneratedAt: doc.GeneratedAt}
		s.logger.Info("report exported", "key", key, "driver", s.blobs.Driver(), "size_bytes", info.Size)
		return nil
	})
	return out, err
}

// Reports lists previously exported reports, oldest first.
func (s *Service) Reports(ctx context.Context) ([]blob.Info, error) {
	var out []blob.Info
	err := s.run(ctx, "list_reports", func(ctx context.Context) error {
		if s.blobs == nil {
			return ErrReportsDisabled
		}
		var err error
		out, err = s.blobs.List(ctx, reportPrefix)
		return err
	})
	return out, err
}

func (s *Service) buildReport(ctx context.Context) (ReportDocument, error) {
	analyses, err := s.analyzeAll(ctx)
	if err != nil {
		return ReportDocument{}, err
	}
	recs, err := s.AdminRecommendations(ctx)
	if err != nil {
		return ReportDocument{}, err
	}
	entries, err := s.feedback.All(ctx)
	if err != nil {
		return ReportDocument{}, err
	}
	return ReportDocument{
		GeneratedAt:     s.now().UTC(),
		Locations:       analyses,
		Recommendations: recs,
		Ratings:         s.ratings(entries),
	}, nil
}
