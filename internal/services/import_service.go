package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/repository"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const (
	headerName    = "name"
	headerIsGroup = "isGroup (true/false)"
	headerClassID = "classId"
)

type ImportServiceInterface interface {
	// ImportClassTemplate adds one record per CSV row and returns how many
	// were added. Nothing is written if any row is invalid.
	ImportClassTemplate(ctx context.Context, r io.Reader) (int, error)
}

type ImportService struct {
	repo     repository.RecordRepositoryInterface
	activity ActivityLoggerInterface
	logger   providers.Logger
}

func (s *ImportService) ImportClassTemplate(ctx context.Context, r io.Reader) (int, error) {
	records, err := s.parse(r)
	if err != nil {
		return 0, err
	}

	docs := make([]models.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec.ToDocument())
	}
	if _, err := s.repo.Students().InsertMany(ctx, docs); err != nil {
		return 0, err
	}

	s.activity.Log(ctx, models.ActionUploadedTemplate, map[string]any{"newEntriesCount": len(docs)})
	s.logger.Infof(providers.TypeApp, "Class template imported, %d entries added", len(docs))

	return len(docs), nil
}

func (s *ImportService) parse(r io.Reader) ([]models.StudentRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := nextRow(reader)
	if errors.Is(err, io.EOF) {
		return nil, apperr.Validation("CSV file is empty.")
	}
	if err != nil {
		return nil, apperr.Validation("CSV could not be parsed: %s", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{headerName, headerIsGroup, headerClassID} {
		if _, ok := columns[required]; !ok {
			return nil, apperr.Validation(`CSV must contain "name", "isGroup (true/false)", and "classId" columns.`)
		}
	}

	field := func(row []string, name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		records []models.StudentRecord
		rowErrs *multierror.Error
	)
	// the header is row 1, blank lines are not counted
	for rowNum := 2; ; rowNum++ {
		row, err := nextRow(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.Validation("CSV could not be parsed: %s", err)
		}

		name, classID := field(row, headerName), field(row, headerClassID)
		if name == "" || classID == "" {
			rowErrs = multierror.Append(rowErrs, fmt.Errorf("Row %d: Missing name or classId.", rowNum))
			continue
		}
		isGroup := strings.EqualFold(field(row, headerIsGroup), "true")
		records = append(records, models.NewStudentRecord(name, classID, isGroup))
	}

	if rowErrs != nil {
		rowErrs.ErrorFormat = joinRowErrors
		s.logger.Warnf(providers.TypeApp, "Rejected class template: %s", rowErrs)
		return nil, apperr.Validation("%s", rowErrs.Error())
	}
	return records, nil
}

// nextRow skips lines that hold nothing but whitespace.
func nextRow(reader *csv.Reader) ([]string, error) {
	for {
		row, err := reader.Read()
		if err != nil {
			return nil, err
		}
		if len(row) > 1 || strings.TrimSpace(row[0]) != "" {
			return row, nil
		}
	}
}

func joinRowErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return "Errors in CSV: " + strings.Join(msgs, "; ")
}

func NewImportService(repo repository.RecordRepositoryInterface, activity ActivityLoggerInterface, logger providers.Logger) ImportServiceInterface {
	return &ImportService{
		repo:     repo,
		activity: activity,
		logger:   logger,
	}
}
