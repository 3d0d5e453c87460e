// Package dataset loads question-pair datasets from TSV or XLSX sources and
// normalizes them into (text, label) records.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/4zj9/pairbench/internal/models"
)

// ErrEmptyDataset is returned when a source was readable but zero valid
// records remain after filtering. This is surfaced (not auto-recovered) so a
// misconfigured filter is diagnosable instead of silently benchmarking the
// fallback sample.
var ErrEmptyDataset = errors.New("dataset: no valid records after filtering")

// LoadResult is a loaded dataset together with its provenance. Callers that
// need strict-failure semantics branch on Provenance instead of an error:
// source or parse failures are swallowed and replaced by the fallback sample.
type LoadResult struct {
	Dataset    *models.Dataset
	Provenance models.Provenance
	// Dropped counts rows discarded for missing or invalid labels.
	Dropped int
}

// Loader reads question-pair sources.
type Loader struct {
	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a logger for load warnings and label-distribution events.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	ld := &Loader{}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load reads the source at path and returns the normalized dataset.
//
// Training mode (evalSet=false) requires an is_duplicate column; rows whose
// label does not parse to exactly 0.0 or 1.0 are dropped. Evaluation mode
// (evalSet=true) assigns every record the placeholder label 0.0; metrics
// computed against placeholder labels are structural only.
//
// Unreadable or unparseable sources do not fail: the built-in sample dataset
// is substituted and the result is tagged ProvenanceFallback. A readable
// source that filters down to zero records returns ErrEmptyDataset.
func (ld *Loader) Load(path string, evalSet bool) (*LoadResult, error) {
	rows, err := readRows(path)
	if err != nil {
		ld.warn("dataset source unavailable, using fallback sample",
			zap.String("path", path), zap.Error(err))
		return fallbackResult(), nil
	}

	ds, dropped, err := normalize(rows, evalSet)
	if err != nil {
		ld.warn("dataset parse failed, using fallback sample",
			zap.String("path", path), zap.Error(err))
		return fallbackResult(), nil
	}
	if ds.Count() == 0 {
		return nil, ErrEmptyDataset
	}
	if dropped > 0 {
		ld.warn("dropped rows with missing or invalid labels",
			zap.String("path", path),
			zap.Int("before", ds.Count()+dropped),
			zap.Int("after", ds.Count()))
	}
	return &LoadResult{Dataset: ds, Provenance: models.ProvenanceReal, Dropped: dropped}, nil
}

func (ld *Loader) warn(msg string, fields ...zap.Field) {
	if ld.logger != nil {
		ld.logger.Warn(msg, fields...)
	}
}

// readRows reads the raw table (header row first) from a TSV or XLSX file.
func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readExcelRows(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// readExcelRows reads the first sheet of an XLSX workbook.
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// normalize turns raw rows into records: text = question1 [SEP] question2,
// label parsed from is_duplicate (training) or fixed at 0.0 (evaluation).
func normalize(rows [][]string, evalSet bool) (*models.Dataset, int, error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("source has no header row")
	}
	header := rows[0]
	q1Col := columnIndex(header, "question1")
	q2Col := columnIndex(header, "question2")
	labelCol := columnIndex(header, "is_duplicate")
	if q1Col < 0 || q2Col < 0 {
		return nil, 0, fmt.Errorf("missing question1/question2 columns in header %v", header)
	}
	if !evalSet && labelCol < 0 {
		return nil, 0, fmt.Errorf("training source has no is_duplicate column")
	}

	ds := &models.Dataset{}
	dropped := 0
	for _, row := range rows[1:] {
		if q1Col >= len(row) || q2Col >= len(row) {
			dropped++
			continue
		}
		q1, q2 := row[q1Col], row[q2Col]
		if strings.TrimSpace(q1) == "" && strings.TrimSpace(q2) == "" {
			dropped++
			continue
		}

		label := 0.0
		if !evalSet {
			if labelCol >= len(row) {
				dropped++
				continue
			}
			parsed, err := strconv.ParseFloat(strings.TrimSpace(row[labelCol]), 64)
			if err != nil || (parsed != 0.0 && parsed != 1.0) {
				dropped++
				continue
			}
			label = parsed
		}
		ds.Records = append(ds.Records, models.Record{
			Text:  q1 + models.Separator + q2,
			Label: label,
		})
	}
	return ds, dropped, nil
}

// columnIndex returns the index of name in the header, or -1.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
