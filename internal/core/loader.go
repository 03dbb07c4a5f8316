package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/JonMunkholm/orders/internal/logging"
)

// MaxFileSize is the maximum accepted input size (100MB). The whole file is
// materialized before anything touches the store.
var MaxFileSize int64 = 100 * 1024 * 1024

// utf8BOM is stripped from the start of files saved by Windows tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader replaces the orders table with the contents of a CSV file.
type Loader struct {
	db TxBeginner
}

// NewLoader creates a Loader writing through db.
func NewLoader(db TxBeginner) *Loader {
	return &Loader{db: db}
}

// Load parses path and, if every row coerces, replaces the orders table in a
// single transaction. Nothing is written when any row is malformed.
func (l *Loader) Load(ctx context.Context, path string) (*LoadResult, error) {
	startTime := time.Now()
	logger := logging.WithFields(ctx, "source", path)

	lines, err := ReadOrdersFile(path)
	if err != nil {
		return nil, err
	}
	logger.Info("orders parsed", "rows", len(lines))

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := EnsureSchema(ctx, tx); err != nil {
		return nil, err
	}

	inserted, err := replaceOrders(ctx, tx, lines)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	result := &LoadResult{
		Source:   path,
		Inserted: inserted,
		Duration: time.Since(startTime),
	}

	verification, err := VerifyOrders(ctx, l.db)
	if err != nil {
		// The load itself committed; the summary is informational.
		logger.Warn("verification summary unavailable", "error", err)
		return result, nil
	}
	result.Verification = verification

	if verification.Rows == 0 {
		logger.Warn("orders table is empty", "duration", result.Duration)
		return result, nil
	}

	logger.Info("orders loaded",
		"rows", verification.Rows,
		"from", verification.MinDate.Format(time.DateOnly),
		"to", verification.MaxDate.Format(time.DateOnly),
		"duration", result.Duration,
	)
	for _, cc := range verification.Categories {
		logger.Info("category loaded", "category", cc.Category, "orders", cc.Orders)
	}

	return result, nil
}

// ReadOrdersFile reads and coerces every row of the file at path.
// Returns *MissingSourceError when path does not exist.
func ReadOrdersFile(path string) ([]OrderLine, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return ReadOrders(bytes.NewReader(data))
}

// readSource reads the input file, strips a UTF-8 BOM and replaces invalid
// UTF-8 sequences.
func readSource(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingSourceError{Path: path}
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return nil, &MissingSourceError{Path: path}
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes exceeds %dMB limit", info.Size(), MaxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.ToValidUTF8(data, []byte("\uFFFD")), nil
}

// ReadOrders parses a CSV stream into order lines. It stops at the first
// malformed row or duplicate order id.
func ReadOrders(r io.Reader) ([]OrderLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedRowError{Line: 1, Err: errors.New("empty file: header row missing")}
		}
		return nil, csvError(err)
	}

	idx, err := ValidateHeaders(header)
	if err != nil {
		return nil, &MalformedRowError{Line: 1, Err: err}
	}

	var lines []OrderLine
	seen := make(map[string]int)

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		lineNum, _ := cr.FieldPos(0)

		if isEmptyRow(row) {
			continue
		}

		ol, err := BuildOrderLine(row, idx, lineNum)
		if err != nil {
			return nil, err
		}

		if first, dup := seen[ol.OrderID]; dup {
			return nil, &MalformedRowError{
				Line:  lineNum,
				Field: ColOrderID,
				Value: ol.OrderID,
				Err:   fmt.Errorf("duplicate order id, first seen on line %d", first),
			}
		}
		seen[ol.OrderID] = lineNum

		lines = append(lines, ol)
	}

	return lines, nil
}

// csvError converts a reader error into a MalformedRowError when it carries
// a line number.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedRowError{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("invalid csv: %w", err)
}
