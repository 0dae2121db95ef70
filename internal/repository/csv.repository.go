package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"marketmap/internal/domain"
	"os"
	"strings"
)

// NewCSVRepository reads a delimited file with a header row. comma is the
// field delimiter - the equity screener exports use ';', the crypto
// listings use ','.
func NewCSVRepository(path string, comma rune) RowSource {
	return csvRepositoryHandler{
		Path:  path,
		Comma: comma,
	}
}

type csvRepositoryHandler struct {
	Path  string
	Comma rune
}

func (h csvRepositoryHandler) Load(ctx context.Context) ([]domain.Row, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %s", domain.ErrDataSourceFailure, h.Path, err)
	}
	defer f.Close()

	return readRows(f, h.Comma, h.Path)
}

func readRows(r io.Reader, comma rune, name string) ([]domain.Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	// rows with missing trailing fields still flow through; the aggregation
	// stage decides what to do with incomplete rows
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header from %s: %s", domain.ErrDataSourceFailure, name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := []domain.Row{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %s", domain.ErrDataSourceFailure, name, err)
		}
		row := domain.Row{}
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
