package scorecard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// ReadFile reads a College Scorecard CSV export.
func ReadFile(path string) ([]School, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scorecard: %w", err)
	}
	defer f.Close()

	schools, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read scorecard %q: %w", path, err)
	}

	return schools, nil
}

// Read parses a Latin-1 encoded scorecard CSV. The first row is the header.
func Read(r io.Reader) ([]School, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1

	columns, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}

		return nil, fmt.Errorf("read header: %w", err)
	}

	header := NewHeader(columns)

	var schools []School
	for {
		rec, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return schools, fmt.Errorf("read scorecard row %d: %w", len(schools)+2, err)
		}

		schools = append(schools, NewSchool(header, rec))
	}

	return schools, nil
}
