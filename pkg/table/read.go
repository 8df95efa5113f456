package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = ".xlsx"
	FormatCSV  = ".csv"
)

// ErrUnsupportedFormat is returned for files that are neither XLSX nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")

// Read loads the file at path. Sheet selects the XLSX worksheet, empty for
// the first one; it is ignored for CSV.
func Read(path, sheet string) (*Table, error) {
	if path == "" {
		return nil, errors.New("file path required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening file: %s", path)
	}
	defer f.Close()

	return ReadFrom(f, path, sheet)
}

// ReadFrom loads a table from r, picking the format from the extension of name.
func ReadFrom(r io.Reader, name, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case FormatXLSX:
		return ReadXLSX(r, sheet)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "file: %s", name)
	}
}

// ReadXLSX reads one worksheet. Cell values are raw, so dates come back as
// Excel serial numbers rather than in the display format of the workbook.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "error opening workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	log.Debug().Str("sheet", sheet).Msg("reading worksheet")

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "error reading sheet: %s", sheet)
	}

	return newTable(rows), nil
}

// ReadCSV reads comma separated values with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "error reading csv")
	}

	return newTable(records), nil
}
