// Package terminology loads and queries the ICD-10 and CPT reference
// codebooks used to resolve predicted codes to billing descriptions.
package terminology

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/logger"
)

// UnknownDescription is returned by Describe when a code is absent from
// every loaded codebook.
const UnknownDescription = "Unknown code"

// Codebook is a read-only mapping from code to description, keyed by exact
// code match. Immutable after load; safe for concurrent readers.
type Codebook struct {
	system string
	codes  map[string]string
}

// LoadCodebook reads a codebook from a CSV file with a header row and at
// least two columns (code, description). Load failures are logged and
// degrade to an empty codebook so the prediction path can fall back to
// rule-default descriptions.
func LoadCodebook(system, path string) *Codebook {
	cb := &Codebook{system: system, codes: make(map[string]string)}
	if path == "" {
		return cb
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		logger.Log.WithError(err).WithField("path", path).Warnf("Failed to open %s codebook", system)
		return cb
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		logger.Log.WithError(err).WithField("path", path).Warnf("Failed to parse %s codebook", system)
		return cb
	}

	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) >= 2 {
			code := strings.TrimSpace(row[0])
			desc := strings.TrimSpace(row[1])
			if code != "" {
				cb.codes[code] = desc
			}
		}
	}

	logger.Log.WithFields(map[string]interface{}{
		"system": system,
		"path":   path,
		"count":  len(cb.codes),
	}).Info("Loaded codebook")

	return cb
}

// NewCodebook builds a codebook from an in-memory mapping. Used by tests and
// by callers that source codes from somewhere other than CSV.
func NewCodebook(system string, codes map[string]string) *Codebook {
	cloned := make(map[string]string, len(codes))
	for k, v := range codes {
		cloned[k] = v
	}
	return &Codebook{system: system, codes: cloned}
}

// System reports which coding system this book holds (e.g. "ICD-10").
func (c *Codebook) System() string {
	if c == nil {
		return ""
	}
	return c.system
}

// Len reports the number of loaded codes.
func (c *Codebook) Len() int {
	if c == nil {
		return 0
	}
	return len(c.codes)
}

// Lookup returns the description for a code and whether it is present.
func (c *Codebook) Lookup(code string) (string, bool) {
	if c == nil || c.codes == nil {
		return "", false
	}
	desc, ok := c.codes[code]
	return desc, ok
}

// DescribeOr returns the codebook description for code, or fallback when the
// code is not loaded.
func (c *Codebook) DescribeOr(code, fallback string) string {
	if desc, ok := c.Lookup(code); ok {
		return desc
	}
	return fallback
}

// Describe resolves a code against the given books in order, returning the
// first match. Absent from all books yields UnknownDescription.
func Describe(code string, books ...*Codebook) string {
	for _, b := range books {
		if desc, ok := b.Lookup(code); ok {
			return desc
		}
	}
	return UnknownDescription
}
