package validate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadPairs reads test pairs from a CSV file with a header row naming a
// "form" and a "segmentation" column. Other columns are ignored, and
// rows with an empty segmentation are skipped rather than treated as
// expecting the empty string.
func LoadPairs(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open test file: %w", err)
	}
	defer f.Close()
	pairs, err := readPairs(f)
	if err != nil {
		return nil, fmt.Errorf("test file %s: %w", path, err)
	}
	return pairs, nil
}

func readPairs(r io.Reader) ([]Pair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	formIdx, segIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "form":
			formIdx = i
		case "segmentation":
			segIdx = i
		}
	}
	if formIdx < 0 || segIdx < 0 {
		return nil, errors.New("header must name form and segmentation columns")
	}

	var pairs []Pair
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return pairs, nil
		}
		if err != nil {
			return nil, err
		}
		if formIdx >= len(rec) || segIdx >= len(rec) {
			continue
		}
		if rec[segIdx] == "" {
			continue
		}
		pairs = append(pairs, Pair{Input: rec[formIdx], Expected: rec[segIdx]})
	}
}
