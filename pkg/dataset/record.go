package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/stacked"
	"github.com/matzehuels/licensecharts/pkg/render/upset"
)

// Record is one decoded JSON object. Numbers are kept as json.Number so
// that large counts survive decoding unchanged.
type Record map[string]any

// Number returns the numeric value of field. Absent, null and non-numeric
// values yield NaN, which the stacked layout treats as a missing value.
func (r Record) Number(field string) float64 {
	switch v := r[field].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// String returns field formatted as text; absent and null values yield "".
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// FieldAccessors builds stacked accessors reading the named record fields.
func FieldAccessors(x, y, z string) stacked.Accessors[Record] {
	return stacked.Accessors[Record]{
		X: func(r Record) float64 { return r.Number(x) },
		Y: func(r Record) float64 { return r.Number(y) },
		Z: func(r Record) string { return r.String(z) },
	}
}

// DecodeRecords decodes a JSON array of objects.
func DecodeRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode records")
	}
	return records, nil
}

// CheckFields reports an error when no record carries one of the fields.
// A field missing from some records is tolerated.
func CheckFields(records []Record, fields ...string) error {
	for _, f := range fields {
		found := false
		for _, r := range records {
			if _, ok := r[f]; ok {
				found = true
				break
			}
		}
		if !found {
			return errors.New(errors.ErrCodeInvalidInput, "no record has field %q", f)
		}
	}
	return nil
}

// DecodeUpSet decodes {"sets": [...], "intersections": [{"set": [...], "size": n}]}.
func DecodeUpSet(data []byte) (upset.Data, error) {
	var d upset.Data
	if err := json.Unmarshal(data, &d); err != nil {
		return upset.Data{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode set intersections")
	}
	return d, nil
}
