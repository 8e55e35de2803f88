// Package csv turns CSV records into a token stream, producing one array or
// object per record.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/arnodel/jsvalue/encoding/json"
	"github.com/arnodel/jsvalue/internal/scanner"
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
)

// A Decoder reads CSV input and streams it as tokens.
type Decoder struct {
	reader *csv.Reader

	// When true, field names are taken from the first record and the
	// following records produce objects.  Otherwise each record produces an
	// array, unless field names were set with SetFieldNames.
	HasHeader bool

	fieldNames []*token.Scalar
}

var _ token.Producer = &Decoder{}

// NewDecoder sets up a new Decoder instance to read from the given input.
// Records may have different numbers of fields.
func NewDecoder(in io.Reader) *Decoder {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	return &Decoder{reader: reader}
}

// Produce reads CSV records until it runs out of input or encounters invalid
// CSV, in which case it returns an error.
func (d *Decoder) Produce(out chan<- token.Token) error {
	for recordCount := 0; ; recordCount++ {
		record, err := d.reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "csv")
		}
		if recordCount == 0 && d.HasHeader {
			d.SetFieldNames(record)
			continue
		}
		d.produceRecord(record, out)
	}
}

// SetFieldNames makes records produce objects with the given field names.
// Should be called before Produce.
func (d *Decoder) SetFieldNames(names []string) {
	d.fieldNames = d.fieldNames[:0]
	for _, name := range names {
		d.fieldNames = append(d.fieldNames, token.KeyScalar(name))
	}
}

func (d *Decoder) produceRecord(record []string, out chan<- token.Token) {
	if d.fieldNames == nil {
		out <- &token.StartArray{}
		for _, field := range record {
			out <- fieldToScalar(field)
		}
		out <- &token.EndArray{}
		return
	}
	out <- &token.StartObject{}
	for i, field := range record {
		out <- d.fieldName(i)
		out <- fieldToScalar(field)
	}
	out <- &token.EndObject{}
}

// fieldName returns the name of the i-th field, making one up for fields
// beyond the header.
func (d *Decoder) fieldName(i int) *token.Scalar {
	for j := len(d.fieldNames); j <= i; j++ {
		d.fieldNames = append(d.fieldNames, token.KeyScalar(fmt.Sprintf("field_%d", j+1)))
	}
	return d.fieldNames[i]
}

// fieldToScalar guesses the type of a field: empty fields are null, true and
// false are booleans and valid JSON numbers are numbers.  Anything else is a
// string.
func fieldToScalar(field string) *token.Scalar {
	switch field {
	case "":
		return token.NullScalar
	case "true":
		return token.TrueScalar
	case "false":
		return token.FalseScalar
	}
	if couldBeNumber(field) {
		scanr := scanner.NewScanner(strings.NewReader(field))
		scalar, err := json.ParseNumber(scanr)
		if err == nil {
			if b, err := scanr.Read(); err == nil && b == scanner.EOF {
				return scalar
			}
		}
	}
	return token.StringScalar(field)
}

func couldBeNumber(field string) bool {
	for _, b := range []byte(field) {
		if !scanner.IsDigit(b) && b != '.' && b != 'e' && b != 'E' && b != '+' && b != '-' {
			return false
		}
	}
	return true
}
