package iso2709

import (
	"bytes"
	"fmt"
	"io"

	"github.com/inspirehep/harvestingkit/format"
	"github.com/inspirehep/harvestingkit/marc"
)

// Serialize writes each record in ISO 2709 form, one after another.
func (f *Format) Serialize(w io.Writer, records []*marc.Record, _ *format.SerializeOptions) error {
	for i, rec := range records {
		data, err := Encode(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// Encode returns the ISO 2709 encoding of a single record.
func Encode(rec *marc.Record) ([]byte, error) {
	var directory, data bytes.Buffer

	for _, f := range rec.Fields() {
		tag := f.Tag()
		if len(tag) != 3 {
			return nil, fmt.Errorf("invalid tag %q", tag)
		}

		start := data.Len()
		if f.IsControl() {
			data.WriteString(f.Value())
		} else {
			data.WriteString(f.Indicator1())
			data.WriteString(f.Indicator2())
			for _, sf := range f.Subfields() {
				data.WriteByte(subfieldDelimiter)
				data.WriteString(sf.Code)
				data.WriteString(sf.Value)
			}
		}
		data.WriteByte(fieldTerminator)

		length := data.Len() - start
		if length > maxFieldLength {
			return nil, fmt.Errorf("field %s is %d bytes long, maximum is %d", tag, length, maxFieldLength)
		}
		fmt.Fprintf(&directory, "%s%04d%05d", tag, length, start)
	}
	directory.WriteByte(fieldTerminator)

	base := leaderLength + directory.Len()
	total := base + data.Len() + 1
	if total > maxRecordLength {
		return nil, fmt.Errorf("record is %d bytes long, maximum is %d", total, maxRecordLength)
	}

	leader := []byte(rec.Leader())
	if len(leader) != marc.LeaderLength {
		leader = []byte(marc.DefaultLeader)
	}
	copy(leader[0:5], fmt.Sprintf("%05d", total))
	leader[9] = 'a'
	leader[10] = '2'
	leader[11] = '2'
	copy(leader[12:17], fmt.Sprintf("%05d", base))

	out := make([]byte, 0, total)
	out = append(out, leader...)
	out = append(out, directory.Bytes()...)
	out = append(out, data.Bytes()...)
	out = append(out, recordTerminator)
	return out, nil
}
