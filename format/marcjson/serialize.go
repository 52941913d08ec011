package marcjson

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/inspirehep/harvestingkit/format"
	"github.com/inspirehep/harvestingkit/marc"
)

// Serialize writes records as a JSON array of MARC-in-JSON objects.
func (f *Format) Serialize(w io.Writer, records []*marc.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(records))}
	for i, rec := range records {
		v, err := ToValue(rec)
		if err != nil {
			return fmt.Errorf("converting record %d: %w", i, err)
		}
		list.Values = append(list.Values, v)
	}

	marshal := protojson.MarshalOptions{Multiline: opts.Pretty}
	if opts.Pretty {
		marshal.Indent = "  "
	}
	out, err := marshal.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// ToValue converts a record to its MARC-in-JSON structure:
//
//	{"leader": "...", "fields": [{"001": "..."}, {"245": {"ind1": " ", "ind2": " ", "subfields": [{"a": "..."}]}}]}
func ToValue(rec *marc.Record) (*structpb.Value, error) {
	leader := rec.Leader()
	if len(leader) != marc.LeaderLength {
		leader = marc.DefaultLeader
	}

	fields := make([]any, 0, len(rec.Fields()))
	for _, f := range rec.Fields() {
		if f.IsControl() {
			fields = append(fields, map[string]any{f.Tag(): f.Value()})
			continue
		}

		subfields := make([]any, 0, len(f.Codes()))
		for _, sf := range f.Subfields() {
			subfields = append(subfields, map[string]any{sf.Code: sf.Value})
		}
		fields = append(fields, map[string]any{
			f.Tag(): map[string]any{
				"ind1":      f.Indicator1(),
				"ind2":      f.Indicator2(),
				"subfields": subfields,
			},
		})
	}

	return structpb.NewValue(map[string]any{
		"leader": leader,
		"fields": fields,
	})
}
