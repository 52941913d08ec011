package marcxml

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/inspirehep/harvestingkit/format"
	"github.com/inspirehep/harvestingkit/marc"
)

// Serialize writes records as a MARCXML <collection>.
func (f *Format) Serialize(w io.Writer, records []*marc.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	collection := XMLCollection{Xmlns: Namespace}
	for _, rec := range records {
		collection.Records = append(collection.Records, recordToXML(rec))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	if opts.Pretty {
		enc.Indent("", "  ")
	}
	if err := enc.Encode(collection); err != nil {
		return fmt.Errorf("marshaling collection: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func recordToXML(rec *marc.Record) XMLRecord {
	out := XMLRecord{Leader: rec.Leader()}
	if len(out.Leader) != marc.LeaderLength {
		out.Leader = marc.DefaultLeader
	}

	for _, f := range rec.Fields() {
		if f.IsControl() {
			out.ControlFields = append(out.ControlFields, XMLControlField{Tag: f.Tag(), Value: f.Value()})
			continue
		}

		df := XMLDataField{Tag: f.Tag(), Ind1: f.Indicator1(), Ind2: f.Indicator2()}
		for _, sf := range f.Subfields() {
			df.Subfields = append(df.Subfields, XMLSubfield{Code: sf.Code, Value: sf.Value})
		}
		out.DataFields = append(out.DataFields, df)
	}

	return out
}

// XML types for MARCXML marshaling.

// XMLCollection is the root <collection> element.
type XMLCollection struct {
	XMLName xml.Name    `xml:"collection"`
	Xmlns   string      `xml:"xmlns,attr"`
	Records []XMLRecord `xml:"record"`
}

// XMLRecord is a single <record>.
type XMLRecord struct {
	Leader        string            `xml:"leader"`
	ControlFields []XMLControlField `xml:"controlfield"`
	DataFields    []XMLDataField    `xml:"datafield"`
}

// XMLControlField is a <controlfield>.
type XMLControlField struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

// XMLDataField is a <datafield> with its subfields.
type XMLDataField struct {
	Tag       string        `xml:"tag,attr"`
	Ind1      string        `xml:"ind1,attr"`
	Ind2      string        `xml:"ind2,attr"`
	Subfields []XMLSubfield `xml:"subfield"`
}

// XMLSubfield is a <subfield>.
type XMLSubfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}
