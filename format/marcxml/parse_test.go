package marcxml

import (
	"bytes"
	"strings"
	"testing"

	kbp "github.com/knakk/kbp/marc"

	"github.com/inspirehep/harvestingkit/format"
	"github.com/inspirehep/harvestingkit/marc"
)

func TestParseReadsSerializedOutput(t *testing.T) {
	rec := sampleRecord()
	rec.AddControlField(kbp.Tag001, "12345")

	var buf bytes.Buffer
	f := &Format{}
	if err := f.Serialize(&buf, []*marc.Record{rec, sampleRecord()}, &format.SerializeOptions{Pretty: true}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	records, err := f.Parse(&buf, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	got := records[0]
	if got.Leader() != marc.DefaultLeader {
		t.Errorf("Leader: got %q", got.Leader())
	}
	if tags := strings.Join(got.Tags(), ","); tags != "001,245,650,773" {
		t.Errorf("Tags: got %q", tags)
	}
	if v := got.DataField("245")[0].First("a"); v != "Charm & beauty <in> QCD" {
		t.Errorf("245$a: got %q", v)
	}
	subject := got.DataField("650")[0]
	if subject.Indicator1() != "1" || subject.Indicator2() != "7" {
		t.Errorf("650 indicators: got %q %q", subject.Indicator1(), subject.Indicator2())
	}
	pub := got.DataField("773")[0]
	if pub.First("v") != "LATTICE2013" || pub.First("y") != "2013" {
		t.Errorf("773: got %+v", pub.Subfields())
	}
	if records[1].HasTag("001") {
		t.Error("second record should have no 001")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated", `<collection xmlns="http://www.loc.gov/MARC21/slim"><record><datafield tag="245"`},
		{"bad tag", `<collection xmlns="http://www.loc.gov/MARC21/slim"><record><datafield tag="abc" ind1=" " ind2=" "></datafield></record></collection>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := format.NewParseOptions()
			opts.SourceName = "records.xml"
			_, err := (&Format{}).Parse(strings.NewReader(tt.input), opts)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), "records.xml") {
				t.Errorf("Error should name the source: %v", err)
			}
		})
	}
}

func TestParseEmptyCollection(t *testing.T) {
	records, err := (&Format{}).Parse(strings.NewReader(`<collection xmlns="http://www.loc.gov/MARC21/slim"></collection>`), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestCanParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"collection", `<?xml version="1.0"?><collection xmlns="http://www.loc.gov/MARC21/slim">`, true},
		{"other xml", `<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">`, false},
		{"binary marc", "00123nam a2200049 a 4500", false},
		{"blank", "  \n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (&Format{}).CanParse([]byte(tt.input)); got != tt.want {
				t.Errorf("CanParse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
