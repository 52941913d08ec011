package pos

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/inspirehep/harvestingkit/dom"
	"github.com/inspirehep/harvestingkit/marc"
)

func TestGetRecordFullRecord(t *testing.T) {
	m, _ := newTestMapper(t, nil)
	rec, err := m.GetRecord(mustParse(t, posRecord))
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}

	wantTags := []string{"520", "260", "245", "540", "650", "786", "100", "700", "700", "773", "980"}
	if got := rec.Tags(); strings.Join(got, ",") != strings.Join(wantTags, ",") {
		t.Fatalf("Tags: got %v, want %v", got, wantTags)
	}

	f := rec.DataField("260")[0]
	if f.Codes() != "bc" || f.First("b") != "SISSA" || f.First("c") != "2014-02-28" {
		t.Errorf("260: got %+v", f.Subfields())
	}

	if got := rec.DataField("540")[0].First("a"); got != "CC-BY-NC-SA" {
		t.Errorf("540$a: got %q, want %q", got, "CC-BY-NC-SA")
	}

	subject := rec.DataField("650")[0]
	if subject.Indicator1() != "1" || subject.Indicator2() != "7" || subject.First("a") != "Lattice Field Theory" {
		t.Errorf("650: got %+v", subject)
	}

	relation := rec.DataField("786")[0]
	if relation.Indicator1() != "0" || relation.Indicator2() != marc.Blank || relation.Codes() != "n" {
		t.Errorf("786: got %+v", relation)
	}

	if got := rec.DataField("100")[0].First("a"); got != "Smith, Alice" {
		t.Errorf("100$a: got %q", got)
	}
	others := rec.DataField("700")
	if others[0].First("a") != "Dupont, Jean Paul" || others[1].First("a") != "Jones, Bob" {
		t.Errorf("700: got %q, %q", others[0].First("a"), others[1].First("a"))
	}

	pub := rec.DataField("773")[0]
	if pub.Codes() != "pvcy" {
		t.Errorf("773 codes: got %q, want %q", pub.Codes(), "pvcy")
	}
	for code, want := range map[string]string{"p": "PoS", "v": "LATTICE2013", "c": "056", "y": "2014"} {
		if got := pub.First(code); got != want {
			t.Errorf("773$%s: got %q, want %q", code, got, want)
		}
	}

	if got := rec.DataField("980"); len(got) != 1 || got[0].First("a") != "ConferencePaper" {
		t.Errorf("980: got %v", got)
	}
}

func TestRecordOptionalFields(t *testing.T) {
	base := Metadata{Identifier: "oai:pos.sissa.it:LATTICE2013/056"}

	tests := []struct {
		name    string
		modify  func(*Metadata)
		tag     string
		present bool
	}{
		{"english language omitted", func(md *Metadata) { md.Language = "en" }, "041", false},
		{"other language emitted", func(md *Metadata) { md.Language = "it" }, "041", true},
		{"no description", func(md *Metadata) {}, "520", false},
		{"description", func(md *Metadata) { md.Description = "Abstract" }, "520", true},
		{"no publisher or date", func(md *Metadata) {}, "260", false},
		{"no title", func(md *Metadata) {}, "245", false},
		{"title", func(md *Metadata) { md.Title = "T" }, "245", true},
		{"no rights", func(md *Metadata) {}, "540", false},
		{"no subject", func(md *Metadata) {}, "650", false},
		{"no relation", func(md *Metadata) {}, "786", false},
		{"no authors", func(md *Metadata) {}, "100", false},
		{"no co-authors", func(md *Metadata) { md.Authors = []string{"Smith, Alice"} }, "700", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := base
			tt.modify(&md)

			m, _ := newTestMapper(t, nil)
			rec, err := m.Record(md)
			if err != nil {
				t.Fatalf("Record failed: %v", err)
			}
			if got := rec.HasTag(tt.tag); got != tt.present {
				t.Errorf("HasTag(%s): got %v, want %v", tt.tag, got, tt.present)
			}
			if got := len(rec.DataField("980")); got != 1 {
				t.Errorf("980 count: got %d, want 1", got)
			}
		})
	}
}

func TestRecordPublisherDate(t *testing.T) {
	tests := []struct {
		name      string
		publisher string
		date      string
		wantCodes string
		wantB     string
		wantC     string
		wantYear  string
	}{
		{"both", "Sissa Medialab", "2013-12-01", "bc", "SISSA", "2013-12-01", "2013"},
		{"publisher only", "CERN", "", "b", "CERN", "", ""},
		{"date only", "", "2013-12-01", "c", "", "2013-12-01", "2013"},
		{"timestamp reformatted", "", "2013-12-01T08:00:00Z", "c", "", "2013-12-01", "2013"},
		{"publisher match is case-sensitive", "SISSA MEDIALAB", "", "b", "SISSA MEDIALAB", "", ""},
		{"other lengths pass through", "", "Dec 2013", "c", "", "Dec 2013", "Dec "},
		{"year keeps whole characters", "", "été 2013", "c", "", "été 2013", "été "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMapper(t, nil)
			rec, err := m.Record(Metadata{
				Publisher:  tt.publisher,
				Date:       tt.date,
				Identifier: "oai:pos.sissa.it:LATTICE2013/056",
			})
			if err != nil {
				t.Fatalf("Record failed: %v", err)
			}

			fields := rec.DataField("260")
			if len(fields) != 1 {
				t.Fatalf("260 count: got %d, want 1", len(fields))
			}
			f := fields[0]
			if f.Codes() != tt.wantCodes {
				t.Errorf("260 codes: got %q, want %q", f.Codes(), tt.wantCodes)
			}
			if f.First("b") != tt.wantB || f.First("c") != tt.wantC {
				t.Errorf("260: got b=%q c=%q", f.First("b"), f.First("c"))
			}
			if got := rec.DataField("773")[0].First("y"); got != tt.wantYear {
				t.Errorf("773$y: got %q, want %q", got, tt.wantYear)
			}
		})
	}
}

func TestRecordRightsCanonicalization(t *testing.T) {
	for input, want := range map[string]string{
		"Creative Commons Attribution-NonCommercial-ShareAlike":  "CC-BY-NC-SA",
		"Creative Commons Attribution-NonCommercial-ShareAlike ": "Creative Commons Attribution-NonCommercial-ShareAlike ",
		"CC-BY 4.0": "CC-BY 4.0",
	} {
		m, _ := newTestMapper(t, nil)
		rec, err := m.Record(Metadata{Copyright: input, Identifier: "oai:pos.sissa.it:X/1"})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if got := rec.DataField("540")[0].First("a"); got != want {
			t.Errorf("540$a for %q: got %q, want %q", input, got, want)
		}
	}
}

func TestRecordAuthors(t *testing.T) {
	for n := 0; n <= 4; n++ {
		t.Run(fmt.Sprintf("%d authors", n), func(t *testing.T) {
			md := Metadata{Identifier: "oai:pos.sissa.it:X/1"}
			for i := 0; i < n; i++ {
				md.Authors = append(md.Authors, fmt.Sprintf("Author%d, A.", i))
			}

			m, _ := newTestMapper(t, nil)
			rec, err := m.Record(md)
			if err != nil {
				t.Fatalf("Record failed: %v", err)
			}

			want100, want700 := 0, 0
			if n > 0 {
				want100, want700 = 1, n-1
			}
			if got := len(rec.DataField("100")); got != want100 {
				t.Errorf("100 count: got %d, want %d", got, want100)
			}
			if got := len(rec.DataField("700")); got != want700 {
				t.Errorf("700 count: got %d, want %d", got, want700)
			}
			if n > 0 && rec.DataField("100")[0].First("a") != "Author0, A." {
				t.Errorf("100$a: got %q", rec.DataField("100")[0].First("a"))
			}
		})
	}
}

func TestRecordConferenceIdentity(t *testing.T) {
	tests := []struct {
		identifier   string
		conference   string
		contribution string
	}{
		{"oai:pos.sissa.it:LATTICE2013/056", "LATTICE2013", "056"},
		{"oai:pos.sissa.it:LATTICE 2013/056", "LATTICE2013", "056"},
		{"oai:pos.sissa.it:ICHEP2012/001/extra", "ICHEP2012", "001"},
		{"oai:pos.sissa.it:EPS-HEP2013/123:v2", "EPS-HEP2013", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			m, _ := newTestMapper(t, nil)
			rec, err := m.Record(Metadata{Identifier: tt.identifier, Date: "2013-12-01"})
			if err != nil {
				t.Fatalf("Record failed: %v", err)
			}
			f := rec.DataField("773")[0]
			if f.First("p") != "PoS" || f.First("v") != tt.conference || f.First("c") != tt.contribution || f.First("y") != "2013" {
				t.Errorf("773: got %+v", f.Subfields())
			}
		})
	}
}

func TestGetRecordMalformedIdentifierFails(t *testing.T) {
	tests := []string{
		"",
		"oai:pos.sissa.it",
		"LATTICE2013/056",
		"oai:pos.sissa.it:LATTICE2013",
	}

	for _, identifier := range tests {
		t.Run(identifier, func(t *testing.T) {
			m, _ := newTestMapper(t, nil)
			doc := mustParse(t, fmt.Sprintf(`<record xmlns:dc="http://purl.org/dc/elements/1.1/">
  <header><identifier>%s</identifier></header>
  <dc:title>Has a title</dc:title>
</record>`, identifier))

			rec, err := m.GetRecord(doc)
			if !errors.Is(err, ErrMalformedIdentifier) {
				t.Errorf("Expected ErrMalformedIdentifier, got %v", err)
			}
			if rec != nil {
				t.Errorf("Expected no record, got %v", rec.Tags())
			}
		})
	}
}

func TestGetRecordMalformedTimestampFails(t *testing.T) {
	m, _ := newTestMapper(t, nil)
	rec, err := m.Record(Metadata{Date: "2013-12-01 08:00:00Z", Identifier: "oai:pos.sissa.it:X/1"})
	if !errors.Is(err, ErrMalformedDate) {
		t.Errorf("Expected ErrMalformedDate, got %v", err)
	}
	if rec != nil {
		t.Error("Expected no record")
	}
}

func TestGetRecordConcurrentUse(t *testing.T) {
	m, _ := newTestMapper(t, nil)

	docs := make([]*dom.Document, 16)
	for i := range docs {
		docs[i] = mustParse(t, fmt.Sprintf(`<record><header><identifier>oai:pos.sissa.it:CONF%d/%03d</identifier></header></record>`, i, i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(docs))
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc *dom.Document) {
			defer wg.Done()
			rec, err := m.GetRecord(doc)
			if err != nil {
				errs <- err
				return
			}
			want := fmt.Sprintf("CONF%d", i)
			if got := rec.DataField("773")[0].First("v"); got != want {
				errs <- fmt.Errorf("773$v: got %q, want %q", got, want)
			}
		}(i, doc)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
