// Package marc models bibliographic records as ordered lists of tagged
// fields in the MARC 21 style.
//
// Fields are stored in a github.com/knakk/kbp/marc record. That record keys
// fields by tag and subfields by code, so this package keeps the order in
// which fields and subfields were added alongside it.
package marc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	kbp "github.com/knakk/kbp/marc"
)

// Blank is the indicator value used when no indicator is given.
const Blank = " "

// DefaultLeader is the leader written for records that do not carry one.
// Lengths and base address (positions 00-04 and 12-16) are filled in by
// serializers that need them.
const DefaultLeader = "00000nam a2200000 a 4500"

// LeaderLength is the fixed length of a MARC leader.
const LeaderLength = 24

type (
	// DataTag identifies a data field (010-999).
	DataTag = kbp.DataTag

	// ControlTag identifies a control field (001-009).
	ControlTag = kbp.ControlTag
)

// subfieldCodes lists the codes copied from library records, in output order.
const subfieldCodes = "abcdefghijklmnopqrstuvwxyz0123456789"

// Subfield is a single code/value pair within a field.
type Subfield struct {
	Code  string
	Value string
}

// Field is a tagged field: either a data field with indicators and
// subfields, or a control field with a single value.
type Field struct {
	data    *kbp.DataField
	control *kbp.ControlField
	codes   []rune
}

// Tag returns the three-digit field tag.
func (f *Field) Tag() string {
	if f.control != nil {
		return f.control.Tag.String()
	}
	return f.data.Tag.String()
}

// IsControl reports whether f is a control field.
func (f *Field) IsControl() bool {
	return f.control != nil
}

// Value returns the value of a control field.
func (f *Field) Value() string {
	if f.control == nil {
		return ""
	}
	return f.control.String()
}

// Indicator1 returns the first indicator.
func (f *Field) Indicator1() string {
	if f.data == nil {
		return Blank
	}
	return indicatorString(f.data.Indicator1)
}

// Indicator2 returns the second indicator.
func (f *Field) Indicator2() string {
	if f.data == nil {
		return Blank
	}
	return indicatorString(f.data.Indicator2)
}

// Subfields returns the subfields in the order they were added.
func (f *Field) Subfields() []Subfield {
	if f.data == nil {
		return nil
	}

	seen := make(map[rune]int, len(f.codes))
	out := make([]Subfield, 0, len(f.codes))
	for _, code := range f.codes {
		values := f.data.Subfields(code)
		out = append(out, Subfield{Code: string(code), Value: values[seen[code]]})
		seen[code]++
	}
	return out
}

// Subfield returns the values of the subfields with the given code.
func (f *Field) Subfield(code string) []string {
	if f.data == nil {
		return nil
	}
	return f.data.Subfields(subfieldCode(code))
}

// First returns the first value of the subfield with the given code.
func (f *Field) First(code string) string {
	if f.data == nil {
		return ""
	}
	return f.data.Subfield(subfieldCode(code))
}

// Codes returns the subfield codes in field order, e.g. "pvcy".
func (f *Field) Codes() string {
	return string(f.codes)
}

// Record is an ordered collection of fields. Field order is insertion order;
// several data fields may share a tag. The zero value is not usable; create
// records with NewRecord.
type Record struct {
	leader string
	rec    *kbp.Record
	fields []*Field
}

// NewRecord creates an empty record with DefaultLeader.
func NewRecord() *Record {
	r := &Record{rec: kbp.NewRecord()}
	r.SetLeader(DefaultLeader)
	return r
}

// Leader returns the record leader.
func (r *Record) Leader() string {
	return r.leader
}

// SetLeader replaces the leader. A leader that is not 24 bytes long is kept
// as given; serializers fall back to DefaultLeader for it.
func (r *Record) SetLeader(leader string) {
	r.leader = leader
	if len(leader) != LeaderLength {
		return
	}
	r.rec.SetLeaderPos(kbp.LeaderRecordStatus, leader[5]).
		SetLeaderPos(kbp.LeaderRecordType, leader[6]).
		SetLeaderPos(kbp.LeaderBibliograhicLevel, leader[7]).
		SetLeaderPos(kbp.LeaderControlType, leader[8]).
		SetLeaderPos(kbp.LeaderCharacterEncoding, leader[9]).
		SetLeaderPos(kbp.LeaderIndicatorCount, leader[10]).
		SetLeaderPos(kbp.LeaderSubfieldCodeCount, leader[11]).
		SetLeaderPos(kbp.LeaderEncodingLevel, leader[17])
}

// MARC returns the library record backing r.
func (r *Record) MARC() *kbp.Record {
	return r.rec
}

// Fields returns every field in record order.
func (r *Record) Fields() []*Field {
	return r.fields
}

// AddField appends a data field. Empty indicators are stored as blanks.
func (r *Record) AddField(tag DataTag, ind1, ind2 string, subfields ...Subfield) *Field {
	df := kbp.NewDataFieldWithIndicators(tag, indicator(ind1), indicator(ind2))
	f := &Field{data: df, codes: make([]rune, 0, len(subfields))}
	for _, sf := range subfields {
		code := subfieldCode(sf.Code)
		df.Add(code, sf.Value)
		f.codes = append(f.codes, code)
	}

	r.rec.AddDataField(df)
	r.fields = append(r.fields, f)
	return f
}

// AddControlField sets a control field. Control fields do not repeat; a
// second value for the same tag replaces the first in place.
func (r *Record) AddControlField(tag ControlTag, value string) *Field {
	cf := kbp.NewControlField(tag).Set(value)
	r.rec.AddControlField(cf)

	for _, f := range r.fields {
		if f.control != nil && f.control.Tag == tag {
			f.control = cf
			return f
		}
	}
	f := &Field{control: cf}
	r.fields = append(r.fields, f)
	return f
}

// DataField returns every field with one of the given tags, in record order.
func (r *Record) DataField(tags ...string) []*Field {
	var out []*Field
	for _, f := range r.fields {
		tag := f.Tag()
		for _, t := range tags {
			if tag == t {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// HasTag reports whether the record contains at least one field with tag.
func (r *Record) HasTag(tag string) bool {
	if len(tag) != 3 {
		return false
	}
	n, err := strconv.Atoi(tag)
	if err != nil || n < 1 {
		return false
	}
	if n < 10 {
		_, ok := r.rec.ControlField(ControlTag(n))
		return ok
	}
	_, ok := r.rec.DataField(DataTag(n))
	return ok
}

// Tags returns the tag of every field in record order.
func (r *Record) Tags() []string {
	tags := make([]string, len(r.fields))
	for i, f := range r.fields {
		tags[i] = f.Tag()
	}
	return tags
}

// FromMARC copies a library record, such as one read by a kbp decoder. The
// library does not keep field or subfield order, so the copy has fields in
// tag order and subfields in code order (letters, then digits). Subfields
// with other codes are dropped.
func FromMARC(src *kbp.Record) (*Record, error) {
	leader, err := leaderOf(src)
	if err != nil {
		return nil, err
	}

	r := NewRecord()
	r.SetLeader(leader)

	for tag := ControlTag(1); tag < 10; tag++ {
		if cf, ok := src.ControlField(tag); ok {
			r.AddControlField(tag, cf.String())
		}
	}

	for tag := DataTag(10); tag < 1000; tag++ {
		for _, df := range src.DataFields(tag) {
			var subfields []Subfield
			for _, code := range subfieldCodes {
				for _, v := range df.Subfields(code) {
					subfields = append(subfields, Subfield{Code: string(code), Value: v})
				}
			}
			r.AddField(tag, indicatorString(df.Indicator1), indicatorString(df.Indicator2), subfields...)
		}
	}

	return r, nil
}

// leaderOf reads the leader of a library record through its JSON form, the
// only place the library exposes it.
func leaderOf(src *kbp.Record) (string, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return "", fmt.Errorf("reading leader: %w", err)
	}

	var v struct {
		Leader string `json:"leader"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("reading leader: %w", err)
	}

	if len(v.Leader) != LeaderLength || v.Leader[5] == ' ' {
		return DefaultLeader, nil
	}
	return v.Leader, nil
}

func indicator(ind string) rune {
	if ind == "" {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(ind)
	return r
}

func indicatorString(r rune) string {
	if r == 0 {
		return Blank
	}
	return string(r)
}

func subfieldCode(code string) rune {
	r, _ := utf8.DecodeRuneInString(code)
	if r == utf8.RuneError {
		return ' '
	}
	return r
}
