package pos

import (
	"strings"

	"github.com/inspirehep/harvestingkit/helpers"
)

// Element names read from PoS OAI-DC records.
const (
	tagArticleID   = "article-id"
	tagCreator     = "dc:creator"
	tagTitle       = "dc:title"
	tagLanguage    = "dc:language"
	tagDescription = "dc:description"
	tagPublisher   = "dc:publisher"
	tagDate        = "dc:date"
	tagRights      = "dc:rights"
	tagSubject     = "dc:subject"
	tagRelation    = "dc:relation"
	tagIdentifier  = "identifier"
	tagDatestamp   = "datestamp"
)

// Metadata holds the raw values extracted from one record, before any
// normalization is applied.
type Metadata struct {
	Language    string
	Description string
	Publisher   string
	Date        string
	Title       string
	Copyright   string
	Subject     string
	Relation    string
	Authors     []string
	Identifier  string
}

// Extract reads every value used to build a record. Missing elements are
// reported to the mapper's logger and left empty.
func (m *Mapper) Extract(doc Document) Metadata {
	return Metadata{
		Language:    m.Language(doc),
		Description: m.Description(doc),
		Publisher:   m.Publisher(doc),
		Date:        m.Date(doc),
		Title:       m.Title(doc),
		Copyright:   m.Copyright(doc),
		Subject:     m.Subject(doc),
		Relation:    m.Relation(doc),
		Authors:     m.Authors(doc),
		Identifier:  m.Identifier(doc),
	}
}

// DOI returns the text of the first article-id whose pub-id-type is "doi".
func (m *Mapper) DOI(doc Document) string {
	for _, el := range doc.GetElementsByTagName(tagArticleID) {
		if el.Attr("pub-id-type") != "doi" {
			continue
		}
		if text, ok := el.FirstChildText(); ok {
			return text
		}
		break
	}
	m.missing("doi")
	return ""
}

// Authors returns every dc:creator as "Surname, Given Names", in document order.
func (m *Mapper) Authors(doc Document) []string {
	var authors []string
	for _, el := range doc.GetElementsByTagName(tagCreator) {
		author, ok := helpers.InvertName(el.Text())
		if !ok {
			m.missing("author")
			continue
		}
		authors = append(authors, author)
	}
	return authors
}

// Title returns the dc:title text.
func (m *Mapper) Title(doc Document) string {
	return m.valueInTag(doc, tagTitle, "title")
}

// Language returns the dc:language code, e.g. "en".
func (m *Mapper) Language(doc Document) string {
	return m.valueInTag(doc, tagLanguage, "language")
}

// Description returns the dc:description text, used as the abstract.
func (m *Mapper) Description(doc Document) string {
	return m.valueInTag(doc, tagDescription, "description")
}

// Publisher returns the dc:publisher text.
func (m *Mapper) Publisher(doc Document) string {
	return m.valueInTag(doc, tagPublisher, "publisher")
}

// Date returns the dc:date value as harvested.
func (m *Mapper) Date(doc Document) string {
	return m.valueInTag(doc, tagDate, "date")
}

// Copyright returns the dc:rights statement.
func (m *Mapper) Copyright(doc Document) string {
	return m.valueInTag(doc, tagRights, "copyright")
}

// Subject returns the first dc:subject.
func (m *Mapper) Subject(doc Document) string {
	return m.valueInTag(doc, tagSubject, "subject")
}

// Relation returns the dc:relation text.
func (m *Mapper) Relation(doc Document) string {
	return m.valueInTag(doc, tagRelation, "relation")
}

// Identifier returns the OAI identifier from the record header.
func (m *Mapper) Identifier(doc Document) string {
	return m.valueInTag(doc, tagIdentifier, "identifier")
}

// Datestamp returns the OAI header datestamp. It is not mapped to a field.
func (m *Mapper) Datestamp(doc Document) string {
	return m.valueInTag(doc, tagDatestamp, "datestamp")
}

// valueInTag returns the trimmed text of the first element named tag and
// reports field as missing when there is none.
func (m *Mapper) valueInTag(doc Document, tag, field string) string {
	elements := doc.GetElementsByTagName(tag)
	if len(elements) == 0 {
		m.missing(field)
		return ""
	}
	return strings.TrimSpace(elements[0].Text())
}

func (m *Mapper) missing(field string) {
	m.logger.Warn("Can't find "+field, "field", field)
}
