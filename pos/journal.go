package pos

import "strings"

// FixJournalName converts a journal name to its short form. A trailing
// capital letter separated by a period or a space is split off and returned
// as the volume letter ("Phys. Rev. D" gives volume "D").
func (m *Mapper) FixJournalName(journal string) (name, volume string) {
	if journal == "" {
		return "", ""
	}

	if n := len(journal); n >= 2 {
		last, prev := journal[n-1], journal[n-2]
		if last >= 'A' && last <= 'Z' && (prev == '.' || prev == ' ') {
			volume = journal[n-1:]
			journal = journal[:n-1]
		}
	}

	if short, ok := m.journals.Lookup(journal); ok {
		journal = strings.TrimSpace(short)
	} else if short, ok := m.journals.Lookup(strings.ToUpper(journal)); ok {
		journal = strings.TrimSpace(short)
	}

	return strings.ReplaceAll(journal, ". ", "."), volume
}
