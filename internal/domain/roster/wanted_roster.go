package roster

// WantedRoster is the ordered, unique set of records wanted in the current round
type WantedRoster struct {
	records []PersonRecord
}

// NewWantedRoster builds a roster, ignoring duplicate identities
func NewWantedRoster(records ...PersonRecord) *WantedRoster {
	w := &WantedRoster{}
	for _, r := range records {
		w.add(r)
	}
	return w
}

func (w *WantedRoster) add(r PersonRecord) bool {
	if w.Contains(r) {
		return false
	}
	w.records = append(w.records, r)
	return true
}

// Add appends a record if it is not already wanted
func (w *WantedRoster) Add(r PersonRecord) bool {
	return w.add(r)
}

// Contains reports roster membership by person identity
func (w *WantedRoster) Contains(r PersonRecord) bool {
	if w == nil {
		return false
	}
	for _, existing := range w.records {
		if existing.IsSamePerson(r) {
			return true
		}
	}
	return false
}

// Remove drops the record from the roster; it reports whether anything was removed
func (w *WantedRoster) Remove(r PersonRecord) bool {
	if w == nil {
		return false
	}
	for i, existing := range w.records {
		if existing.IsSamePerson(r) {
			w.records = append(w.records[:i], w.records[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the roster contents for a freshly generated list
func (w *WantedRoster) Replace(other *WantedRoster) {
	w.records = w.records[:0]
	for _, r := range other.Records() {
		w.add(r)
	}
}

func (w *WantedRoster) Clear() {
	w.records = nil
}

func (w *WantedRoster) Size() int {
	if w == nil {
		return 0
	}
	return len(w.records)
}

func (w *WantedRoster) IsEmpty() bool {
	return w.Size() == 0
}

// Records returns a copy of the roster in order
func (w *WantedRoster) Records() []PersonRecord {
	if w == nil {
		return nil
	}
	out := make([]PersonRecord, len(w.records))
	copy(out, w.records)
	return out
}

// ClassCounts reports how many wanted records each class has (for presentation)
func (w *WantedRoster) ClassCounts() map[PersonClass]int {
	counts := make(map[PersonClass]int)
	for _, r := range w.Records() {
		counts[r.Class()]++
	}
	return counts
}
