package engine

import "sort"

// Marker highlights a range. Back markers draw under the text, front
// markers over it.
type Marker struct {
	ID      int
	Range   Range
	Class   string
	Type    string
	InFront bool
}

// Annotation is a gutter message attached to a row.
type Annotation struct {
	Row    int
	Column int
	Text   string
	Type   string // "error", "warning" or "info"
}

// AddMarker registers a marker and returns its id.
func (s *Session) AddMarker(r Range, class, typ string, inFront bool) int {
	s.mu.Lock()
	s.nextMarker++
	id := s.nextMarker
	s.markers[id] = &Marker{ID: id, Range: r, Class: class, Type: typ, InFront: inFront}
	s.mu.Unlock()
	s.emitMarkerChange(inFront)
	return id
}

// UpdateMarker moves an existing marker.
func (s *Session) UpdateMarker(id int, r Range) bool {
	s.mu.Lock()
	m, ok := s.markers[id]
	if ok {
		m.Range = r
	}
	s.mu.Unlock()
	if ok {
		s.emitMarkerChange(m.InFront)
	}
	return ok
}

// RemoveMarker drops the marker with the given id.
func (s *Session) RemoveMarker(id int) {
	s.mu.Lock()
	m, ok := s.markers[id]
	delete(s.markers, id)
	s.mu.Unlock()
	if ok {
		s.emitMarkerChange(m.InFront)
	}
}

// Marker returns the marker with the given id.
func (s *Session) Marker(id int) (Marker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markers[id]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

// Markers returns the front or back markers ordered by id.
func (s *Session) Markers(inFront bool) []Marker {
	s.mu.RLock()
	out := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		if m.InFront == inFront {
			out = append(out, *m)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Session) emitMarkerChange(inFront bool) {
	if inFront {
		s.emitter.Emit(EventChangeFrontMarker, nil)
		return
	}
	s.emitter.Emit(EventChangeBackMarker, nil)
}

// SetAnnotations replaces every annotation.
func (s *Session) SetAnnotations(annotations []Annotation) {
	s.mu.Lock()
	s.annotations = append([]Annotation(nil), annotations...)
	s.mu.Unlock()
	s.emitter.Emit(EventChangeAnnotation, nil)
}

// Annotations returns a copy of the annotations.
func (s *Session) Annotations() []Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Annotation(nil), s.annotations...)
}

// ClearAnnotations removes every annotation.
func (s *Session) ClearAnnotations() {
	s.SetAnnotations(nil)
}
