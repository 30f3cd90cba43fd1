package cursor

// RangeList returns the list backing a multi-range selection.
func (s *Selection) RangeList() *RangeList {
	return s.rangeList
}

// InMultiSelectMode returns true while more than one range is selected.
func (s *Selection) InMultiSelectMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.multi
}

// RangeCount returns the number of ranges, 0 outside multi-select mode.
func (s *Selection) RangeCount() int {
	return s.rangeList.Len()
}

// Ranges returns every selected range in document order. Outside
// multi-select mode it holds the primary range only.
func (s *Selection) Ranges() []OrientedRange {
	if s.InMultiSelectMode() {
		return s.rangeList.Ranges()
	}
	return []OrientedRange{s.ToOrientedRange()}
}

// AddRange adds r to the selection, entering multi-select mode when a
// second distinct range appears. Ranges that r overlaps are dropped.
// The primary range becomes r.
func (s *Selection) AddRange(r OrientedRange) {
	if !s.InMultiSelectMode() && s.rangeList.Len() == 0 {
		current := s.ToOrientedRange()
		s.rangeList.Add(current)
		s.rangeList.Add(r)
		if s.rangeList.Len() != 2 {
			s.rangeList.RemoveAll()
			s.FromOrientedRange(r)
			return
		}
		s.rangeList.RemoveAll()
		s.rangeList.Add(current)
		s.emit(EventAddRange, []OrientedRange{current})
	}

	removed := s.rangeList.Add(r)
	s.emit(EventAddRange, []OrientedRange{r})
	if len(removed) > 0 {
		s.onRemoveRange(removed)
	}

	s.mu.Lock()
	entering := !s.multi && s.rangeList.Len() > 1
	if entering {
		s.multi = true
	}
	s.mu.Unlock()
	if entering {
		s.rangeList.Attach(s.doc)
		s.emit(EventMultiSelect, nil)
	}
	s.FromOrientedRange(r)
}

// onRemoveRange leaves multi-select mode once a single range is left.
func (s *Selection) onRemoveRange(removed []OrientedRange) {
	s.emit(EventRemoveRange, removed)
	if s.rangeList.Len() > 1 {
		return
	}
	s.mu.Lock()
	leaving := s.multi
	s.multi = false
	s.mu.Unlock()
	if !leaving {
		return
	}
	last := s.rangeList.RemoveAll()
	s.rangeList.Detach()
	s.emit(EventSingleSelect, nil)
	if len(last) > 0 {
		s.FromOrientedRange(last[0])
	}
}

// ToSingleRange drops every range and selects r alone.
func (s *Selection) ToSingleRange(r OrientedRange) {
	removed := s.rangeList.RemoveAll()
	s.rangeList.Detach()
	s.mu.Lock()
	leaving := s.multi
	s.multi = false
	s.mu.Unlock()
	if len(removed) > 0 {
		s.emit(EventRemoveRange, removed)
	}
	if leaving {
		s.emit(EventSingleSelect, nil)
	}
	s.FromOrientedRange(r)
}

// MergeOverlappingRanges joins ranges that overlap after an edit.
func (s *Selection) MergeOverlappingRanges() {
	removed := s.rangeList.Merge()
	if len(removed) > 0 {
		s.onRemoveRange(removed)
	}
}

func (s *Selection) emit(name string, payload any) {
	s.mu.RLock()
	silent := s.silent > 0
	s.mu.RUnlock()
	if silent {
		return
	}
	s.emitter.Emit(name, payload)
}
