package nav

// Selection is an optional index into the filtered view. The zero value has
// nothing selected.
type Selection struct {
	index int
	set   bool
}

func (s Selection) Get() (int, bool) {
	return s.index, s.set
}

// Set selects i; a negative index clears the selection.
func (s *Selection) Set(i int) {
	if i < 0 {
		s.Clear()
		return
	}
	s.index, s.set = i, true
}

func (s *Selection) Clear() {
	s.index, s.set = 0, false
}

// Validate keeps the selection inside a view of n items: it is cleared when
// the view is empty and clamped to the last item when the view shrank.
func (s *Selection) Validate(n int) {
	if !s.set {
		return
	}
	if n <= 0 {
		s.Clear()
		return
	}
	if s.index >= n {
		s.index = n - 1
	}
}
