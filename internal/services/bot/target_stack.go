package bot

import "github.com/mcoot/battleship-go/internal/model"

// targetStack is a LIFO of candidate coordinates
type targetStack struct {
	items []model.Coordinate
}

func (s *targetStack) push(c model.Coordinate) {
	s.items = append(s.items, c)
}

func (s *targetStack) pop() (model.Coordinate, bool) {
	if len(s.items) == 0 {
		return model.Coordinate{}, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

func (s *targetStack) len() int {
	return len(s.items)
}

func (s *targetStack) clear() {
	s.items = s.items[:0]
}
