package parser

// frame holds child match state: the position child match started at (after whitespace)
// and the child matcher able to produce alternative matches.
type frame struct {
	pos int
	m   matcher
}

type frameStack struct {
	frames []frame
}

func (s *frameStack) IsEmpty() bool {
	return len(s.frames) == 0
}

func (s *frameStack) Len() int {
	return len(s.frames)
}

func (s *frameStack) Push(f frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) Drop() {
	if len(s.frames) != 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *frameStack) Top() *frame {
	if len(s.frames) == 0 {
		return nil
	}

	return &s.frames[len(s.frames)-1]
}
