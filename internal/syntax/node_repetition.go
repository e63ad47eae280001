package syntax

// Repetition applies Child between Min and Max times (Max < 0 means
// unbounded). Greedy repetitions consume as many iterations as possible up
// front; lazy repetitions consume exactly Min and grow one iteration at a
// time only when backtracked into.
type Repetition struct {
	Child Node
	Min   int
	Max   int // -1 = unbounded
	Lazy  bool
}

type repToken struct {
	tokens    []Token
	positions []int // cursor index before each iteration, for the zero-progress guard
}

// extendGreedy pushes additional iterations onto tokens for as long as
// Child keeps matching, up to Max. The zero-progress guard stops further
// iterations once Min is satisfied and an iteration consumed no input,
// preventing infinite loops on patterns like (a*)*.
func (n *Repetition) extendGreedy(s *State, tokens []Token, positions []int) ([]Token, []int) {
	for n.Max < 0 || len(tokens) < n.Max {
		before := s.Index
		t, ok := n.Child.Match(s)
		if !ok {
			break
		}
		tokens = append(tokens, t)
		positions = append(positions, before)
		if before == s.Index && len(tokens) >= n.Min {
			break
		}
	}
	return tokens, positions
}

// ensureMin backtracks and re-extends until len(tokens) >= Min or no more
// combinations remain.
func (n *Repetition) ensureMin(s *State, tokens []Token, positions []int) ([]Token, []int, bool) {
	for len(tokens) < n.Min {
		if len(tokens) == 0 {
			return tokens, positions, false
		}
		last := len(tokens) - 1
		nt, ok := n.Child.Backtrack(s, tokens[last])
		if !ok {
			tokens = tokens[:last]
			positions = positions[:last]
			continue
		}
		tokens[last] = nt
		tokens, positions = n.extendGreedy(s, tokens, positions)
	}
	return tokens, positions, true
}

func (n *Repetition) matchGreedy(s *State) (Token, bool) {
	tokens, positions := n.extendGreedy(s, nil, nil)
	tokens, positions, ok := n.ensureMin(s, tokens, positions)
	if !ok {
		return nil, false
	}
	return repToken{tokens: tokens, positions: positions}, true
}

// lazyFillToMin matches exactly Min iterations, backtracking earlier
// iterations when a later one can't be reached.
func (n *Repetition) lazyFillToMin(s *State, tokens []Token, positions []int) ([]Token, []int, bool) {
	for len(tokens) < n.Min {
		before := s.Index
		t, ok := n.Child.Match(s)
		if ok {
			tokens = append(tokens, t)
			positions = append(positions, before)
			continue
		}
		for {
			if len(tokens) == 0 {
				return tokens, positions, false
			}
			last := len(tokens) - 1
			nt, ok2 := n.Child.Backtrack(s, tokens[last])
			if ok2 {
				tokens[last] = nt
				break
			}
			tokens = tokens[:last]
			positions = positions[:last]
		}
	}
	return tokens, positions, true
}

func (n *Repetition) matchLazy(s *State) (Token, bool) {
	tokens, positions, ok := n.lazyFillToMin(s, nil, nil)
	if !ok {
		return nil, false
	}
	return repToken{tokens: tokens, positions: positions}, true
}

func (n *Repetition) Match(s *State) (Token, bool) {
	s.Tick()
	if n.Lazy {
		return n.matchLazy(s)
	}
	return n.matchGreedy(s)
}

func (n *Repetition) backtrackGreedy(s *State, tokens []Token, positions []int) (Token, bool) {
	for {
		if len(tokens) == 0 {
			return nil, false
		}
		last := len(tokens) - 1
		nt, ok := n.Child.Backtrack(s, tokens[last])
		if ok {
			tokens[last] = nt
			tokens, positions = n.extendGreedy(s, tokens, positions)
			if len(tokens) >= n.Min {
				return repToken{tokens: tokens, positions: positions}, true
			}
			var ok2 bool
			tokens, positions, ok2 = n.ensureMin(s, tokens, positions)
			if ok2 {
				return repToken{tokens: tokens, positions: positions}, true
			}
			return nil, false
		}
		// Child exhausted for this iteration: dropping it is itself the next
		// candidate, as long as we still meet Min.
		tokens = tokens[:last]
		positions = positions[:last]
		if len(tokens) >= n.Min {
			return repToken{tokens: tokens, positions: positions}, true
		}
	}
}

func (n *Repetition) backtrackLazy(s *State, tokens []Token, positions []int) (Token, bool) {
	if n.Max < 0 || len(tokens) < n.Max {
		before := s.Index
		nt, ok := n.Child.Match(s)
		if ok {
			if before == s.Index && len(tokens) >= n.Min {
				n.Child.Discard(s, nt)
			} else {
				tokens = append(tokens, nt)
				positions = append(positions, before)
				return repToken{tokens: tokens, positions: positions}, true
			}
		}
	}
	for {
		if len(tokens) == 0 {
			return nil, false
		}
		last := len(tokens) - 1
		nt, ok := n.Child.Backtrack(s, tokens[last])
		if ok {
			tokens[last] = nt
			return repToken{tokens: tokens[:last+1], positions: positions[:last+1]}, true
		}
		tokens = tokens[:last]
		positions = positions[:last]
		if len(tokens) < n.Min {
			return nil, false
		}
	}
}

func (n *Repetition) Backtrack(s *State, t Token) (Token, bool) {
	s.Tick()
	rt := t.(repToken)
	if n.Lazy {
		return n.backtrackLazy(s, rt.tokens, rt.positions)
	}
	return n.backtrackGreedy(s, rt.tokens, rt.positions)
}

func (n *Repetition) Discard(s *State, t Token) {
	rt := t.(repToken)
	for i := len(rt.tokens) - 1; i >= 0; i-- {
		n.Child.Discard(s, rt.tokens[i])
	}
}

// Invert flips greediness semantics not at all: repetition count and
// laziness are direction-agnostic. Only the child needs inverting.
func (n *Repetition) Invert() {
	n.Child.Invert()
}
