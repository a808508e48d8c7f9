package engine

import "github.com/dlclark/regexp2"

// Match is a successive match. Index and Length are measured in runes.
type Match struct {
	Index  int
	Length int
	Text   string

	// Groups holds the text each capturing group matched; Groups[0] is the whole match. A group that
	// didn't participate in the match is empty.
	Groups []string
}

func newMatch(m *regexp2.Match) *Match {
	gs := m.Groups()
	groups := make([]string, len(gs))
	for i, g := range gs {
		if len(g.Captures) == 0 {
			continue
		}
		groups[i] = g.String()
	}
	return &Match{
		Index:  m.Index,
		Length: m.Length,
		Text:   m.String(),
		Groups: groups,
	}
}

// Matches iterates over the non-overlapping matches in a text. Each call to Next searches for the next
// match lazily.
//
//	ms := re.SearchAll(text)
//	for ms.Next() {
//		m := ms.Match()
//		...
//	}
//	if err := ms.Err(); err != nil {
//		...
//	}
type Matches struct {
	re   *regexp2.Regexp
	text string
	last *regexp2.Match
	err  error
	done bool
}

func (r *Regexp) SearchAll(text string) *Matches {
	return &Matches{
		re:   r.re,
		text: text,
	}
}

func (ms *Matches) Next() bool {
	if ms.done {
		return false
	}

	var m *regexp2.Match
	var err error
	if ms.last == nil {
		m, err = ms.re.FindStringMatch(ms.text)
	} else {
		m, err = ms.re.FindNextMatch(ms.last)
	}
	if err != nil {
		ms.err = err
		ms.done = true
		return false
	}
	if m == nil {
		ms.done = true
		return false
	}
	ms.last = m
	return true
}

// Match returns the current match. It returns nil before the first call to Next or after Next returns
// false.
func (ms *Matches) Match() *Match {
	if ms.done || ms.last == nil {
		return nil
	}
	return newMatch(ms.last)
}

// Err returns the error that stopped the iteration, such as a match timeout.
func (ms *Matches) Err() error {
	return ms.err
}
