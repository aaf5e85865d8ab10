// Package match tracks who is waiting for an opponent and who is currently
// paired. A name is never in the wait queue and the registry at once, and
// registry entries are always symmetric.
package match

// Pool holds the wait queue and the match registry. It is not safe for
// concurrent use; the server's event loop is its only caller.
type Pool struct {
	wait    []string
	matched map[string]string
}

// NewPool creates an empty pool
func NewPool() *Pool {
	return &Pool{
		matched: make(map[string]string),
	}
}

// Enqueue adds a name to the wait queue. Re-enqueueing a waiting name is a
// no-op and returns false.
func (p *Pool) Enqueue(name string) bool {
	if p.IsWaiting(name) {
		return false
	}
	p.wait = append(p.wait, name)
	return true
}

// Dequeue removes a name from the wait queue. Idempotent: removing an
// absent name returns false.
func (p *Pool) Dequeue(name string) bool {
	for i, waiting := range p.wait {
		if waiting == name {
			p.wait = append(p.wait[:i], p.wait[i+1:]...)
			return true
		}
	}
	return false
}

// IsWaiting reports whether a name is in the wait queue
func (p *Pool) IsWaiting(name string) bool {
	for _, waiting := range p.wait {
		if waiting == name {
			return true
		}
	}
	return false
}

// Waiting returns the number of queued names
func (p *Pool) Waiting() int {
	return len(p.wait)
}

// NextPair pops the two oldest waiters and registers them as a match.
// first is the older of the two. Returns false while fewer than two names
// are waiting.
func (p *Pool) NextPair() (first, second string, ok bool) {
	if len(p.wait) < 2 {
		return "", "", false
	}
	first, second = p.wait[0], p.wait[1]
	p.wait = p.wait[2:]
	p.matched[first] = second
	p.matched[second] = first
	return first, second, true
}

// Opponent returns the registered opponent of a name
func (p *Pool) Opponent(name string) (string, bool) {
	opponent, ok := p.matched[name]
	return opponent, ok
}

// EndMatch removes a match from the registry, both sides at once. Returns
// the opponent, or false if the name was not in a match.
func (p *Pool) EndMatch(name string) (opponent string, ok bool) {
	opponent, ok = p.matched[name]
	if !ok {
		return "", false
	}
	delete(p.matched, name)
	delete(p.matched, opponent)
	return opponent, true
}

// Matches returns the number of active matches
func (p *Pool) Matches() int {
	return len(p.matched) / 2
}
