// Package symbol interns identifier text so that names can be compared by identity.
package symbol

// Symbol is a canonical handle for a piece of identifier text. Two symbols obtained from the same Pool are equal iff
// their text is equal. The zero Symbol is the empty symbol and belongs to no pool.
type Symbol struct {
	e *entry
}

type entry struct {
	text string
}

func (s Symbol) String() string {
	if s.e == nil {
		return ""
	}
	return s.e.text
}

func (s Symbol) IsEmpty() bool {
	return s.e == nil
}

// Pool owns the interned entries. It is not safe for concurrent writers.
type Pool struct {
	entries map[string]*entry
}

func NewPool() *Pool {
	return &Pool{entries: map[string]*entry{}}
}

// Normalize returns the unique symbol for text, creating it on first use.
func (pool *Pool) Normalize(text string) Symbol {
	e, ok := pool.entries[text]
	if !ok {
		e = &entry{text: text}
		pool.entries[text] = e
	}
	return Symbol{e: e}
}

// Lookup returns the symbol for text without creating it.
func (pool *Pool) Lookup(text string) (Symbol, bool) {
	e, ok := pool.entries[text]
	if !ok {
		return Symbol{}, false
	}
	return Symbol{e: e}, true
}

func (pool *Pool) Size() int {
	return len(pool.entries)
}
