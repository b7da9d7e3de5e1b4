package display

import "sync"

// Board is an in-memory Display. It keeps the latest contents of every
// element and optionally forwards changes to an observer.
type Board struct {
	mu       sync.Mutex
	html     map[string]string
	actions  map[string]string
	observer func(id, html string)
}

func NewBoard() *Board {
	return &Board{html: map[string]string{}, actions: map[string]string{}}
}

// Observe registers f to be called after every SetHTML. Passing nil removes it.
func (b *Board) Observe(f func(id, html string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observer = f
}

func (b *Board) SetHTML(id, html string) {
	b.mu.Lock()
	b.html[id] = html
	obs := b.observer
	b.mu.Unlock()

	if obs != nil {
		obs(id, html)
	}
}

func (b *Board) SetAction(id, action string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.actions[id] = action
}

// HTML returns the current contents of element id.
func (b *Board) HTML(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.html[id]
}

// Action returns the current action of form element id.
func (b *Board) Action(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.actions[id]
}
