package items

import "errors"

// Hideable is an item a Pool can park.
type Hideable interface {
	SetVisible(bool)
	Dispose() error
}

// Pool keeps a growing set of items addressed by slot. Capacity only grows,
// slots past the active count are hidden instead of freed.
type Pool[T Hideable] struct {
	newItem func(slot int) (T, error)
	items   []T
	active  int
}

func NewPool[T Hideable](newItem func(slot int) (T, error)) *Pool[T] {
	return &Pool[T]{newItem: newItem}
}

// EnsureCapacity allocates slots until at least n exist.
func (p *Pool[T]) EnsureCapacity(n int) error {
	for len(p.items) < n {
		it, err := p.newItem(len(p.items))
		if err != nil {
			return err
		}
		p.items = append(p.items, it)
	}
	return nil
}

// HideBeyond shows slots below n and hides the rest.
func (p *Pool[T]) HideBeyond(n int) {
	n = min(max(n, 0), len(p.items))
	for i, it := range p.items {
		it.SetVisible(i < n)
	}
	p.active = n
}

// Use grows the pool to n, shows the first n slots and hides the rest.
func (p *Pool[T]) Use(n int) error {
	if err := p.EnsureCapacity(n); err != nil {
		return err
	}
	p.HideBeyond(n)
	return nil
}

func (p *Pool[T]) At(i int) T { return p.items[i] }

func (p *Pool[T]) Cap() int { return len(p.items) }

func (p *Pool[T]) Active() int { return p.active }

// Dispose frees every slot and returns the errors of the slots that could
// not be freed.
func (p *Pool[T]) Dispose() error {
	var errs []error
	for _, it := range p.items {
		if err := it.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	p.items = nil
	p.active = 0
	return errors.Join(errs...)
}
