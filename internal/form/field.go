// Package form holds the schedule-creation form state and the synchronizer
// that keeps its end date derived from the start date and week count.
package form

// Field is an observable form value. A field is either set to a value or
// empty; subscribers hear about both transitions.
type Field[T any] struct {
	value T
	set   bool

	subs   map[int]func(T, bool)
	order  []int
	nextID int
}

// Get returns the value and whether the field is set.
func (f *Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// Set stores v and notifies subscribers.
func (f *Field[T]) Set(v T) {
	f.value = v
	f.set = true
	f.notify()
}

// Clear empties the field and notifies subscribers.
func (f *Field[T]) Clear() {
	var zero T
	f.value = zero
	f.set = false
	f.notify()
}

// Subscribe registers fn for every later change. The returned function
// removes it and may be called more than once.
func (f *Field[T]) Subscribe(fn func(v T, ok bool)) (unsubscribe func()) {
	if f.subs == nil {
		f.subs = make(map[int]func(T, bool))
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.order = append(f.order, id)
	return func() {
		if _, ok := f.subs[id]; !ok {
			return
		}
		delete(f.subs, id)
		for i, o := range f.order {
			if o == id {
				f.order = append(f.order[:i:i], f.order[i+1:]...)
				break
			}
		}
	}
}

func (f *Field[T]) notify() {
	ids := append([]int(nil), f.order...)
	for _, id := range ids {
		if fn, ok := f.subs[id]; ok {
			fn(f.value, f.set)
		}
	}
}
