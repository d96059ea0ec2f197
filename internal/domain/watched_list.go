package domain

import "slices"

// WatchedList хранит текущий упорядоченный список и снимок на момент создания,
// чтобы отвечать, какие элементы добавлены и какие удалены.
// Сравнение элементов задает вызывающий код.
type WatchedList[T any] struct {
	initial []T
	current []T
	equal   func(a, b T) bool
}

func NewWatchedList[T any](equal func(a, b T) bool, initial ...T) *WatchedList[T] {
	return &WatchedList[T]{
		initial: slices.Clone(initial),
		current: slices.Clone(initial),
		equal:   equal,
	}
}

// Items возвращает копию текущих элементов.
func (l *WatchedList[T]) Items() []T {
	return slices.Clone(l.current)
}

func (l *WatchedList[T]) Len() int {
	return len(l.current)
}

// NewItems - элементы текущего списка без пары в снимке.
// Каждый элемент снимка может закрыть только один элемент текущего списка.
func (l *WatchedList[T]) NewItems() []T {
	return l.unmatched(l.current, l.initial)
}

// RemovedItems - элементы снимка, пропавшие из текущего списка.
func (l *WatchedList[T]) RemovedItems() []T {
	return l.unmatched(l.initial, l.current)
}

func (l *WatchedList[T]) unmatched(items, against []T) []T {
	remaining := slices.Clone(against)
	var out []T
	for _, item := range items {
		idx := slices.IndexFunc(remaining, func(r T) bool { return l.equal(r, item) })
		if idx >= 0 {
			remaining = slices.Delete(remaining, idx, idx+1)
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *WatchedList[T]) Exists(item T) bool {
	return slices.ContainsFunc(l.current, func(v T) bool { return l.equal(v, item) })
}

func (l *WatchedList[T]) Add(item T) {
	l.current = append(l.current, item)
}

// Remove удаляет первое совпадение.
func (l *WatchedList[T]) Remove(item T) {
	idx := slices.IndexFunc(l.current, func(v T) bool { return l.equal(v, item) })
	if idx >= 0 {
		l.current = slices.Delete(l.current, idx, idx+1)
	}
}

// Update заменяет текущие элементы. Снимок не меняется.
func (l *WatchedList[T]) Update(items []T) {
	l.current = slices.Clone(items)
}

// Clone возвращает независимую копию вместе со снимком.
func (l *WatchedList[T]) Clone() *WatchedList[T] {
	return &WatchedList[T]{
		initial: slices.Clone(l.initial),
		current: slices.Clone(l.current),
		equal:   l.equal,
	}
}
