package repository

import (
	"sync"

	"github.com/Gaaaybe/Aetherium/internal/interfaces"
)

// page возвращает срез items для 1-based страницы размером interfaces.PageSize.
func page[T any](items []T, p int) []T {
	start := interfaces.PageOffset(p)
	if start >= len(items) {
		return []T{}
	}
	end := min(start+interfaces.PageSize, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// store - упорядоченное хранилище в памяти, общее для всех in-memory репозиториев.
type store[K comparable, V any] struct {
	mu    sync.RWMutex
	keys  []K
	items map[K]V
}

func newStore[K comparable, V any]() *store[K, V] {
	return &store[K, V]{items: make(map[K]V)}
}

func (s *store[K, V]) get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// list возвращает значения в порядке вставки.
func (s *store[K, V]) list() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}

func (s *store[K, V]) insert(key K, v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; exists {
		return false
	}
	s.keys = append(s.keys, key)
	s.items[key] = v
	return true
}

func (s *store[K, V]) replace(key K, v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; !exists {
		return false
	}
	s.items[key] = v
	return true
}

func (s *store[K, V]) remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; !exists {
		return false
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

func (s *store[K, V]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
