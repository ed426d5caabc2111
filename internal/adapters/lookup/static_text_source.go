package lookup

import (
	"context"
	"fmt"
	"sync"
)

// StaticTextSource serves canned responses from memory.
// It backs offline mode and doubles as a call-counting spy in tests.
type StaticTextSource struct {
	name  string
	pages map[string]string
	errs  map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func NewStaticTextSource(name string, pages map[string]string) *StaticTextSource {
	if pages == nil {
		pages = map[string]string{}
	}
	return &StaticTextSource{
		name:  name,
		pages: pages,
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

// FailWith makes every fetch of key return err.
func (s *StaticTextSource) FailWith(key string, err error) *StaticTextSource {
	s.errs[key] = err
	return s
}

func (s *StaticTextSource) Name() string { return s.name }

func (s *StaticTextSource) FetchText(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	s.calls[key]++
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := s.errs[key]; ok {
		return "", err
	}
	text, ok := s.pages[key]
	if !ok {
		return "", fmt.Errorf("%s: no page for %q", s.name, key)
	}
	return text, nil
}

// Calls returns how many times key was fetched.
func (s *StaticTextSource) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// TotalCalls returns the number of fetches across all keys.
func (s *StaticTextSource) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}
