package browser

import (
	"fmt"
	"sort"
	"sync"
)

// ScreenshotStore keeps captured screenshots by name so they can be read
// back later as named resources. Re-using a name overwrites the previous
// capture.
type ScreenshotStore struct {
	mu     sync.RWMutex
	images map[string][]byte
}

// NewScreenshotStore creates an empty store.
func NewScreenshotStore() *ScreenshotStore {
	return &ScreenshotStore{images: make(map[string][]byte)}
}

// Put stores PNG data under name.
func (s *ScreenshotStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = data
}

// Get returns the screenshot stored under name.
func (s *ScreenshotStore) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.images[name]
	if !ok {
		return nil, fmt.Errorf("no screenshot named %q", name)
	}
	return data, nil
}

// Names returns the stored names in sorted order.
func (s *ScreenshotStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
