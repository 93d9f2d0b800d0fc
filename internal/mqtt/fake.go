package mqtt

import "sync"

// FakePublisher records published actions for test assertions. Safe for
// concurrent use.
type FakePublisher struct {
	mu       sync.Mutex
	actions  []Action
	payloads [][]byte
	closed   bool

	// PublishError, if set, is returned by Publish.
	PublishError error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) Publish(a Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(a)
	if err != nil {
		return err
	}
	f.actions = append(f.actions, a)
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Actions returns a copy of everything published so far.
func (f *FakePublisher) Actions() []Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Action(nil), f.actions...)
}

func (f *FakePublisher) Payloads() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.payloads...)
}

func (f *FakePublisher) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
