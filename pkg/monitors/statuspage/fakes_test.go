package statuspage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/integrations"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"
)

type fakeSource struct {
	mu        sync.Mutex
	incidents []Incident
	err       error
	calls     int
}

func (f *fakeSource) GetIncidents(ctx context.Context) ([]Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Incident, len(f.incidents))
	copy(out, f.incidents)
	return out, nil
}

func (f *fakeSource) set(incidents ...*Incident) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.incidents = f.incidents[:0]
	for _, incident := range incidents {
		f.incidents = append(f.incidents, *incident)
	}
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeStore struct {
	mu      sync.Mutex
	records map[string]storage.IncidentRecord
	getErr  error
	setErr  error
	sets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]storage.IncidentRecord)}
}

func (f *fakeStore) Get(ctx context.Context, incidentID string) (*storage.IncidentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[incidentID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeStore) Set(ctx context.Context, record *storage.IncidentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.records[record.IncidentID] = *record
	return nil
}

func (f *fakeStore) List(ctx context.Context) ([]storage.IncidentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]storage.IncidentRecord, 0, len(f.records))
	for _, record := range f.records {
		records = append(records, record)
	}
	return records, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) record(id string) (storage.IncidentRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	return record, ok
}

func (f *fakeStore) put(record storage.IncidentRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.IncidentID] = record
}

type sinkCall struct {
	Op        string
	MessageID string
	Message   integrations.Message
}

type fakeSink struct {
	mu      sync.Mutex
	calls   []sinkCall
	next    int
	failFor map[string]error

	// when set, Send blocks until release is closed and signals started first
	started chan struct{}
	release chan struct{}
}

func newFakeSink() *fakeSink {
	return &fakeSink{failFor: make(map[string]error)}
}

func (f *fakeSink) Send(ctx context.Context, message integrations.Message) (string, error) {
	if f.release != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sinkCall{Op: "send", Message: message})
	if err := f.failFor[message.Footer]; err != nil {
		return "", err
	}
	f.next++
	return fmt.Sprintf("msg-%d", f.next), nil
}

func (f *fakeSink) Edit(ctx context.Context, messageID string, message integrations.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sinkCall{Op: "edit", MessageID: messageID, Message: message})
	if err := f.failFor[message.Footer]; err != nil {
		return "", err
	}
	return messageID, nil
}

func (f *fakeSink) snapshot() []sinkCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sinkCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeSink) count(op string) int {
	n := 0
	for _, call := range f.snapshot() {
		if call.Op == op {
			n++
		}
	}
	return n
}

var errBoom = errors.New("boom")
