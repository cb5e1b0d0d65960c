package statuspage

import (
	"context"
	"testing"
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(30 * time.Minute)
)

func newTestIncidents() (*Incidents, *fakeSource, *fakeStore, *fakeSink) {
	source := &fakeSource{}
	store := newFakeStore()
	sink := newFakeSink()
	return NewIncidents(source, store, sink), source, store, sink
}

// observeLogs routes the global logger into an in-memory core for one test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	previous := logger.Logger
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(previous) })
	return logs
}

func runCheck(t *testing.T, incidents *Incidents) {
	t.Helper()
	require.NoError(t, incidents.Check(context.Background()))
	incidents.Wait()
}

func TestIncidents_FullLifecycle(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()

	// First sighting: no record, so a message is sent.
	x1 := CreateTestIncident("X1", "API outage", StatusInvestigating, ImpactMajor, t0)
	source.set(x1)
	runCheck(t, incidents)

	calls := sink.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "send", calls[0].Op)

	record, ok := store.record("X1")
	require.True(t, ok, "Expected a record after a successful send")
	assert.Equal(t, "msg-1", record.MessageID)
	assert.True(t, record.LastUpdate.Equal(t0), "Expected created_at as the fencing timestamp")
	assert.False(t, record.Resolved)

	// Same payload again: nothing to do.
	runCheck(t, incidents)
	assert.Len(t, sink.snapshot(), 1, "Expected unchanged incident to be skipped")

	// Resolved with a newer updated_at: edit the stored message.
	x1 = WithUpdate(CreateTestIncident("X1", "API outage", StatusInvestigating, ImpactMajor, t0), StatusResolved, "Fixed", t1)
	source.set(x1)
	runCheck(t, incidents)

	calls = sink.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "edit", calls[1].Op)
	assert.Equal(t, "msg-1", calls[1].MessageID, "Expected the stored message to be edited")

	record, ok = store.record("X1")
	require.True(t, ok)
	assert.True(t, record.Resolved)
	assert.True(t, record.LastUpdate.Equal(t1))
	assert.Equal(t, "msg-1", record.MessageID)
}

func TestIncidents_Idempotent(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	source.set(
		CreateTestIncident("A", "one", StatusInvestigating, ImpactMinor, t0),
		WithUpdate(CreateTestIncident("B", "two", StatusInvestigating, ImpactCritical, t0), StatusIdentified, "found", t1),
	)

	for run := 0; run < 3; run++ {
		runCheck(t, incidents)
	}

	assert.Equal(t, 2, sink.count("send"), "Expected exactly one send per incident")
	assert.Equal(t, 0, sink.count("edit"))
	assert.Equal(t, 2, store.sets)
}

func TestIncidents_FallbackTimestamp(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()

	incident := CreateTestIncident("F", "fallback", StatusInvestigating, ImpactMinor, t0)
	incident.UpdatedAt = nil
	source.set(incident)
	runCheck(t, incidents)

	record, ok := store.record("F")
	require.True(t, ok)
	assert.True(t, record.LastUpdate.Equal(t0))

	// created_at does not move, so the incident stays skipped
	runCheck(t, incidents)
	assert.Equal(t, 1, sink.count("send"))
	assert.Equal(t, 0, sink.count("edit"))
}

func TestIncidents_StrictlyNewerOnly(t *testing.T) {
	tests := []struct {
		name       string
		lastUpdate time.Time
		expectEdit bool
	}{
		{name: "older record", lastUpdate: t0, expectEdit: true},
		{name: "equal timestamp", lastUpdate: t1, expectEdit: false},
		{name: "record ahead of source", lastUpdate: t1.Add(time.Minute), expectEdit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incidents, source, store, sink := newTestIncidents()
			store.put(storage.IncidentRecord{IncidentID: "S", MessageID: "m", LastUpdate: tt.lastUpdate})
			source.set(WithUpdate(CreateTestIncident("S", "s", StatusInvestigating, ImpactMinor, t0), StatusMonitoring, "watching", t1))

			runCheck(t, incidents)

			if tt.expectEdit {
				assert.Equal(t, 1, sink.count("edit"))
			} else {
				assert.Empty(t, sink.snapshot())
			}
			assert.Equal(t, 0, sink.count("send"), "Expected existing records never to cause a send")
		})
	}
}

func TestIncidents_FetchFailure(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	store.put(storage.IncidentRecord{IncidentID: "X", MessageID: "m", LastUpdate: t0})
	source.err = errBoom

	err := incidents.Check(context.Background())
	incidents.Wait()

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrIncidentFetch)
	assert.Empty(t, sink.snapshot())
	assert.Equal(t, 0, store.sets, "Expected no record changes on fetch failure")
}

func TestIncidents_SendFailureCreatesNoRecord(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	sink.failFor["N"] = errBoom
	source.set(CreateTestIncident("N", "new", StatusInvestigating, ImpactMajor, t0))

	runCheck(t, incidents)

	_, ok := store.record("N")
	assert.False(t, ok, "Expected no record after a failed send")

	// Next cycle tries again
	delete(sink.failFor, "N")
	runCheck(t, incidents)
	assert.Equal(t, 2, sink.count("send"))
	_, ok = store.record("N")
	assert.True(t, ok)
}

func TestIncidents_EditFailureKeepsRecordAndNeverSends(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	store.put(storage.IncidentRecord{IncidentID: "E", MessageID: "m-7", LastUpdate: t0})
	sink.failFor["E"] = errBoom
	source.set(WithUpdate(CreateTestIncident("E", "edit", StatusInvestigating, ImpactMajor, t0), StatusResolved, "done", t1))

	runCheck(t, incidents)

	calls := sink.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "edit", calls[0].Op)
	assert.Equal(t, "m-7", calls[0].MessageID)

	record, ok := store.record("E")
	require.True(t, ok)
	assert.True(t, record.LastUpdate.Equal(t0), "Expected record untouched after a failed edit")
	assert.False(t, record.Resolved)
}

func TestIncidents_FailureIsolation(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	sink.failFor["bad"] = errBoom
	source.set(
		CreateTestIncident("good-1", "g1", StatusInvestigating, ImpactMinor, t0),
		CreateTestIncident("bad", "b", StatusInvestigating, ImpactMinor, t0),
		CreateTestIncident("good-2", "g2", StatusInvestigating, ImpactMinor, t0),
	)

	runCheck(t, incidents)

	_, ok := store.record("good-1")
	assert.True(t, ok)
	_, ok = store.record("good-2")
	assert.True(t, ok)
	_, ok = store.record("bad")
	assert.False(t, ok)
	assert.Equal(t, 3, sink.count("send"))
}

func TestIncidents_StoreLookupFailureSkips(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	store.getErr = errBoom
	source.set(CreateTestIncident("L", "lookup", StatusInvestigating, ImpactMinor, t0))

	runCheck(t, incidents)

	assert.Empty(t, sink.snapshot(), "Expected no send when the record cannot be read")
}

func TestIncidents_InFlightGuard(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	sink.started = make(chan struct{}, 1)
	sink.release = make(chan struct{})
	source.set(CreateTestIncident("slow", "slow", StatusInvestigating, ImpactMajor, t0))

	require.NoError(t, incidents.Check(context.Background()))
	select {
	case <-sink.started:
	case <-time.After(time.Second):
		t.Fatal("Send was not reached")
	}

	// Second cycle while the first send is still blocked
	require.NoError(t, incidents.Check(context.Background()))
	time.Sleep(50 * time.Millisecond)
	close(sink.release)
	incidents.Wait()

	assert.Equal(t, 1, sink.count("send"), "Expected overlapping cycles not to duplicate a send")
	record, ok := store.record("slow")
	require.True(t, ok)
	assert.Equal(t, "msg-1", record.MessageID)
}

func TestIncidents_InFlightFailureIsLogged(t *testing.T) {
	logs := observeLogs(t)
	incidents, source, store, sink := newTestIncidents()
	sink.started = make(chan struct{}, 1)
	sink.release = make(chan struct{})
	sink.failFor["slow"] = errBoom
	source.set(CreateTestIncident("slow", "slow", StatusInvestigating, ImpactMajor, t0))

	require.NoError(t, incidents.Check(context.Background()))
	select {
	case <-sink.started:
	case <-time.After(time.Second):
		t.Fatal("Send was not reached")
	}

	require.NoError(t, incidents.Check(context.Background()))
	time.Sleep(50 * time.Millisecond)
	close(sink.release)
	incidents.Wait()

	assert.Equal(t, 1, sink.count("send"))
	_, ok := store.record("slow")
	assert.False(t, ok)

	failures := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, failures, 1, "Expected the shared send failure to be logged once")
	assert.Contains(t, failures[0].Message, "Incident slow created failed")
	assert.Contains(t, failures[0].Message, ErrSend)
	assert.Equal(t, 1, logs.FilterMessageSnippet("joined an in-flight reconciliation").Len())
}

func TestIncidents_CancelledCheckStillRecordsSend(t *testing.T) {
	incidents, source, store, sink := newTestIncidents()
	sink.started = make(chan struct{}, 1)
	sink.release = make(chan struct{})
	source.set(CreateTestIncident("C", "cancelled", StatusInvestigating, ImpactMinor, t0))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, incidents.Check(ctx))
	select {
	case <-sink.started:
	case <-time.After(time.Second):
		t.Fatal("Send was not reached")
	}

	cancel()
	close(sink.release)
	incidents.Wait()

	record, ok := store.record("C")
	require.True(t, ok, "Expected cancellation not to drop an accepted send")
	assert.Equal(t, "msg-1", record.MessageID)
}

func TestIncidents_ReconcileTimeout(t *testing.T) {
	logs := observeLogs(t)
	incidents, source, store, sink := newTestIncidents()
	incidents.timeout = 20 * time.Millisecond
	sink.started = make(chan struct{}, 1)
	sink.release = make(chan struct{})
	defer close(sink.release)
	source.set(CreateTestIncident("T", "timeout", StatusInvestigating, ImpactMinor, t0))

	runCheck(t, incidents)

	_, ok := store.record("T")
	assert.False(t, ok)
	failures := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Message, context.DeadlineExceeded.Error())
}

func TestIncidents_reconcileActions(t *testing.T) {
	incidents, _, store, _ := newTestIncidents()
	incident := CreateTestIncident("R", "r", StatusInvestigating, ImpactMinor, t0)

	action, err := incidents.reconcile(context.Background(), incident)
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, action)

	action, err = incidents.reconcile(context.Background(), incident)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, action)

	WithUpdate(incident, StatusResolved, "ok", t1)
	action, err = incidents.reconcile(context.Background(), incident)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, action)

	store.setErr = errBoom
	WithUpdate(incident, StatusPostmortem, "report", t1.Add(time.Hour))
	action, err = incidents.reconcile(context.Background(), incident)
	assert.Error(t, err)
	assert.Equal(t, ActionUpdated, action)
}

func TestIncidents_CheckMissingDependencies(t *testing.T) {
	incidents := &Incidents{}

	err := incidents.Check(context.Background())

	assert.Error(t, err)
}
