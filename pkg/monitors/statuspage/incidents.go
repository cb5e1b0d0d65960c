package statuspage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/integrations"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// IncidentSource lists the current incidents of a status page.
type IncidentSource interface {
	GetIncidents(ctx context.Context) ([]Incident, error)
}

// Action is the outcome of reconciling one incident.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
)

// Incidents mirrors status page incidents into chat messages.
// Each check fetches the incident list and reconciles every incident against
// its stored record in its own goroutine.
type Incidents struct {
	source IncidentSource
	store  storage.Store
	sink   integrations.MessageSink

	// timeout bounds a single reconciliation
	timeout time.Duration

	// inflight joins work for an incident that is still being reconciled
	inflight singleflight.Group
	wg       sync.WaitGroup
}

// NewIncidents creates an incidents reconciler.
func NewIncidents(source IncidentSource, store storage.Store, sink integrations.MessageSink) *Incidents {
	return &Incidents{
		source:  source,
		store:   store,
		sink:    sink,
		timeout: DefaultReconcileTimeout,
	}
}

// Check fetches all incidents and dispatches one reconciliation per incident,
// oldest first. It returns once the work is dispatched; use Wait to block until
// it is done. A fetch failure aborts the check without touching any record.
//
// Cancelling ctx aborts the fetch but not dispatched work, so a message that
// was already accepted still gets recorded. Each reconciliation is bounded by
// its own timeout instead.
func (i *Incidents) Check(ctx context.Context) error {
	if i.source == nil || i.store == nil || i.sink == nil {
		return errors.New(ErrMissingConfig)
	}

	cycleID := uuid.NewString()
	start := time.Now()

	incidents, err := i.source.GetIncidents(ctx)
	checkDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		checksTotal.WithLabelValues(resultFailure).Inc()
		return fmt.Errorf("%s: %w", ErrIncidentFetch, err)
	}

	checksTotal.WithLabelValues(resultSuccess).Inc()
	incidentsFetched.Set(float64(len(incidents)))

	logger.Info("Incident check started",
		zap.String("cycle", cycleID),
		zap.Int("incidents", len(incidents)),
		zap.Duration("fetch", time.Since(start)))

	workCtx := context.WithoutCancel(ctx)

	// The API lists newest first; reverse so older incidents are posted first.
	for idx := len(incidents) - 1; idx >= 0; idx-- {
		incident := incidents[idx]
		i.wg.Add(1)
		go func() {
			defer i.wg.Done()
			i.dispatch(workCtx, cycleID, &incident)
		}()
	}

	return nil
}

// Wait blocks until every dispatched reconciliation has finished.
func (i *Incidents) Wait() {
	i.wg.Wait()
}

// dispatch reconciles one incident unless the same incident is already in
// flight, in which case it joins that run. Only the caller that ran the
// reconciliation reports its outcome; singleflight marks the leader as shared
// too once anyone joins.
func (i *Incidents) dispatch(ctx context.Context, cycleID string, incident *Incident) {
	leader := false
	_, _, shared := i.inflight.Do(incident.ID, func() (interface{}, error) {
		leader = true

		reconcileCtx, cancel := context.WithTimeout(ctx, i.reconcileTimeout())
		defer cancel()

		action, err := i.reconcile(reconcileCtx, incident)
		report(cycleID, incident, action, err)
		return action, err
	})

	if shared && !leader {
		logger.Debugf("[%s] Incident %s joined an in-flight reconciliation", cycleID, incident.ID)
	}
}

func (i *Incidents) reconcileTimeout() time.Duration {
	if i.timeout <= 0 {
		return DefaultReconcileTimeout
	}
	return i.timeout
}

// report logs the outcome of one reconciliation.
func report(cycleID string, incident *Incident, action Action, err error) {
	if err != nil {
		logger.Errorf("[%s] Incident %s %s failed: %v", cycleID, incident.ID, action, err)
		return
	}

	switch action {
	case ActionCreated:
		logger.Infof("[%s] New incident: %s (%s)", cycleID, incident.ID, incident.Name)
	case ActionUpdated:
		logger.Infof("[%s] Updated incident: %s (Status: %s)", cycleID, incident.ID, incident.Status)
	default:
		logger.Debugf("[%s] Incident %s unchanged", cycleID, incident.ID)
	}
}

// reconcile decides between sending, editing and skipping for one incident,
// and persists the record after a successful send or edit. On failure the
// returned action names the attempted operation.
func (i *Incidents) reconcile(ctx context.Context, incident *Incident) (Action, error) {
	record, err := i.store.Get(ctx, incident.ID)
	if err != nil {
		return ActionSkipped, fmt.Errorf("%s: %w", ErrStoreLookup, err)
	}

	effective := incident.EffectiveUpdatedAt()

	if record == nil {
		messageID, err := i.sink.Send(ctx, FormatIncident(incident))
		if err != nil {
			messagesTotal.WithLabelValues(string(ActionCreated), resultFailure).Inc()
			return ActionCreated, fmt.Errorf("%s: %w", ErrSend, err)
		}
		messagesTotal.WithLabelValues(string(ActionCreated), resultSuccess).Inc()

		if err := i.store.Set(ctx, &storage.IncidentRecord{
			IncidentID: incident.ID,
			MessageID:  messageID,
			LastUpdate: effective,
			Resolved:   incident.IsResolved(),
		}); err != nil {
			return ActionCreated, fmt.Errorf("%s: %w", ErrStoreWrite, err)
		}
		return ActionCreated, nil
	}

	if !effective.After(record.LastUpdate) {
		return ActionSkipped, nil
	}

	messageID, err := i.sink.Edit(ctx, record.MessageID, FormatIncident(incident))
	if err != nil {
		messagesTotal.WithLabelValues(string(ActionUpdated), resultFailure).Inc()
		return ActionUpdated, fmt.Errorf("%s %s: %w", ErrEdit, record.MessageID, err)
	}
	messagesTotal.WithLabelValues(string(ActionUpdated), resultSuccess).Inc()

	if messageID == "" {
		messageID = record.MessageID
	}

	if err := i.store.Set(ctx, &storage.IncidentRecord{
		IncidentID: incident.ID,
		MessageID:  messageID,
		LastUpdate: effective,
		Resolved:   incident.IsResolved(),
	}); err != nil {
		return ActionUpdated, fmt.Errorf("%s: %w", ErrStoreWrite, err)
	}
	return ActionUpdated, nil
}
