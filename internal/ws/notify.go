package ws

import (
	"encoding/json"
	"time"

	"jobmarket/internal/events"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
)

const (
	MessageJobCreated = "job_created"
	MessageJobUpdated = "job_updated"
	MessageJobDeleted = "job_deleted"
)

type JobMessage struct {
	Type      string `json:"type"`
	JobID     string `json:"jobId"`
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	City      string `json:"city,omitempty"`
	Source    string `json:"source,omitempty"`
	Timestamp string `json:"timestamp"`
}

// JobFeed forwards job lifecycle events to every connected client.
type JobFeed struct {
	hub *Hub
	now func() time.Time
}

func NewJobFeed(hub *Hub) *JobFeed {
	return &JobFeed{hub: hub, now: time.Now}
}

func (f *JobFeed) Subscribe(bus EventBus.Bus) error {
	if err := bus.SubscribeAsync(events.JobCreatedTopic, f.onCreated, false); err != nil {
		return errors.Wrap(err, "subscribe job created")
	}
	if err := bus.SubscribeAsync(events.JobUpdatedTopic, f.onUpdated, false); err != nil {
		return errors.Wrap(err, "subscribe job updated")
	}
	if err := bus.SubscribeAsync(events.JobDeletedTopic, f.onDeleted, false); err != nil {
		return errors.Wrap(err, "subscribe job deleted")
	}
	return nil
}

func (f *JobFeed) onCreated(e events.JobCreated) {
	f.send(JobMessage{
		Type:    MessageJobCreated,
		JobID:   e.Job.ID.String(),
		Title:   e.Job.Title,
		Company: e.Job.Company,
		City:    e.Job.City,
		Source:  string(e.Job.Source),
	})
}

func (f *JobFeed) onUpdated(e events.JobUpdated) {
	f.send(JobMessage{
		Type:    MessageJobUpdated,
		JobID:   e.Job.ID.String(),
		Title:   e.Job.Title,
		Company: e.Job.Company,
		City:    e.Job.City,
		Source:  string(e.Job.Source),
	})
}

func (f *JobFeed) onDeleted(e events.JobDeleted) {
	f.send(JobMessage{Type: MessageJobDeleted, JobID: e.JobID})
}

func (f *JobFeed) send(m JobMessage) {
	m.Timestamp = f.now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	f.hub.Broadcast(b)
}
