package events

import "jobmarket/internal/domain/job"

const (
	JobCreatedTopic = "JobCreatedEvent"
	JobUpdatedTopic = "JobUpdatedEvent"
	JobDeletedTopic = "JobDeletedEvent"
)

type JobCreated struct {
	Job job.Job
}

type JobUpdated struct {
	Job                job.Job
	FingerprintChanged bool
	SkillsReextracted  bool
}

type JobDeleted struct {
	JobID string
}
