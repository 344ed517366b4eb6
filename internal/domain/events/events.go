package events

import "github.com/hirehall/jobboard/internal/domain/models"

var JobCreatedTopic = "JobCreatedEvent"

type JobCreated struct {
	Job models.Job
}

var ApplicationSubmittedTopic = "ApplicationSubmittedEvent"

type ApplicationSubmitted struct {
	Job         models.Job
	Application models.Application
}
