package services

import (
	"context"
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/hirehall/jobboard/internal/clients/mailer"
	"github.com/hirehall/jobboard/internal/domain/events"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/logger"
	"github.com/hirehall/jobboard/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type notifierSearchRepository interface {
	Get(ctx context.Context, limit int, offset int) ([]models.SavedSearch, error)
}

type notificationRepository interface {
	Add(ctx context.Context, notification *models.Notification) error
}

type MailSender interface {
	Send(ctx context.Context, message mailer.Message) error
}

// Notifier listens for board events and fans them out to in-app
// notifications and, for application events on email-channel jobs,
// outbound mail. Mail is optional; a nil sender disables it.
type Notifier struct {
	searches      notifierSearchRepository
	notifications notificationRepository
	mail          MailSender
}

func NewNotifier(bus EventBus.Bus, searches notifierSearchRepository,
	notifications notificationRepository, mail MailSender) (*Notifier, error) {

	n := &Notifier{
		searches:      searches,
		notifications: notifications,
		mail:          mail,
	}

	if err := bus.Subscribe(events.JobCreatedTopic, n.onJobCreated); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.ApplicationSubmittedTopic, n.onApplicationSubmitted); err != nil {
		return nil, err
	}
	return n, nil
}

// onJobCreated matches the new job against every saved search and
// notifies each owner once, no matter how many of their searches match.
func (n *Notifier) onJobCreated(event events.JobCreated) {

	ctx := context.Background()
	job := event.Job

	const pageSize = 20
	notified := make(map[int64]struct{})

	for offset := 0; ; offset += pageSize {
		searches, err := n.searches.Get(ctx, pageSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to get saved searches: %v", err)
			return
		}
		if len(searches) == 0 {
			break
		}

		for _, search := range searches {
			if _, done := notified[search.UserID]; done {
				continue
			}
			if search.UserID == job.EmployerID {
				continue
			}
			if !search.Filters.Matches(&job) {
				continue
			}

			notified[search.UserID] = struct{}{}
			err = n.notifications.Add(ctx, &models.Notification{
				UserID:  search.UserID,
				Type:    models.NotificationTypeJobMatch,
				Message: fmt.Sprintf("New job matching your search %q: %s", search.Name, job.Title),
				JobID:   &job.ID,
			})
			if err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
					Errorf("failed to add job match notification: %v", err)
				continue
			}
			metrics.NotificationsCounter.WithLabelValues(models.NotificationTypeJobMatch).Inc()
		}
	}

	log.Infof("job %v matched saved searches of %v users", job.ID, len(notified))
}

func (n *Notifier) onApplicationSubmitted(event events.ApplicationSubmitted) {

	ctx := context.Background()
	job := event.Job

	err := n.notifications.Add(ctx, &models.Notification{
		UserID:  job.EmployerID,
		Type:    models.NotificationTypeNewApplication,
		Message: fmt.Sprintf("New application for %s from %s", job.Title, event.Application.FullName),
		JobID:   &job.ID,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to add application notification: %v", err)
	} else {
		metrics.NotificationsCounter.WithLabelValues(models.NotificationTypeNewApplication).Inc()
	}

	if n.mail == nil || job.ApplyMethod != models.ApplyMethodEmail || job.NotificationEmail == "" {
		return
	}

	err = n.mail.Send(ctx, mailer.Message{
		To:      job.NotificationEmail,
		Subject: fmt.Sprintf("New application for %s", job.Title),
		TextBody: fmt.Sprintf("%s applied for %s.\nContact: %s %s\n\n%s",
			event.Application.FullName, job.Title,
			event.Application.Email, event.Application.Phone,
			event.Application.CoverLetter),
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailApi).
			Errorf("failed to send application email: %v", err)
	}
}
