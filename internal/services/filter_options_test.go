package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/hirehall/jobboard/internal/domain/events"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFilterOptionsRepository struct {
	roles []string
	tech  []string
	calls int
}

func (m *mockFilterOptionsRepository) FilterOptions(_ context.Context) ([]string, []string, error) {
	m.calls++
	return m.roles, m.tech, nil
}

func Test_FilterOptionsService_CachesResult(t *testing.T) {

	repo := &mockFilterOptionsRepository{roles: []string{"Backend"}, tech: []string{"Go"}}
	service, err := NewFilterOptionsService(EventBus.New(), repo, time.Minute)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		options, err := service.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Backend"}, options.Roles)
		assert.Equal(t, []string{"Go"}, options.Tech)
	}

	assert.Equal(t, 1, repo.calls)
}

func Test_FilterOptionsService_InvalidatesOnJobCreated(t *testing.T) {

	bus := EventBus.New()
	repo := &mockFilterOptionsRepository{roles: []string{"Backend"}}
	service, err := NewFilterOptionsService(bus, repo, time.Minute)
	require.NoError(t, err)

	_, err = service.Get(context.Background())
	require.NoError(t, err)

	repo.roles = []string{"Backend", "Frontend"}
	bus.Publish(events.JobCreatedTopic, events.JobCreated{Job: models.Job{}})

	options, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend", "Frontend"}, options.Roles)
	assert.Equal(t, 2, repo.calls)
}
