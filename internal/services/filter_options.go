package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/hirehall/jobboard/internal/domain/events"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const filterOptionsCacheKey = "filter_options"

type FilterOptions struct {
	Roles []string `json:"roles"`
	Tech  []string `json:"tech"`
}

type filterOptionsRepository interface {
	FilterOptions(ctx context.Context) (roles []string, tech []string, err error)
}

// FilterOptionsService memoizes the full-table scan behind the filter
// dropdowns. The cache entry is dropped whenever a job is published, so
// new roles and tags show up without waiting for expiration.
type FilterOptionsService struct {
	jobs  filterOptionsRepository
	cache *gocache.Cache
}

func NewFilterOptionsService(bus EventBus.Bus, jobs filterOptionsRepository,
	ttl time.Duration) (*FilterOptionsService, error) {

	s := &FilterOptionsService{
		jobs:  jobs,
		cache: gocache.New(ttl, 2*ttl),
	}
	err := bus.Subscribe(events.JobCreatedTopic, s.onJobCreated)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FilterOptionsService) Get(ctx context.Context) (FilterOptions, error) {

	if cached, found := s.cache.Get(filterOptionsCacheKey); found {
		return cached.(FilterOptions), nil
	}

	roles, tech, err := s.jobs.FilterOptions(ctx)
	if err != nil {
		return FilterOptions{}, err
	}

	options := FilterOptions{Roles: roles, Tech: tech}
	s.cache.Set(filterOptionsCacheKey, options, gocache.DefaultExpiration)
	return options, nil
}

func (s *FilterOptionsService) onJobCreated(_ events.JobCreated) {
	s.cache.Delete(filterOptionsCacheKey)
	log.Debug("filter options cache invalidated")
}
