package service

import (
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/cache"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the recurring maintenance jobs: the daily credential expiry
// check, the hourly cache cleanup and the weekly usage report. Times are in
// Addis Ababa local time.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the maintenance jobs against an APIConfigService
func NewScheduler(apiConfigService *APIConfigService, memCache cache.Cache) (*Scheduler, error) {
	location, err := time.LoadLocation("Africa/Addis_Ababa")
	if err != nil {
		return nil, fmt.Errorf("error loading scheduler time zone: [%v]", err)
	}

	c := cron.New(
		cron.WithLocation(location),
		cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		),
	)

	_, err = c.AddFunc("0 9 * * *", func() {
		if err := apiConfigService.CheckExpiringAPIs(); err != nil {
			log.Error(fmt.Errorf("error running credential expiry check: [%v]", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling credential expiry check: [%v]", err)
	}

	_, err = c.AddFunc("0 * * * *", func() {
		memCache.Purge()
		log.Trace("credential cache purged")
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling cache cleanup: [%v]", err)
	}

	_, err = c.AddFunc("0 8 * * 1", func() {
		if err := apiConfigService.SendUsageReport(); err != nil {
			log.Error(fmt.Errorf("error sending usage report: [%v]", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling usage report: [%v]", err)
	}

	return &Scheduler{cron: c}, nil
}

// Start begins running the scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("scheduler started", log.Data{"jobs": len(s.cron.Entries())})
}

// Stop halts scheduling and waits for any running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("scheduler stopped")
}
