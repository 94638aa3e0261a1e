package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
)

type ErrorLogger interface {
	Errorf(template string, args ...interface{})
}

type Scheduler struct {
	cron *cron.Cron
	log  ErrorLogger
}

func New(log ErrorLogger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		log:  log,
	}
}

func (s *Scheduler) AddJob(spec string, job func(context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(context.Background()); err != nil && s.log != nil {
			s.log.Errorf("scheduled run failed: %v", err)
		}
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
