package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/questx-lab/rewards/internal/domain/postcommit"
	"github.com/questx-lab/rewards/pkg/api/marketing"
	"github.com/questx-lab/rewards/pkg/kafka"
	"github.com/questx-lab/rewards/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startMarketing(*cli.Context) error {
	if err := s.loadContext("marketing"); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)
	if cfg.Kafka.Addr == "" {
		return errors.New("kafka is not configured")
	}

	subscriber, err := kafka.NewSubscriber(
		"marketing",
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Marketing.Topic},
		postcommit.NewMarketingHandler(s.ctx, marketing.New(cfg.Marketing)),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	xcontext.Logger(s.ctx).Infof("Starting marketing subscriber on topic %s", cfg.Marketing.Topic)
	go subscriber.Subscribe(ctx)

	<-ctx.Done()
	return subscriber.Stop(s.ctx)
}
