package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/rewards/internal/middleware"
	"github.com/questx-lab/rewards/pkg/prometheus"
	"github.com/questx-lab/rewards/pkg/router"
	"github.com/questx-lab/rewards/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadContext("api"); err != nil {
		return err
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	if err := s.loadDomains(); err != nil {
		return err
	}
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: s.router.Handler(),
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.shutdown(shutdownTimeout)
	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler())

	// These following APIs do not need authentication.
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/register", s.userDomain.Register)
		router.GET(publicRouter, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
	}

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		// User API
		router.POST(authRouter, "/verifyEmail", s.userDomain.VerifyEmail)
		router.POST(authRouter, "/linkTwitter", s.userDomain.LinkTwitter)
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)

		// Submission API
		router.POST(authRouter, "/submitPost", s.submissionDomain.Submit)
		router.GET(authRouter, "/getStats", s.submissionDomain.GetStats)
		router.GET(authRouter, "/getMySubmissions", s.submissionDomain.GetMySubmissions)
	}
}
