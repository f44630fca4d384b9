package main

import "github.com/urfave/cli/v2"

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "rewards"
	s.app.Usage = "Social engagement rewards engine"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the toml config file",
			EnvVars: []string{"REWARDS_CONFIG"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves registration, submission and stats apis.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database",
			Category:    "Database",
			Description: `Used to apply the versioned migrations of the database.`,
		},
		{
			Action:      s.startMarketing,
			Name:        "marketing",
			Usage:       "Start service marketing",
			Category:    "Worker",
			Description: `Used to start worker that consumes submission events and tags marketing contacts.`,
		},
	}
}
