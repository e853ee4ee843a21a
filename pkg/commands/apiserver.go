package commands

import (
	"context"
	"fmt"

	"github.com/pwaforge/pwaforge/pkg/apiserver"
	"github.com/pwaforge/pwaforge/pkg/backend"
	"github.com/pwaforge/pwaforge/pkg/db"
	"github.com/pwaforge/pwaforge/pkg/token"
	"github.com/pwaforge/pwaforge/pkg/version"
	"github.com/rancher/wrangler/pkg/signals"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type apiServerCommand struct{}

func (s *apiServerCommand) Execute(c *cli.Context) error {
	ctx := signals.SetupSignalHandler(context.Background())

	log := logrus.WithField("command", "api-server")

	log.Infof("version: %v", version.Get())

	database, err := db.New(ctx, c.String("sql-dialect"), c.String("sql-dsn"), &gorm.Config{
		Logger: db.NewLogger(c.String("log-level")),
	})
	if err != nil {
		return fmt.Errorf("refusing to start, store is not usable: %w", err)
	}

	verifier, err := buildVerifier(c)
	if err != nil {
		return err
	}

	var icons backend.IconStore
	if c.String("s3-bucket") != "" {
		icons, err = backend.NewS3IconStore(c.String("s3-bucket"), c.String("s3-region"))
		if err != nil {
			return err
		}
	} else {
		log.Info("no s3 bucket configured, icon uploads are disabled")
	}

	back := backend.NewBackend(database, icons)

	apiServer := apiserver.NewAPIServer(ctx, log, c.Int("port"), c.Int("metrics-port"), c.String("allowed-origin"))

	return apiServer.Start(back, verifier)
}

func buildVerifier(c *cli.Context) (token.Verifier, error) {
	if secret := c.String("jwt-secret"); secret != "" {
		return token.NewJWTVerifier(secret, c.String("jwt-issuer")), nil
	}

	hash := c.String("static-token-hash")
	owner := c.String("static-owner")
	if hash != "" && owner != "" {
		return token.NewStaticVerifier(hash, owner), nil
	}

	return nil, fmt.Errorf("no identity verifier is configured: set jwt-secret or static-token-hash and static-owner")
}

func serverCommand() *cli.Command {
	cmd := apiServerCommand{}

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port for the HTTP Server",
			EnvVars: []string{"FORGE_PORT", "PORT"},
			Value:   4810,
		},
		&cli.IntFlag{
			Name:    "metrics-port",
			Usage:   "Port for the metrics and liveness listener, 0 disables it",
			EnvVars: []string{"FORGE_METRICS_PORT", "METRICS_PORT"},
			Value:   4811,
		},
		&cli.StringFlag{
			Name:    "sql-dialect",
			Usage:   "The type of sql to use, sqlite or mysql",
			EnvVars: []string{"FORGE_SQL_DIALECT", "SQL_DIALECT"},
			Value:   "sqlite",
		},
		&cli.StringFlag{
			Name:    "sql-dsn",
			Usage:   "The DSN to use to connect to",
			EnvVars: []string{"FORGE_SQL_DSN", "SQL_DSN"},
			Value:   "file:pwaforge.sqlite",
		},
		&cli.StringFlag{
			Name:    "allowed-origin",
			Usage:   "Origin allowed for cross-origin management API calls, typically the builder frontend",
			EnvVars: []string{"FORGE_ALLOWED_ORIGIN", "ALLOWED_ORIGIN"},
		},
		&cli.StringFlag{
			Name:    "jwt-secret",
			Usage:   "HS256 secret for verifying owner tokens",
			EnvVars: []string{"FORGE_JWT_SECRET", "JWT_SECRET"},
		},
		&cli.StringFlag{
			Name:    "jwt-issuer",
			Usage:   "Required issuer claim for owner tokens, empty disables the check",
			EnvVars: []string{"FORGE_JWT_ISSUER", "JWT_ISSUER"},
			Value:   "pwaforge",
		},
		&cli.StringFlag{
			Name:    "static-token-hash",
			Usage:   "bcrypt hash of a single pre-shared owner token, used when no jwt-secret is set",
			EnvVars: []string{"FORGE_STATIC_TOKEN_HASH", "STATIC_TOKEN_HASH"},
		},
		&cli.StringFlag{
			Name:    "static-owner",
			Usage:   "Owner id the pre-shared token maps to",
			EnvVars: []string{"FORGE_STATIC_OWNER", "STATIC_OWNER"},
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "S3 bucket for uploaded icons, empty disables uploads",
			EnvVars: []string{"FORGE_S3_BUCKET", "S3_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Usage:   "Region of the icon bucket",
			EnvVars: []string{"FORGE_S3_REGION", "S3_REGION"},
			Value:   "us-east-1",
		},
	}

	return &cli.Command{
		Name:   "api-server",
		Usage:  "pwaforge api server",
		Action: cmd.Execute,
		Flags:  append(flags, GlobalFlags()...),
		Before: Before,
	}
}
