package commands

import (
	"fmt"
	"time"

	"github.com/pwaforge/pwaforge/pkg/rand"
	"github.com/pwaforge/pwaforge/pkg/token"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

const staticTokenLength = 32

func mintToken(c *cli.Context) error {
	signed, err := token.Mint(c.String("jwt-secret"), c.String("jwt-issuer"), c.String("owner"), c.Duration("ttl"))
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", signed)
	return nil
}

// generateToken prints a fresh random token together with its bcrypt hash,
// for wiring the api-server's static verifier.
func generateToken(c *cli.Context) error {
	raw := rand.Token(staticTokenLength)

	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	fmt.Printf("token: %s\n", raw)
	fmt.Printf("hash:  %s\n", string(hash))
	return nil
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint and hash owner tokens",
		Subcommands: []*cli.Command{
			{
				Name:   "mint",
				Usage:  "mint a signed JWT for an owner",
				Action: mintToken,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "owner",
						Usage:    "owner id to put in the subject claim",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "jwt-secret",
						Usage:    "HS256 secret, must match the api-server's",
						EnvVars:  []string{"FORGE_JWT_SECRET", "JWT_SECRET"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "jwt-issuer",
						Usage:   "issuer claim",
						EnvVars: []string{"FORGE_JWT_ISSUER", "JWT_ISSUER"},
						Value:   "pwaforge",
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "token lifetime",
						Value: 24 * time.Hour,
					},
				},
			},
			{
				Name:   "generate",
				Usage:  "generate a random pre-shared token and its bcrypt hash",
				Action: generateToken,
			},
		},
	}
}
