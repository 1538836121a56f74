// Command token issues an operator JWT for the gateway API. It reads
// APP_TOKEN_SIGN_KEY and APP_TOKEN_ISSUER like the server does.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/service"
)

func main() {
	operator := flag.String("operator", "", "operator name put into the token subject")
	ttl := flag.Duration("ttl", service.DefaultTokenDuration, "token lifetime")
	flag.Parse()

	log := logger.NewLogger("hub-token", "warn")
	if *operator == "" {
		log.Fatal().Msg("-operator is required")
	}

	app, err := config.GetAppConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	token, err := service.NewAuthService(*app, *ttl, log).CreateToken(context.Background(), *operator)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token")
	}

	fmt.Fprintln(os.Stdout, token.SignedString)
	fmt.Fprintf(os.Stderr, "expires at %s\n", token.ExpiresAt.Time.Format(time.RFC3339))
}
