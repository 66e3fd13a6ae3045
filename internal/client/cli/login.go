package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, checks them locally and submits them. It
// returns as soon as the request is issued; the verdict is printed by the
// notifier when the reply arrives. The secret is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	secret, err := getPassword(a.reader, os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if err := ValidateCredentials(identifier, secret); err != nil {
		return err
	}

	d, err := a.issuer.SubmitLogin(ctx, identifier, secret)
	if err != nil {
		return err
	}
	a.registry.Track(d)

	printlnFn("Login submitted, waiting for the server...")
	return nil
}

// Status prints the current server health and in-flight requests.
func (a *App) Status(ctx context.Context) error {
	printlnFn("server:", a.health.Status().String(), "|", "url:", a.config.ServerBaseURL)
	printlnFn("pending:",
		a.registry.Pending(client.KindHealth), "health,",
		a.registry.Pending(client.KindLogin), "login")
	return nil
}
