package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bandtools/gigplan/internal/config"
	"github.com/bandtools/gigplan/pkg/clients/geoclient"
	"github.com/bandtools/gigplan/pkg/clients/gmailclient"
	"github.com/bandtools/gigplan/pkg/core/availability"
	"github.com/bandtools/gigplan/pkg/core/model"
	"github.com/bandtools/gigplan/pkg/core/roster"
	"github.com/bandtools/gigplan/pkg/core/useradmin"
	"github.com/bandtools/gigplan/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Database  db.Database
	Roster    *roster.Manager
	UserAdmin *useradmin.Manager
	Recorder  *availability.Recorder
	Geo       *geoclient.Client
	Logger    *zap.Logger
	Session   model.Session
	Ctx       context.Context
	Env       string

	gmailClient *gmailclient.Client
}

// Gmail lazily creates the Gmail client so commands that never send email
// don't trigger the OAuth flow
func (app *AppContext) Gmail() (*gmailclient.Client, error) {
	if app.gmailClient != nil {
		return app.gmailClient, nil
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	client, err := gmailclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.gmailClient = client
	return client, nil
}
