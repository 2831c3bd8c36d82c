package assets

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"PromoPilot/internal/config"
	"PromoPilot/internal/lib/sl"
)

// DriveResolver turns catalog image references into shareable Google Drive
// links. Like the catalog client it authenticates per call.
type DriveResolver struct {
	credentials []byte
	log         *slog.Logger
}

// NewDriveResolver creates a resolver using the shared service account.
func NewDriveResolver(conf *config.Config, log *slog.Logger) *DriveResolver {
	return &DriveResolver{
		credentials: []byte(conf.Google.Credentials),
		log:         log.With(sl.Module("assets")),
	}
}

// ShareableLink resolves a Drive file id to its web view link.
func (r *DriveResolver) ShareableLink(ctx context.Context, assetID string) (string, error) {
	jwtConf, err := google.JWTConfigFromJSON(r.credentials, drive.DriveReadonlyScope)
	if err != nil {
		return "", fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(jwtConf.TokenSource(ctx)))
	if err != nil {
		return "", fmt.Errorf("creating drive service: %w", err)
	}

	file, err := svc.Files.Get(assetID).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("getting drive file %s: %w", assetID, err)
	}
	return file.WebViewLink, nil
}
