package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2/jwt"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const scopeDrive = "https://www.googleapis.com/auth/drive"

// Credentials is the opaque service-account bundle for the shared
// feedback log. PrivateKey may carry literal "\n" sequences when
// injected through env vars; they are unescaped here.
type Credentials struct {
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string
	ClientID     string
}

// RemoteLog is the external append-only log interface the feedback
// logger mirrors into. Faked in tests.
type RemoteLog interface {
	// FindFile looks an object up by exact name within the folder.
	// Returns ("", nil) when no such object exists.
	FindFile(ctx context.Context, name string) (fileID string, err error)
	Download(ctx context.Context, fileID string) ([]byte, error)
	Create(ctx context.Context, name string, content []byte) error
	Replace(ctx context.Context, fileID string, content []byte) error
	FolderLink() string
}

// Client talks to Google Drive v3 with service-account credentials.
type Client struct {
	svc      *drive.Service
	folderID string
}

func NewClient(ctx context.Context, creds Credentials, folderID string) (*Client, error) {
	conf := &jwt.Config{
		Email:        creds.ClientEmail,
		PrivateKey:   []byte(strings.ReplaceAll(creds.PrivateKey, `\n`, "\n")),
		PrivateKeyID: creds.PrivateKeyID,
		Scopes:       []string{scopeDrive},
		TokenURL:     "https://oauth2.googleapis.com/token",
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{svc: svc, folderID: folderID}, nil
}

func (c *Client) FindFile(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", name, c.folderID)
	list, err := c.svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to list drive files: %w", err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	res, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file: %w", err)
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}

func (c *Client) Create(ctx context.Context, name string, content []byte) error {
	meta := &drive.File{
		Name:    name,
		Parents: []string{c.folderID},
	}
	_, err := c.svc.Files.Create(meta).
		Media(bytes.NewReader(content)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to create drive file: %w", err)
	}
	return nil
}

func (c *Client) Replace(ctx context.Context, fileID string, content []byte) error {
	_, err := c.svc.Files.Update(fileID, &drive.File{}).
		Media(bytes.NewReader(content)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to replace drive file: %w", err)
	}
	return nil
}

func (c *Client) FolderLink() string {
	return "https://drive.google.com/drive/folders/" + c.folderID
}
