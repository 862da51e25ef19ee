// Package delivery implements feed delivery to external portals.
package delivery

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"
)

// defaultFTPPort is used when the configured host carries no port
const defaultFTPPort = "21"

// FTPClient uploads feed files to portal FTP servers. Every upload is a
// single dial-login-store-quit cycle; no connection is reused between
// targets so one misbehaving server cannot poison another delivery.
type FTPClient struct {
	dialTimeout time.Duration
	logger      *zap.Logger
}

// FTPClientOption is a functional option for configuring FTPClient
type FTPClientOption func(*FTPClient)

// WithLogger sets a custom logger for FTPClient
func WithLogger(logger *zap.Logger) FTPClientOption {
	return func(c *FTPClient) {
		c.logger = logger
	}
}

// NewFTPClient creates a new FTPClient with the given dial timeout
func NewFTPClient(dialTimeout time.Duration, opts ...FTPClientOption) *FTPClient {
	client := &FTPClient{
		dialTimeout: dialTimeout,
		logger:      zap.NewNop(),
	}
	if client.dialTimeout <= 0 {
		client.dialTimeout = 30 * time.Second
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Upload connects to the given FTP server, authenticates and stores the
// content under the given remote filename
func (c *FTPClient) Upload(ctx context.Context, host, user, password, filename string, content []byte) error {
	addr := ensurePort(host)

	c.logger.Debug("connecting to ftp server",
		zap.String("addr", addr),
		zap.String("filename", filename),
	)

	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(c.dialTimeout),
	)
	if err != nil {
		return fmt.Errorf("connecting to ftp server %s: %w", addr, err)
	}
	defer func() {
		if quitErr := conn.Quit(); quitErr != nil {
			c.logger.Warn("error closing ftp connection",
				zap.String("addr", addr),
				zap.Error(quitErr),
			)
		}
	}()

	if err := conn.Login(user, password); err != nil {
		return fmt.Errorf("ftp authentication failed for user %s: %w", user, err)
	}

	if err := conn.Type(ftp.TransferTypeBinary); err != nil {
		c.logger.Warn("failed to set binary transfer mode", zap.Error(err))
	}

	if err := conn.Stor(filename, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("storing file %s: %w", filename, err)
	}

	c.logger.Debug("file uploaded",
		zap.String("addr", addr),
		zap.String("filename", filename),
		zap.Int("size_bytes", len(content)),
	)

	return nil
}

// ensurePort appends the default FTP port when the host carries none
func ensurePort(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(strings.TrimSpace(host), defaultFTPPort)
}
