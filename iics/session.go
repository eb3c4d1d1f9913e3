package iics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	promote "github.com/nrislani/iics-promote/errors"
	"github.com/nrislani/iics-promote/logging"
)

// sessionTTL is how long IICS keeps an idle session alive. Promotion runs
// finish well inside it; the margin only guards against clock skew.
const sessionTTL = 30 * time.Minute

// Login authenticates against the IICS login endpoint and returns a session
// for the org. There is deliberately no retry here: bad credentials should
// fail fast, not after three backoff cycles.
//
// podURL may be empty, in which case the base API URL advertised by the
// Integration Cloud product in the login response is used.
func Login(ctx context.Context, loginURL, podURL, username, password string) (*Session, error) {
	log := logging.NewLogger("iics")

	if loginURL == "" || username == "" || password == "" {
		return nil, promote.ConfigInvalid("login URL, username, and password are required for login")
	}

	log.WithField("loginUrl", loginURL).Infof("logging in as %s", username)

	// A throwaway client: login happens exactly once, before any Client exists.
	c := &Client{httpClient: &http.Client{Timeout: 60 * time.Second}, log: log}

	var body loginResponse
	url := loginURL + "/saas/public/core/v3/login"
	if err := c.post(ctx, url, loginRequest{Username: username, Password: password}, &body); err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return nil, promote.AuthFailed(se.Status, se.Snippet)
		}
		return nil, promote.Wrap(err, promote.ErrCodeAuthFailed, "login request failed")
	}

	if body.UserInfo.SessionID == "" {
		return nil, promote.New(promote.ErrCodeAuthFailed, "login response carried no session id")
	}

	session := &Session{
		LoginURL:  loginURL,
		PodURL:    podURL,
		SessionID: body.UserInfo.SessionID,
		Expiry:    time.Now().Add(sessionTTL),
	}
	if session.PodURL == "" {
		for _, product := range body.Products {
			if product.BaseAPIURL != "" {
				session.PodURL = product.BaseAPIURL
				break
			}
		}
	}
	if session.PodURL == "" {
		return nil, promote.ConfigMissing("IICS_POD_URL")
	}

	log.Info("login successful")
	return session, nil
}

// Logout ends the session. Failures are logged and swallowed: the session
// would expire on its own anyway.
func (c *Client) Logout(ctx context.Context) {
	if !c.session.Valid() {
		return
	}
	url := fmt.Sprintf("%s/public/core/v3/logout", c.session.PodURL)
	if err := c.post(ctx, url, nil, nil); err != nil {
		c.log.Warnf("logout failed (session may already be expired): %v", err)
		return
	}
	c.log.Debug("logged out")
}
