package iics

import (
	"context"
	"fmt"
	"net/url"

	promote "github.com/nrislani/iics-promote/errors"
)

// GetChangedObjects lists the assets a commit touched, filtered to the
// given resource type. Results keep the order the API returned them in.
// The read is idempotent and retried on transient failures.
func (c *Client) GetChangedObjects(ctx context.Context, commitHash, repoName, resourceType string) ([]ChangedObject, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	if commitHash == "" {
		return nil, promote.ConfigInvalid("a commit hash is required")
	}

	endpoint := fmt.Sprintf("%s/public/core/v3/commit/%s", c.session.PodURL, commitHash)
	if repoName != "" {
		endpoint += "?repoConnectionName=" + url.QueryEscape(repoName)
	}

	c.log.WithField("commit", commitHash).Info("fetching changed objects")

	var body commitResponse
	if err := c.getRetry(ctx, "get changed objects", endpoint, &body); err != nil {
		return nil, promote.RequestFailed("get changed objects", err).
			WithDetail("commitHash", commitHash)
	}

	var objects []ChangedObject
	for _, change := range body.Changes {
		if resourceType != "" && change.Type != resourceType {
			continue
		}
		change.CommitHash = commitHash
		objects = append(objects, change)
	}

	c.log.WithFields(map[string]interface{}{
		"commit":   commitHash,
		"total":    len(body.Changes),
		"matching": len(objects),
		"type":     resourceType,
	}).Info("changed objects fetched")

	return objects, nil
}
