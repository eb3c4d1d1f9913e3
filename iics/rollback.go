package iics

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	promote "github.com/nrislani/iics-promote/errors"
)

// DefaultRollbackType is the asset type rollbacks target when none is
// given. DTEMPLATE is a mapping.
const DefaultRollbackType = "DTEMPLATE"

// Rollback restores an asset to the version from the commit immediately
// preceding its latest one. The whole chain mutates org state and therefore
// runs single-attempt.
func (c *Client) Rollback(ctx context.Context, path, objectName, objectType string) (*JobResult, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	if path == "" || objectName == "" {
		return nil, promote.ConfigInvalid("a path and object name are required for rollback")
	}
	if objectType == "" {
		objectType = DefaultRollbackType
	}
	objectType = strings.ToUpper(objectType)
	fullPath := path + "/" + objectName

	c.log.WithFields(map[string]interface{}{
		"path":   path,
		"object": objectName,
		"type":   objectType,
	}).Info("rolling back object")

	previousHash, err := c.previousCommitHash(ctx, fullPath, objectType, objectName)
	if err != nil {
		return nil, err
	}

	objectID, err := c.lookupObjectID(ctx, fullPath, objectType, path, objectName)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"previousHash": previousHash,
		"objectId":     objectID,
	}).Info("restoring previous version")

	return c.PullObject(ctx, previousHash, objectID)
}

// previousCommitHash finds the commit before the asset's latest one in its
// history. An asset with a single commit has nothing to roll back to.
func (c *Client) previousCommitHash(ctx context.Context, fullPath, objectType, objectName string) (string, error) {
	query := fmt.Sprintf("path=='%s' and type=='%s'", fullPath, objectType)
	endpoint := fmt.Sprintf("%s/public/core/v3/commitHistory?q=%s",
		c.session.PodURL, url.QueryEscape(query))

	var history commitHistoryResponse
	if err := c.getRetry(ctx, "get commit history", endpoint, &history); err != nil {
		return "", promote.RequestFailed("get commit history", err).
			WithDetail("path", fullPath)
	}

	if len(history.Commits) < 2 {
		return "", promote.RollbackFailed(objectName, "no previous version in commit history")
	}
	return history.Commits[1].Hash, nil
}

// lookupObjectID resolves the org-internal id for an asset path.
func (c *Client) lookupObjectID(ctx context.Context, fullPath, objectType, path, objectName string) (string, error) {
	endpoint := fmt.Sprintf("%s/public/core/v3/lookup", c.session.PodURL)

	var body lookupResponse
	err := c.post(ctx, endpoint, lookupRequest{
		Objects: []lookupTarget{{Path: fullPath, Type: objectType}},
	}, &body)
	if err != nil {
		return "", promote.RequestFailed("lookup object", err).
			WithDetail("path", fullPath)
	}

	if len(body.Objects) == 0 {
		return "", promote.ObjectNotFound(path, objectName)
	}
	return body.Objects[0].ID, nil
}
