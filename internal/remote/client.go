// Package remote is the HTTP client for the authoritative board store. It
// covers the full boundary surface: board fetch, task and group confirmation
// calls, attachment upload, and actor identity resolution.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/thenoetrevino/tavla/internal/models"
)

// Client talks JSON to the board server. Every request carries the
// configured bearer token; mutating requests additionally carry a
// client-generated request ID so server-side retries stay idempotent.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ Store = (*Client)(nil)

// NewClient creates a client for the given server. The http.Client's timeout
// bounds every request; the coordinator layers its own per-call context
// deadline on top for confirmation calls.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// do issues a request with a JSON body (nil for none) and decodes the JSON
// response into out (nil to discard). okNotFound treats a 404 as success,
// which the idempotent delete endpoints rely on.
func (c *Client) do(ctx context.Context, method, path string, body, out any, okNotFound bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req, method)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, okNotFound); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setCommonHeaders(req *http.Request, method string) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
}

func (c *Client) checkStatus(resp *http.Response, okNotFound bool) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		if okNotFound {
			return nil
		}
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
}

// FetchBoard loads the full group and task set for a board.
func (c *Client) FetchBoard(ctx context.Context, boardID string) (*BoardPayload, error) {
	var payload BoardPayload
	path := "/boards/" + url.PathEscape(boardID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload, false); err != nil {
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}
	return &payload, nil
}

// ConfirmTaskMutation applies a field-level change and returns the
// authoritative task, which may differ from the client's optimistic guess.
func (c *Client) ConfirmTaskMutation(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error) {
	var task models.Task
	path := "/tasks/" + url.PathEscape(taskID)
	if err := c.do(ctx, http.MethodPatch, path, patch, &task, false); err != nil {
		return nil, fmt.Errorf("failed to confirm task mutation: %w", err)
	}
	return &task, nil
}

// CreateTask creates a task and returns the server entity with its
// server-assigned identifier.
func (c *Client) CreateTask(ctx context.Context, fields NewTask) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", fields, &task, false); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// DeleteTask deletes a task. Deleting an already-deleted ID succeeds.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	path := "/tasks/" + url.PathEscape(taskID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CreateGroup creates a group on the board.
func (c *Client) CreateGroup(ctx context.Context, boardID, name string) (*models.Group, error) {
	var group models.Group
	body := map[string]string{"board_id": boardID, "name": name}
	if err := c.do(ctx, http.MethodPost, "/groups", body, &group, false); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// RenameGroup renames a group.
func (c *Client) RenameGroup(ctx context.Context, groupID, name string) (*models.Group, error) {
	var group models.Group
	path := "/groups/" + url.PathEscape(groupID)
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPatch, path, body, &group, false); err != nil {
		return nil, fmt.Errorf("failed to rename group: %w", err)
	}
	return &group, nil
}

// DeleteGroup deletes a group. Deleting an already-deleted ID succeeds.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	path := "/groups/" + url.PathEscape(groupID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// ReorderGroups sends the full new ordering and returns the canonical
// ordering as the server resolved it. Callers replace their local ordering
// with the response rather than trusting the optimistic guess, because
// ordering collisions are resolved server-side.
func (c *Client) ReorderGroups(ctx context.Context, boardID string, orderedGroupIDs []string) ([]*models.Group, error) {
	var groups []*models.Group
	path := "/boards/" + url.PathEscape(boardID) + "/group-order"
	body := map[string][]string{"ordered_group_ids": orderedGroupIDs}
	if err := c.do(ctx, http.MethodPut, path, body, &groups, false); err != nil {
		return nil, fmt.Errorf("failed to reorder groups: %w", err)
	}
	return groups, nil
}

// AddAttachment uploads a file to the task and returns the authoritative
// task including the new attachment. This is the only external call whose
// success the transition gate observes.
func (c *Client) AddAttachment(ctx context.Context, taskID string, file Upload) (*models.Task, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	path := "/tasks/" + url.PathEscape(taskID) + "/attachments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.setCommonHeaders(req, http.MethodPost)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, false); err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}
	var task models.Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &task, nil
}

// CurrentActor resolves the caller's identity and board-scoped role.
func (c *Client) CurrentActor(ctx context.Context) (*models.Actor, error) {
	var actor models.Actor
	if err := c.do(ctx, http.MethodGet, "/me", nil, &actor, false); err != nil {
		return nil, fmt.Errorf("failed to resolve actor: %w", err)
	}
	return &actor, nil
}
