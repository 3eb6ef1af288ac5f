package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
)

const defaultTimeout = 10 * time.Second

// maxPageLimit mirrors the server's pagination cap. Requesting more makes
// the server silently fall back to its small default page size, so full
// fetches walk the pages at this size instead.
const maxPageLimit = 100

// AssignmentPage is one page of assignments in the list envelope.
type AssignmentPage struct {
	Items       []models.Assignment `json:"items"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	Total       int64               `json:"total"`
}

// MemberPage is one page of team members in the list envelope.
type MemberPage struct {
	Items       []models.TeamMember `json:"items"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	Total       int64               `json:"total"`
}

// APIError is a non-2xx response decoded into the standard error body.
type APIError struct {
	StatusCode int
	Detail     *dto.ErrorDetail
}

func (e *APIError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Detail.Code, e.Detail.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client is a thin HTTP client for the API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:3001".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error calling api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody dto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			apiErr.Detail = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// ListAssignments fetches one page of assignments.
func (c *Client) ListAssignments(ctx context.Context, q dto.AssignmentListQuery) (*AssignmentPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	for name, value := range map[string]string{
		"category":   q.Category,
		"status":     q.Status,
		"assigneeId": q.AssigneeID,
		"search":     q.Search,
		"sortBy":     q.SortBy,
		"sortOrder":  q.SortOrder,
	} {
		if value != "" {
			query.Set(name, value)
		}
	}

	page := &AssignmentPage{}
	if err := c.do(ctx, http.MethodGet, "/assignments", query, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// ListAllAssignments walks every page of the assignment listing and
// returns the complete board.
func (c *Client) ListAllAssignments(ctx context.Context, q dto.AssignmentListQuery) ([]models.Assignment, error) {
	q.Limit = maxPageLimit
	var all []models.Assignment
	for q.Page = 1; ; q.Page++ {
		page, err := c.ListAssignments(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.Items) == 0 || q.Page >= page.TotalPages {
			return all, nil
		}
	}
}

// CreateAssignment creates a new assignment.
func (c *Client) CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	if err := c.do(ctx, http.MethodPost, "/assignments", nil, req, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// UpdateAssignmentStatus changes an assignment's status.
func (c *Client) UpdateAssignmentStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	if err := c.do(ctx, http.MethodPatch, "/assignments/"+id+"/status", nil, req, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListMembers fetches one page of team members.
func (c *Client) ListMembers(ctx context.Context, q dto.TeamMemberListQuery) (*MemberPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Role != "" {
		query.Set("role", q.Role)
	}
	if q.IsActive != "" {
		query.Set("isActive", q.IsActive)
	}

	page := &MemberPage{}
	if err := c.do(ctx, http.MethodGet, "/team-members", query, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// ListAllMembers walks every page of the member listing and returns the
// complete roster.
func (c *Client) ListAllMembers(ctx context.Context, q dto.TeamMemberListQuery) ([]models.TeamMember, error) {
	q.Limit = maxPageLimit
	var all []models.TeamMember
	for q.Page = 1; ; q.Page++ {
		page, err := c.ListMembers(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.Items) == 0 || q.Page >= page.TotalPages {
			return all, nil
		}
	}
}

// CreateMember registers a new team member.
func (c *Client) CreateMember(ctx context.Context, req dto.CreateTeamMemberRequest) (*models.TeamMember, error) {
	member := &models.TeamMember{}
	if err := c.do(ctx, http.MethodPost, "/team-members", nil, req, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Overview fetches the analytics overview.
func (c *Client) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	overview := &dto.OverviewResponse{}
	if err := c.do(ctx, http.MethodGet, "/analytics/overview", nil, nil, overview); err != nil {
		return nil, err
	}
	return overview, nil
}
