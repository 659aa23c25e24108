package hrms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// Record is one employee row as the upstream HRMS reports it.
type Record struct {
	EmployeeCode    string  `json:"employee_code"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Department      string  `json:"department"`
	Capability      string  `json:"capability"`
	Band            string  `json:"band"`
	Team            string  `json:"team"`
	DeliveryUnit    string  `json:"delivery_unit"`
	LineManagerCode *string `json:"line_manager_code"`
	JoiningDate     string  `json:"joining_date"`
	Active          bool    `json:"active"`
}

// Page is one page of the upstream employee listing.
type Page struct {
	Records    []Record `json:"records"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
}

// AssignmentRecord is one project assignment as the upstream HRMS
// reports it. Employee and supervisor arrive as codes, not ids.
type AssignmentRecord struct {
	EmployeeCode   string `json:"employee_code"`
	ProjectCode    string `json:"project_code"`
	ProjectName    string `json:"project_name"`
	SupervisorCode string `json:"supervisor_code"`
	Active         bool   `json:"active"`
}

// AssignmentPage is one page of the upstream assignment listing.
type AssignmentPage struct {
	Records    []AssignmentRecord `json:"records"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

type Client interface {
	// FetchEmployees retrieves one page of the upstream employee roster.
	FetchEmployees(ctx context.Context, page int, pageSize int) (Page, error)

	// FetchAssignments retrieves one page of the upstream project
	// assignment listing.
	FetchAssignments(ctx context.Context, page int, pageSize int) (AssignmentPage, error)
}

type ClientImpl struct {
	baseURL string
	config  *clientcredentials.Config
}

func NewClient(baseURL string, clientID string, clientSecret string, tokenURL string) Client {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &ClientImpl{baseURL: baseURL, config: config}
}

func (c *ClientImpl) FetchEmployees(ctx context.Context, page int, pageSize int) (Page, error) {
	var result Page
	if err := c.getPage(ctx, "/employees", page, pageSize, &result); err != nil {
		return Page{}, err
	}
	return result, nil
}

func (c *ClientImpl) FetchAssignments(ctx context.Context, page int, pageSize int) (AssignmentPage, error) {
	var result AssignmentPage
	if err := c.getPage(ctx, "/assignments", page, pageSize, &result); err != nil {
		return AssignmentPage{}, err
	}
	return result, nil
}

func (c *ClientImpl) getPage(ctx context.Context, path string, page int, pageSize int, out any) error {
	client := c.config.Client(ctx)
	client.Timeout = 30 * time.Second

	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to build hrms url: %w", err)
	}
	query := endpoint.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build hrms request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch hrms %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hrms returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode hrms response: %w", err)
	}

	return nil
}
