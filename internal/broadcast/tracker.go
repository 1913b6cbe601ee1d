package broadcast

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

const (
	openIssueStateConstant        = "open"
	baseURLPathSeparatorConstant  = "/"
	trackerBaseURLInvalidConstant = "base URL must be absolute"
	trackerClientMissingConstant  = "github client must be provided"
)

// Issue is the subset of an issue the broadcaster needs.
type Issue struct {
	Number        int
	Title         string
	IsPullRequest bool
}

// IssuePage is one page of a labeled issue listing. NextPage is zero on the
// last page.
type IssuePage struct {
	Issues     []Issue
	NextPage   int
	StatusCode int
}

// IssueTracker lists labeled issues and posts comments on them.
type IssueTracker interface {
	ListLabeledIssues(requestContext context.Context, owner string, repository string, label string, page int, perPage int) (IssuePage, error)
	CreateComment(requestContext context.Context, owner string, repository string, number int, body string) (int, error)
}

// GitHubTracker implements IssueTracker against the GitHub REST API.
type GitHubTracker struct {
	client *github.Client
}

// NewGitHubTracker builds a tracker authenticated with token. An empty token
// yields an anonymous client. baseURL overrides the API root when set.
func NewGitHubTracker(clientContext context.Context, token string, baseURL string) (*GitHubTracker, error) {
	var httpClient *http.Client
	if trimmedToken := strings.TrimSpace(token); len(trimmedToken) > 0 {
		httpClient = oauth2.NewClient(clientContext, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: trimmedToken}))
	}

	client := github.NewClient(httpClient)
	if trimmedBaseURL := strings.TrimSpace(baseURL); len(trimmedBaseURL) > 0 {
		parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
		if parseError != nil {
			return nil, InvalidInputError{FieldName: baseURLFieldNameConstant, Message: parseError.Error()}
		}
		if !parsedBaseURL.IsAbs() {
			return nil, InvalidInputError{FieldName: baseURLFieldNameConstant, Message: trackerBaseURLInvalidConstant}
		}
		if !strings.HasSuffix(parsedBaseURL.Path, baseURLPathSeparatorConstant) {
			parsedBaseURL.Path += baseURLPathSeparatorConstant
		}
		client.BaseURL = parsedBaseURL
	}

	return NewGitHubTrackerWithClient(client)
}

// NewGitHubTrackerWithClient wraps an existing go-github client.
func NewGitHubTrackerWithClient(client *github.Client) (*GitHubTracker, error) {
	if client == nil {
		return nil, errors.New(trackerClientMissingConstant)
	}
	return &GitHubTracker{client: client}, nil
}

// ListLabeledIssues returns one page of open issues carrying label.
func (tracker *GitHubTracker) ListLabeledIssues(requestContext context.Context, owner string, repository string, label string, page int, perPage int) (IssuePage, error) {
	listOptions := &github.IssueListByRepoOptions{
		State:       openIssueStateConstant,
		Labels:      []string{label},
		ListOptions: github.ListOptions{Page: page, PerPage: perPage},
	}

	issues, response, listError := tracker.client.Issues.ListByRepo(requestContext, owner, repository, listOptions)
	issuePage := IssuePage{StatusCode: responseStatus(response)}
	if listError != nil {
		return issuePage, listError
	}

	issuePage.Issues = make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue == nil {
			continue
		}
		issuePage.Issues = append(issuePage.Issues, Issue{
			Number:        issue.GetNumber(),
			Title:         issue.GetTitle(),
			IsPullRequest: issue.IsPullRequest(),
		})
	}
	issuePage.NextPage = response.NextPage

	return issuePage, nil
}

// CreateComment posts body on the issue and returns the HTTP status.
func (tracker *GitHubTracker) CreateComment(requestContext context.Context, owner string, repository string, number int, body string) (int, error) {
	_, response, createError := tracker.client.Issues.CreateComment(requestContext, owner, repository, number, &github.IssueComment{Body: github.String(body)})
	return responseStatus(response), createError
}

func responseStatus(response *github.Response) int {
	if response == nil || response.Response == nil {
		return 0
	}
	return response.StatusCode
}
