package broadcast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	ownerFieldNameConstant               = "owner"
	repositoryFieldNameConstant          = "repository"
	labelFieldNameConstant               = "label"
	commentFieldNameConstant             = "comment"
	baseURLFieldNameConstant             = "base URL"
	requiredFieldMessageConstant         = "must be provided"
	trackerMissingMessageConstant        = "issue tracker must be provided"
	firstPageConstant                    = 1
	commentedMessageTemplateConstant     = "Commented on issue #%d - Status: %d\n"
	plannedMessageTemplateConstant       = "Would comment on issue #%d - %s\n"
	fetchFailedMessageTemplateConstant   = "Failed to fetch issues - Status: %d\n"
	logMessagePageFetchedConstant        = "issues page fetched"
	logMessagePullRequestSkippedConstant = "pull request skipped"
	logMessageCommentFailedConstant      = "comment failed"
	logMessageFetchFailedConstant        = "issues page fetch failed"
	logMessageBroadcastCompletedConstant = "broadcast completed"
	logFieldOwnerConstant                = "owner"
	logFieldRepositoryConstant           = "repository"
	logFieldLabelConstant                = "label"
	logFieldPageConstant                 = "page"
	logFieldIssueCountConstant           = "issues"
	logFieldIssueNumberConstant          = "issue"
	logFieldStatusCodeConstant           = "status"
	logFieldPagesConstant                = "pages"
	logFieldCommentedConstant            = "commented"
	logFieldPlannedConstant              = "planned"
	logFieldSkippedConstant              = "skipped_pull_requests"
	logFieldFailedConstant               = "failed_comments"
	logFieldDryRunConstant               = "dry_run"
)

// Campaign describes one reminder broadcast.
type Campaign struct {
	Owner      string
	Repository string
	Label      string
	Comment    string
	PageSize   int
	DryRun     bool
}

// Result counts what a broadcast did.
type Result struct {
	PagesFetched        int
	Commented           int
	Planned             int
	SkippedPullRequests int
	FailedComments      int
}

// Dependencies captures collaborators required to broadcast.
type Dependencies struct {
	Tracker IssueTracker
	Output  io.Writer
	Logger  *zap.Logger
}

// Service walks labeled issues page by page and comments on each one.
type Service struct {
	dependencies Dependencies
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Tracker == nil {
		return nil, errors.New(trackerMissingMessageConstant)
	}
	if dependencies.Output == nil {
		dependencies.Output = io.Discard
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Service{dependencies: dependencies}, nil
}

// Run broadcasts the campaign. A page that cannot be fetched ends the run
// with a PageFetchError; comments already posted stay posted. A failed
// comment is counted and the run continues.
func (service *Service) Run(executionContext context.Context, campaign Campaign) (Result, error) {
	sanitizedCampaign, campaignError := campaign.sanitize()
	if campaignError != nil {
		return Result{}, campaignError
	}

	logger := service.dependencies.Logger.With(
		zap.String(logFieldOwnerConstant, sanitizedCampaign.Owner),
		zap.String(logFieldRepositoryConstant, sanitizedCampaign.Repository),
		zap.String(logFieldLabelConstant, sanitizedCampaign.Label),
		zap.Bool(logFieldDryRunConstant, sanitizedCampaign.DryRun),
	)

	result := Result{}
	for page := firstPageConstant; page > 0; {
		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}

		issuePage, listError := service.dependencies.Tracker.ListLabeledIssues(
			executionContext,
			sanitizedCampaign.Owner,
			sanitizedCampaign.Repository,
			sanitizedCampaign.Label,
			page,
			sanitizedCampaign.PageSize,
		)
		if listError != nil || !successfulStatus(issuePage.StatusCode) {
			service.printf(fetchFailedMessageTemplateConstant, issuePage.StatusCode)
			logger.Warn(logMessageFetchFailedConstant, zap.Int(logFieldPageConstant, page), zap.Int(logFieldStatusCodeConstant, issuePage.StatusCode), zap.Error(listError))
			return result, PageFetchError{Page: page, StatusCode: issuePage.StatusCode, Cause: listError}
		}

		result.PagesFetched++
		logger.Debug(logMessagePageFetchedConstant, zap.Int(logFieldPageConstant, page), zap.Int(logFieldIssueCountConstant, len(issuePage.Issues)))

		for _, issue := range issuePage.Issues {
			service.handleIssue(executionContext, logger, sanitizedCampaign, issue, &result)
		}

		if issuePage.NextPage <= page {
			break
		}
		page = issuePage.NextPage
	}

	logger.Info(
		logMessageBroadcastCompletedConstant,
		zap.Int(logFieldPagesConstant, result.PagesFetched),
		zap.Int(logFieldCommentedConstant, result.Commented),
		zap.Int(logFieldPlannedConstant, result.Planned),
		zap.Int(logFieldSkippedConstant, result.SkippedPullRequests),
		zap.Int(logFieldFailedConstant, result.FailedComments),
	)

	return result, nil
}

func (service *Service) handleIssue(executionContext context.Context, logger *zap.Logger, campaign Campaign, issue Issue, result *Result) {
	if issue.IsPullRequest {
		result.SkippedPullRequests++
		logger.Debug(logMessagePullRequestSkippedConstant, zap.Int(logFieldIssueNumberConstant, issue.Number))
		return
	}

	if campaign.DryRun {
		result.Planned++
		service.printf(plannedMessageTemplateConstant, issue.Number, issue.Title)
		return
	}

	statusCode, commentError := service.dependencies.Tracker.CreateComment(executionContext, campaign.Owner, campaign.Repository, issue.Number, campaign.Comment)
	service.printf(commentedMessageTemplateConstant, issue.Number, statusCode)
	if commentError != nil || !successfulStatus(statusCode) {
		result.FailedComments++
		logger.Warn(logMessageCommentFailedConstant, zap.Int(logFieldIssueNumberConstant, issue.Number), zap.Int(logFieldStatusCodeConstant, statusCode), zap.Error(commentError))
		return
	}
	result.Commented++
}

func (service *Service) printf(format string, arguments ...any) {
	fmt.Fprintf(service.dependencies.Output, format, arguments...)
}

func (campaign Campaign) sanitize() (Campaign, error) {
	sanitized := Campaign{
		Owner:      strings.TrimSpace(campaign.Owner),
		Repository: strings.TrimSpace(campaign.Repository),
		Label:      strings.TrimSpace(campaign.Label),
		Comment:    strings.TrimSpace(campaign.Comment),
		PageSize:   campaign.PageSize,
		DryRun:     campaign.DryRun,
	}

	requiredFields := []struct {
		name  string
		value string
	}{
		{name: ownerFieldNameConstant, value: sanitized.Owner},
		{name: repositoryFieldNameConstant, value: sanitized.Repository},
		{name: labelFieldNameConstant, value: sanitized.Label},
		{name: commentFieldNameConstant, value: sanitized.Comment},
	}
	for _, requiredField := range requiredFields {
		if len(requiredField.value) == 0 {
			return Campaign{}, InvalidInputError{FieldName: requiredField.name, Message: requiredFieldMessageConstant}
		}
	}

	if sanitized.PageSize <= 0 {
		sanitized.PageSize = DefaultPageSize
	}

	return sanitized, nil
}

// successfulStatus accepts 2xx and zero, which means the tracker reported no status.
func successfulStatus(statusCode int) bool {
	if statusCode == 0 {
		return true
	}
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
