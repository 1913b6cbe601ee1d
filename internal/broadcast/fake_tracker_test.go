package broadcast_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/dynamic-superb/taskops/internal/broadcast"
)

type listCall struct {
	owner      string
	repository string
	label      string
	page       int
	perPage    int
}

type commentCall struct {
	number int
	body   string
}

type fakeTracker struct {
	pages         map[int]broadcast.IssuePage
	failingPages  map[int]int
	failingIssues map[int]int
	listCalls     []listCall
	commentCalls  []commentCall
}

func (tracker *fakeTracker) ListLabeledIssues(requestContext context.Context, owner string, repository string, label string, page int, perPage int) (broadcast.IssuePage, error) {
	tracker.listCalls = append(tracker.listCalls, listCall{owner: owner, repository: repository, label: label, page: page, perPage: perPage})
	if statusCode, failing := tracker.failingPages[page]; failing {
		return broadcast.IssuePage{StatusCode: statusCode}, errors.New(http.StatusText(statusCode))
	}
	issuePage := tracker.pages[page]
	if issuePage.StatusCode == 0 {
		issuePage.StatusCode = http.StatusOK
	}
	return issuePage, nil
}

func (tracker *fakeTracker) CreateComment(requestContext context.Context, owner string, repository string, number int, body string) (int, error) {
	tracker.commentCalls = append(tracker.commentCalls, commentCall{number: number, body: body})
	if statusCode, failing := tracker.failingIssues[number]; failing {
		return statusCode, errors.New(http.StatusText(statusCode))
	}
	return http.StatusCreated, nil
}
