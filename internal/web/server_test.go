package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/joblane/jobboard/internal/client"
	"github.com/joblane/jobboard/internal/domain/model"
)

type fakeAPI struct {
	jobs        []*model.Job
	fetchErr    error
	created     *model.Job
	createErr   error
	createDelay time.Duration
	createCalls atomic.Int32
	updated     *model.Job
	deleteErr   error
	deletedID   string
}

func (f *fakeAPI) FetchJobs(context.Context) ([]*model.Job, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.jobs, nil
}

func (f *fakeAPI) CreateJob(_ context.Context, _ *model.CreateJobRequest) (*model.Job, error) {
	f.createCalls.Add(1)
	if f.createDelay > 0 {
		time.Sleep(f.createDelay)
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeAPI) UpdateJob(_ context.Context, _ string, _ model.UpdateJobRequest) (*model.Job, error) {
	return f.updated, nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

func boardJob(id, title string) *model.Job {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	salary := "$100k"
	return &model.Job{
		ID:        id,
		Title:     title,
		Company:   "Acme",
		Location:  "Remote",
		Salary:    &salary,
		Type:      model.JobTypeFullTime,
		Status:    model.JobStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// uiClient wraps an httptest server with a cookie jar so a single browser
// session is simulated across requests.
func uiClient(t *testing.T, api *fakeAPI) (*httptest.Server, *http.Client) {
	t.Helper()
	server, err := NewServer(api, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func fetchDoc(t *testing.T, c *http.Client, url string) *html.Node {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)
	return doc
}

func postDoc(t *testing.T, c *http.Client, url string, form url.Values) *html.Node {
	t.Helper()
	resp, err := c.PostForm(url, form)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)
	return doc
}

// findByID walks the parsed document for an element with the given id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func countByAttr(n *html.Node, key, val string) int {
	count := 0
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == key && attr.Val == val {
				count++
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countByAttr(c, key, val)
	}
	return count
}

func TestBoard_ListsPostings(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{boardJob("a", "Backend Engineer"), boardJob("b", "SRE")}}
	ts, c := uiClient(t, api)

	doc := fetchDoc(t, c, ts.URL+"/")

	list := findByID(doc, "job-list")
	require.NotNil(t, list)
	assert.Contains(t, textContent(list), "Backend Engineer")
	assert.Contains(t, textContent(list), "SRE")
	assert.Equal(t, 1, countByAttr(doc, "data-job-id", "a"))
	assert.Nil(t, findByID(doc, "job-form"))
	assert.Nil(t, findByID(doc, "confirm-delete"))
}

func TestBoard_EmptyState(t *testing.T) {
	ts, c := uiClient(t, &fakeAPI{})

	doc := fetchDoc(t, c, ts.URL+"/")
	require.NotNil(t, findByID(doc, "empty-board"))
}

func TestBoard_FetchFailureShowsMessage(t *testing.T) {
	ts, c := uiClient(t, &fakeAPI{fetchErr: client.ErrFetchJobsFailed})

	doc := fetchDoc(t, c, ts.URL+"/")
	flash := findByID(doc, "flash")
	require.NotNil(t, flash)
	assert.Equal(t, "failed to fetch jobs", textContent(flash))
}

func TestBoard_CreateFlow(t *testing.T) {
	api := &fakeAPI{created: boardJob("new", "Fresh Posting")}
	ts, c := uiClient(t, api)

	// Establish the session and open the form.
	fetchDoc(t, c, ts.URL+"/")
	doc := postDoc(t, c, ts.URL+"/jobs/new", nil)
	require.NotNil(t, findByID(doc, "job-form"))

	// Submit a valid form.
	doc = postDoc(t, c, ts.URL+"/jobs/submit", url.Values{
		"title":    {"Fresh Posting"},
		"company":  {"Acme"},
		"location": {"Remote"},
		"type":     {"Full-time"},
		"status":   {"Active"},
	})

	assert.Nil(t, findByID(doc, "job-form"), "form closes on success")
	flash := findByID(doc, "flash")
	require.NotNil(t, flash)
	assert.Equal(t, "Job created", textContent(flash))
	assert.Equal(t, 1, countByAttr(doc, "data-job-id", "new"))
}

func TestBoard_ConcurrentSubmitsCreateOnce(t *testing.T) {
	api := &fakeAPI{created: boardJob("new", "Fresh Posting"), createDelay: 50 * time.Millisecond}
	ts, c := uiClient(t, api)

	fetchDoc(t, c, ts.URL+"/")
	postDoc(t, c, ts.URL+"/jobs/new", nil)

	form := url.Values{
		"title":    {"Fresh Posting"},
		"company":  {"Acme"},
		"location": {"Remote"},
		"type":     {"Full-time"},
		"status":   {"Active"},
	}

	// A double-clicked submit: both posts share the session cookie, so they
	// serialize on the session lock and only the first one creates.
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.PostForm(ts.URL+"/jobs/submit", form)
			assert.NoError(t, err)
			if err == nil {
				assert.NoError(t, resp.Body.Close())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), api.createCalls.Load())

	doc := postDoc(t, c, ts.URL+"/cancel", nil)
	assert.Equal(t, 1, countByAttr(doc, "data-job-id", "new"))
}

func TestBoard_CreateValidationKeepsFormOpen(t *testing.T) {
	ts, c := uiClient(t, &fakeAPI{})

	fetchDoc(t, c, ts.URL+"/")
	postDoc(t, c, ts.URL+"/jobs/new", nil)

	doc := postDoc(t, c, ts.URL+"/jobs/submit", url.Values{
		"title":    {"   "},
		"company":  {"Acme"},
		"location": {"Remote"},
	})

	require.NotNil(t, findByID(doc, "job-form"))
	fieldErr := findByID(doc, "field-error")
	require.NotNil(t, fieldErr)
	assert.Equal(t, "Title is required", textContent(fieldErr))
}

func TestBoard_DeleteFlow(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{boardJob("a", "Backend Engineer")}}
	ts, c := uiClient(t, api)

	fetchDoc(t, c, ts.URL+"/")
	doc := postDoc(t, c, ts.URL+"/jobs/a/delete", nil)
	require.NotNil(t, findByID(doc, "confirm-delete"), "confirmation shown before anything is removed")

	doc = postDoc(t, c, ts.URL+"/jobs/a/destroy", nil)
	assert.Equal(t, "a", api.deletedID)
	assert.Nil(t, findByID(doc, "confirm-delete"))
	flash := findByID(doc, "flash")
	require.NotNil(t, flash)
	assert.Equal(t, "Job deleted", textContent(flash))
	assert.Equal(t, 0, countByAttr(doc, "data-job-id", "a"))
}

func TestBoard_CancelClosesModal(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{boardJob("a", "Backend Engineer")}}
	ts, c := uiClient(t, api)

	fetchDoc(t, c, ts.URL+"/")
	postDoc(t, c, ts.URL+"/jobs/a/edit", nil)
	doc := postDoc(t, c, ts.URL+"/cancel", nil)

	assert.Nil(t, findByID(doc, "job-form"))
	assert.Equal(t, 1, countByAttr(doc, "data-job-id", "a"))
}

func TestBoard_EditFormPrefilled(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{boardJob("a", "Backend Engineer")}}
	ts, c := uiClient(t, api)

	fetchDoc(t, c, ts.URL+"/")
	doc := postDoc(t, c, ts.URL+"/jobs/a/edit", nil)

	form := findByID(doc, "job-form")
	require.NotNil(t, form)
	title := findByID(form, "title")
	require.NotNil(t, title)
	var value string
	for _, attr := range title.Attr {
		if attr.Key == "value" {
			value = attr.Val
		}
	}
	assert.Equal(t, "Backend Engineer", value)
}

func TestBoard_SessionsAreIsolated(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{boardJob("a", "Backend Engineer")}}
	ts, c1 := uiClient(t, api)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c2 := &http.Client{Jar: jar}

	// First browser opens the form; second browser still sees the plain board.
	fetchDoc(t, c1, ts.URL+"/")
	postDoc(t, c1, ts.URL+"/jobs/new", nil)

	doc := fetchDoc(t, c2, ts.URL+"/")
	assert.Nil(t, findByID(doc, "job-form"))

	// Sanity: responses are readable end to end.
	resp, err := c2.Get(ts.URL + "/")
	require.NoError(t, err)
	_, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
}
