// Package fetch provides the HTTP client for the AIMS course registration
// portal. One call fetches the timetable rows for one batch of running
// course ids; authentication is an opaque session cookie supplied by the
// caller and never inspected or refreshed here.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/arjunmnair/aims-timetable/internal/schemas"
	"github.com/arjunmnair/aims-timetable/internal/types"
)

// DefaultTimetableURL is the batch timetable endpoint.
const DefaultTimetableURL = "https://aims.iith.ac.in/aims/courseReg/getStdntRngCrsTimeTableDtls"

// DefaultReferer is the registration form page the portal expects requests
// to originate from.
const DefaultReferer = "https://aims.iith.ac.in/aims/courseReg/studentRegForm/68"

// DefaultUserAgent is the user agent string for portal requests.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// Error represents a transport- or parse-level failure for one batch
// request. Both are retry-eligible.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client. Zero fields fall back to defaults;
// StudentID and Cookie have no defaults and are validated by the caller
// before any request is made.
type Options struct {
	BaseURL   string
	StudentID string
	Cookie    string
	Referer   string
	UserAgent string
	Timeout   time.Duration
}

// Client issues batch timetable requests against the portal.
type Client struct {
	httpClient *http.Client
	baseURL    string
	studentID  string
	cookie     string
	referer    string
	userAgent  string
}

// NewClient builds a Client from options, applying defaults.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultTimetableURL
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		studentID:  opts.StudentID,
		cookie:     opts.Cookie,
		referer:    opts.Referer,
		userAgent:  opts.UserAgent,
	}
}

// dataObj is the JSON-ish payload the server expects inside form data.
type dataObj struct {
	RunningCourseIds string `json:"runningCourseIds"`
	StudentID        string `json:"studentId"`
}

// rawRow mirrors one wire row. The portal is loose about value types, so
// every field decodes from string, number, or null.
type rawRow struct {
	RunningCourseID flexString `json:"runningCourseId"`
	CourseSlotID    flexString `json:"courseSlotId"`
	CourseSlotCd    flexString `json:"courseSlotCd"`
	SlotPeriodDays  flexString `json:"slotPeriodCdDays"`
	SegName         flexString `json:"segName"`
}

// flexString decodes a JSON string, number, or null into a string.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// FetchBatch posts one batch of running course ids and returns the decoded
// rows. Any non-200 status, non-JSON body, or shape mismatch is returned
// as *Error.
func (c *Client) FetchBatch(ctx context.Context, rcids []string) ([]types.RawSlotRow, error) {
	payload, err := json.Marshal(dataObj{
		RunningCourseIds: strings.Join(rcids, ","),
		StudentID:        c.studentID,
	})
	if err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to encode payload", Cause: err}
	}

	form := url.Values{"dataObj": {string(payload)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if origin := originOf(c.baseURL); origin != "" {
		req.Header.Set("Origin", origin)
	}
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: c.baseURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: c.baseURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "<") {
		// An expired session redirects to the login page rather than
		// returning an error status.
		msg := "unexpected HTML response (session may have expired)"
		if title := htmlTitle(trimmed); title != "" {
			msg = fmt.Sprintf("%s: %q", msg, title)
		}
		return nil, &Error{URL: c.baseURL, Message: msg}
	}

	if err := schemas.ValidateSlotRows(body); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "unexpected response shape", Cause: err}
	}

	var raw []rawRow
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to parse response", Cause: err}
	}

	rows := make([]types.RawSlotRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, types.RawSlotRow{
			RCID:     strings.TrimSpace(string(r.RunningCourseID)),
			SlotID:   strings.TrimSpace(string(r.CourseSlotID)),
			SlotCode: strings.TrimSpace(string(r.CourseSlotCd)),
			DayTime:  strings.TrimSpace(string(r.SlotPeriodDays)),
			SegName:  strings.TrimSpace(string(r.SegName)),
		})
	}
	return rows, nil
}

// htmlTitle extracts the <title> text of an HTML document, or "".
func htmlTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// originOf derives the Origin header value from the endpoint URL.
func originOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
