package mention

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// Tone values accepted by the mentions filters.
const (
	ToneNegative = "negative"
	ToneNeutral  = "neutral"
	TonePositive = "positive"
)

// Folder values accepted by the mentions filters. Favorite filtering
// only combines with Inbox or Archive.
const (
	FolderInbox   = "inbox"
	FolderArchive = "archive"
	FolderSpam    = "spam"
	FolderTrash   = "trash"
)

// maxMentionsLimit is the server-side page size ceiling.
const maxMentionsLimit = 1000

var validTones = map[string]bool{
	ToneNegative: true,
	ToneNeutral:  true,
	TonePositive: true,
}

var validFolders = map[string]bool{
	FolderInbox:   true,
	FolderArchive: true,
	FolderSpam:    true,
	FolderTrash:   true,
}

var validSources = map[string]bool{
	"web":      true,
	"twitter":  true,
	"blogs":    true,
	"forums":   true,
	"news":     true,
	"facebook": true,
	"images":   true,
	"videos":   true,
}

var validSorts = map[string]bool{
	"published_at":           true,
	"author_influence.score": true,
	"direct_reach":           true,
	"cumulative_reach":       true,
	"domain_reach":           true,
}

// MentionsOptions filters a mentions listing. The zero value requests
// the server defaults. The API forbids some combinations, which
// validate() rejects before any request goes out:
//
//   - SinceID cannot combine with BeforeDate, NotBeforeDate, or Cursor.
//   - Unread cannot combine with Favorite, Q, or Tone.
//   - Favorite only combines with the inbox or archive folder.
type MentionsOptions struct {
	SinceID         string    `url:"since_id,omitempty"`
	Limit           int       `url:"limit,omitempty"`
	BeforeDate      time.Time `url:"before_date,omitempty"`
	NotBeforeDate   time.Time `url:"not_before_date,omitempty"`
	Source          string    `url:"source,omitempty"`
	Unread          *bool     `url:"unread,omitempty"`
	Favorite        *bool     `url:"favorite,omitempty"`
	Folder          string    `url:"folder,omitempty"`
	Tone            string    `url:"tone,omitempty"`
	Countries       string    `url:"countries,omitempty"`
	IncludeChildren *bool     `url:"include_children,omitempty"`
	Sort            string    `url:"sort,omitempty"`
	Languages       string    `url:"languages,omitempty"`
	Timezone        string    `url:"timezone,omitempty"`
	Q               string    `url:"q,omitempty"`
	Cursor          string    `url:"cursor,omitempty"`
}

func (o *MentionsOptions) validate() error {
	if o.SinceID != "" && (!o.BeforeDate.IsZero() || !o.NotBeforeDate.IsZero() || o.Cursor != "") {
		return fmt.Errorf("mention: since_id cannot be combined with before_date, not_before_date, or cursor")
	}
	if o.Unread != nil && *o.Unread && (o.Favorite != nil || o.Q != "" || o.Tone != "") {
		return fmt.Errorf("mention: unread cannot be combined with favorite, q, or tone")
	}
	if o.Favorite != nil && *o.Favorite && o.Folder != "" && o.Folder != FolderInbox && o.Folder != FolderArchive {
		return fmt.Errorf("mention: favorite only combines with the inbox or archive folder, not %q", o.Folder)
	}
	if o.Tone != "" && !validTones[o.Tone] {
		return fmt.Errorf("mention: tone must be one of negative, neutral, positive; got %q", o.Tone)
	}
	if o.Folder != "" && !validFolders[o.Folder] {
		return fmt.Errorf("mention: folder must be one of inbox, archive, spam, trash; got %q", o.Folder)
	}
	if o.Source != "" && !validSources[o.Source] {
		return fmt.Errorf("mention: unknown source %q", o.Source)
	}
	if o.Sort != "" && !validSorts[o.Sort] {
		return fmt.Errorf("mention: unknown sort %q", o.Sort)
	}
	return nil
}

// values validates the options and encodes them as a query string. The
// limit is clamped to the server ceiling; non-positive limits are
// omitted so the server default applies.
func (o *MentionsOptions) values() (url.Values, error) {
	if o == nil {
		return nil, nil
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	normalized := *o
	normalized.Limit = clampLimit(normalized.Limit)
	return query.Values(normalized)
}

// ChildrenOptions filters a children-mentions listing.
type ChildrenOptions struct {
	Limit      int       `url:"limit,omitempty"`
	BeforeDate time.Time `url:"before_date,omitempty"`
}

func (o *ChildrenOptions) values() (url.Values, error) {
	if o == nil {
		return nil, nil
	}
	normalized := *o
	normalized.Limit = clampLimit(normalized.Limit)
	return query.Values(normalized)
}

func clampLimit(limit int) int {
	switch {
	case limit > maxMentionsLimit:
		return maxMentionsLimit
	case limit < 1:
		return 0
	default:
		return limit
	}
}

// MentionPatch curates a single mention. Unset fields are omitted and
// left untouched by the server.
type MentionPatch struct {
	Favorite *bool    `json:"favorite,omitempty"`
	Trashed  *bool    `json:"trashed,omitempty"`
	Read     *bool    `json:"read,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Folder   string   `json:"folder,omitempty"`
	Tone     string   `json:"tone,omitempty"`
}

// Mentions fetches mentions for an alert, newest first, filtered by
// opts (which may be nil).
func (c *Client) Mentions(ctx context.Context, accountID, alertID string, opts *MentionsOptions) (Value, error) {
	params, err := pathParams("account_id", accountID, "alert_id", alertID)
	if err != nil {
		return Value{}, err
	}
	q, err := opts.values()
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, listMentionsEndpoint, params, q, nil)
}

// Mention fetches a single mention by ID.
func (c *Client) Mention(ctx context.Context, accountID, alertID, mentionID string) (Value, error) {
	params, err := pathParams("account_id", accountID, "alert_id", alertID, "mention_id", mentionID)
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, getMentionEndpoint, params, nil, nil)
}

// MentionChildren fetches the children of a mention (replies, shares).
func (c *Client) MentionChildren(ctx context.Context, accountID, alertID, mentionID string, opts *ChildrenOptions) (Value, error) {
	params, err := pathParams("account_id", accountID, "alert_id", alertID, "mention_id", mentionID)
	if err != nil {
		return Value{}, err
	}
	q, err := opts.values()
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, mentionChildrenEndpoint, params, q, nil)
}

// CurateMention updates the curation state of a mention.
func (c *Client) CurateMention(ctx context.Context, accountID, alertID, mentionID string, patch MentionPatch) (Value, error) {
	if patch.Tone != "" && !validTones[patch.Tone] {
		return Value{}, fmt.Errorf("mention: tone must be one of negative, neutral, positive; got %q", patch.Tone)
	}
	params, err := pathParams("account_id", accountID, "alert_id", alertID, "mention_id", mentionID)
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, curateMentionEndpoint, params, nil, patch)
}

// MarkAllMentionsRead marks every mention of an alert as read.
func (c *Client) MarkAllMentionsRead(ctx context.Context, accountID, alertID string) (Value, error) {
	params, err := pathParams("account_id", accountID, "alert_id", alertID)
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, markAllReadEndpoint, params, nil, nil)
}
