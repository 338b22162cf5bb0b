package view

import (
	"html/template"
	"io"

	"instafeed/app/models"
	"instafeed/app/session"
)

// Renderer turns reconciler state into HTML fragments. It never decides
// what is in the feed; append-vs-replace is the caller's choice of which
// post slice to render.
type Renderer struct {
	tmpl *template.Template
	sess session.Session
}

// NewRenderer parses the fragment templates once for the session.
func NewRenderer(sess session.Session) *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("feed").Parse(feedTemplates)),
		sess: sess,
	}
}

// RenderFeed writes the full post list.
func (r *Renderer) RenderFeed(w io.Writer, posts []*models.Post) error {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, r.postView(p))
	}
	return r.tmpl.ExecuteTemplate(w, "feed", views)
}

// RenderPost writes a single post card.
func (r *Renderer) RenderPost(w io.Writer, p *models.Post) error {
	return r.tmpl.ExecuteTemplate(w, "post", r.postView(p))
}

// RenderProfile writes the viewer's profile page.
func (r *Renderer) RenderProfile(w io.Writer, profile ProfileData) error {
	return r.tmpl.ExecuteTemplate(w, "profile", profile)
}

// ProfileData feeds the profile template.
type ProfileData struct {
	Username  string
	UserID    int64
	Posts     int64
	Followers int64
	Following int64
}

type postView struct {
	ID           int64
	AuthorID     int64
	Username     string
	ImageURL     string
	TimeLabel    string
	LikeCount    int64
	CommentCount int64
	Liked        bool
	Owner        bool
	ShowFollow   bool
	Following    bool
	CaptionHTML  template.HTML
	Comments     []commentView
}

type commentView struct {
	ID      int64
	Author  string
	Content string
	Owner   bool
}

func (r *Renderer) postView(p *models.Post) postView {
	owner := p.OwnedBy(r.sess.UserID)
	v := postView{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Username:     p.Username,
		ImageURL:     p.ImageURL,
		TimeLabel:    timeLabel(p),
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		Liked:        p.LikedByCurrentUser,
		Owner:        owner,
		// The follow control only renders for another user's post whose
		// author resolved; an unresolvable author leaves it suppressed.
		ShowFollow:  !owner && p.FollowingAuthor != nil,
		Following:   p.FollowingAuthor != nil && *p.FollowingAuthor,
		CaptionHTML: MarkupCaption(p.Caption),
	}
	for _, c := range p.Comments {
		v.Comments = append(v.Comments, commentView{
			ID:      c.ID,
			Author:  c.AuthorName(),
			Content: c.Content,
			Owner:   c.OwnedBy(r.sess.UserID),
		})
	}
	return v
}

func timeLabel(p *models.Post) string {
	label := p.CreatedAt.Format("Jan 2, 2006")
	if p.Edited() {
		label += " (edited)"
	}
	return label
}
