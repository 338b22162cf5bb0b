package view

// Fragment templates for the feed. Kept inline so rendering does not
// depend on the working directory.
const feedTemplates = `
{{define "feed"}}{{range .}}{{template "post" .}}{{end}}{{end}}

{{define "post"}}<div class="post" data-post-id="{{.ID}}">
  <div class="post-header">
    <span class="username">{{.Username}}</span>
    {{if .ShowFollow}}<button class="follow-btn{{if .Following}} following{{end}}" data-author-id="{{.AuthorID}}">{{if .Following}}Following{{else}}Follow{{end}}</button>{{end}}
    <div class="post-time">{{.TimeLabel}}</div>
    {{if .Owner}}<div class="post-menu">
      <button class="menu-edit">Edit Caption</button>
      <button class="menu-delete danger">Delete Post</button>
    </div>{{end}}
  </div>
  {{if .ImageURL}}<div class="post-image"><img src="{{.ImageURL}}" loading="lazy"></div>{{end}}
  <div class="post-actions">
    <button class="action-btn like-btn{{if .Liked}} liked{{end}}">&hearts; <span class="like-count">{{.LikeCount}}</span></button>
    <button class="action-btn comment-btn">&#128172; <span class="comment-count">{{.CommentCount}}</span></button>
  </div>
  <div class="post-caption"><span class="username">{{.Username}}</span> {{.CaptionHTML}}</div>
  <div class="comments-section">{{range .Comments}}{{template "comment" .}}{{end}}</div>
</div>
{{end}}

{{define "comment"}}<div class="comment" data-comment-id="{{.ID}}"><span class="username">{{.Author}}</span> <span class="comment-text">{{.Content}}</span>{{if .Owner}} <button class="comment-delete">&times;</button>{{end}}</div>
{{end}}

{{define "profile"}}<div class="profile-page">
  <div class="profile-header">
    <h2>{{.Username}}</h2>
    <p>User ID: {{.UserID}}</p>
    <div class="profile-stats">
      <div><strong>{{.Posts}}</strong> <span>Posts</span></div>
      <div><strong>{{.Followers}}</strong> <span>Followers</span></div>
      <div><strong>{{.Following}}</strong> <span>Following</span></div>
    </div>
  </div>
</div>
{{end}}
`
