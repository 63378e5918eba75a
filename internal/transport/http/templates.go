package http

import (
	"html/template"
)

// The HTML surface is intentionally small: a submission form, a creation
// confirmation, and the gallery page that renders one card per resolved
// item and an inline diagnostic entry per failed one.

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "index"}}<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <title>Create Project Group</title>
  </head>
  <body>
    <h1>Create Project Group</h1>
    <form method="POST" action="/create">
      <textarea name="urls" rows="10" cols="50" placeholder="https://playentry.org/project/PROJECT_ID, one per line"></textarea>
      <br/>
      <button type="submit">Create Group</button>
    </form>
  </body>
</html>{{end}}

{{define "created"}}<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <title>Group Created</title>
  </head>
  <body>
    <h1>Group Created</h1>
    <p>Group code: <strong>{{.Code}}</strong></p>
    <p>Access URL: <a href="{{.GroupURL}}">{{.GroupURL}}</a></p>
  </body>
</html>{{end}}

{{define "group"}}<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <title>Project Group - {{.Code}}</title>
  </head>
  <body>
    <h1>Project Group - {{.Code}}</h1>
    <ul class="gallery">
      {{range .Results}}{{if .OK}}
      <li class="project-card">
        <a class="thumb" href="https://playentry.org/project/{{.Metadata.ID}}" style="background-image: url('{{.Metadata.ThumbnailURL}}'), url('/img/DefaultCardThmb.svg');"></a>
        <div class="info">
          <a class="name" href="https://playentry.org/project/{{.Metadata.ID}}">{{.Metadata.Name}}</a>
          <div class="author">
            <a href="https://playentry.org/profile/{{.Metadata.AuthorID}}">
              <span class="avatar" style="background-image: url('{{.Metadata.AuthorAvatarURL}}');">&nbsp;</span>
              <em>{{.Metadata.AuthorNickname}}</em>
            </a>
          </div>
        </div>
        <div class="stats">
          <span class="viewCount">views: {{.Metadata.ViewCount}}</span>
          <span class="likeCount">likes: {{.Metadata.LikeCount}}</span>
          <span class="commentCount">comments: {{.Metadata.CommentCount}}</span>
        </div>
      </li>
      {{else}}
      <li class="resolve-error">Failed to load project {{.Ref.ID}}. ({{.Err}})</li>
      {{end}}{{end}}
    </ul>
  </body>
</html>{{end}}
`))
