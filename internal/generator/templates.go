package generator

// Template names resolved through the renderer.
const (
	templatePost     = "post.html"
	templateIndex    = "index.html"
	templateCategory = "category.html"
	templateArchive  = "archive.html"
)

// defaultTemplates returns the minimal built-in theme. Deployments that want
// a custom look supply their own TemplateRenderer instead.
func defaultTemplates() map[string]string {
	return map[string]string{
		templatePost: `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Post.Title }} | {{ .Site.Title }}</title>
  {{ if .Post.Excerpt }}<meta name="description" content="{{ .Post.Excerpt }}">{{ end }}
</head>
<body>
  <article>
    <header>
      <h1>{{ .Post.Title }}</h1>
      <time datetime="{{ .Post.PublishedAt.Format "2006-01-02" }}">{{ .Helpers.FormatDate .Post.PublishedAt }}</time>
      {{ range .Post.Categories }}<a class="category" href="{{ $.Helpers.WithBaseURL (printf "/categories/%s" .) }}">{{ . }}</a>{{ end }}
    </header>
    {{ .Helpers.HTML .Post.BodyHTML }}
  </article>
</body>
</html>
`,
		templateIndex: `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Site.Title }}</title>
  {{ if .Site.Description }}<meta name="description" content="{{ .Site.Description }}">{{ end }}
</head>
<body>
  <h1>{{ .Site.Title }}</h1>
  <ul class="posts">
    {{ range .Posts }}
    <li>
      <a href="{{ $.Helpers.WithBaseURL (printf "/posts/%s" .Slug) }}">{{ .Title }}</a>
      <time>{{ $.Helpers.FormatDate .PublishedAt }}</time>
      {{ if .Excerpt }}<p>{{ .Excerpt }}</p>{{ end }}
    </li>
    {{ end }}
  </ul>
</body>
</html>
`,
		templateCategory: `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Category }} | {{ .Site.Title }}</title>
</head>
<body>
  <h1>{{ .Category }}</h1>
  <ul class="posts">
    {{ range .Posts }}
    <li><a href="{{ $.Helpers.WithBaseURL (printf "/posts/%s" .Slug) }}">{{ .Title }}</a></li>
    {{ end }}
  </ul>
</body>
</html>
`,
		templateArchive: `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Archive.Year }}-{{ printf "%02d" .Archive.Month }} | {{ .Site.Title }}</title>
</head>
<body>
  <h1>{{ .Archive.Month }} {{ .Archive.Year }}</h1>
  <ul class="posts">
    {{ range .Archive.Posts }}
    <li><a href="{{ $.Helpers.WithBaseURL (printf "/posts/%s" .Slug) }}">{{ .Title }}</a></li>
    {{ end }}
  </ul>
</body>
</html>
`,
	}
}
