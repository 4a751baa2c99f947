package html

// APIReportTemplate is a Redoc-style single page for scraped API documentation
const APIReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  body { margin: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; color: #263238; background: #fafbfc; display: flex; }
  nav { width: 280px; min-height: 100vh; background: #f2f4f7; border-right: 1px solid #e1e4e8; padding: 16px 0; position: sticky; top: 0; align-self: flex-start; overflow-y: auto; max-height: 100vh; }
  nav a { display: flex; gap: 8px; align-items: center; padding: 6px 16px; color: #37474f; text-decoration: none; font-size: 13px; }
  nav a:hover { background: #e3e7ec; }
  main { flex: 1; padding: 32px 48px; max-width: 1000px; }
  h1 { margin: 0 0 4px; font-size: 28px; }
  .meta { color: #607d8b; font-size: 14px; margin-bottom: 24px; }
  .stats { display: flex; gap: 12px; flex-wrap: wrap; margin-bottom: 32px; }
  .stat { background: #fff; border: 1px solid #e1e4e8; border-radius: 6px; padding: 10px 16px; min-width: 110px; }
  .stat .label { font-size: 12px; color: #78909c; text-transform: uppercase; }
  .stat .value { font-size: 22px; font-weight: 600; }
  .op { background: #fff; border: 1px solid #e1e4e8; border-radius: 6px; margin-bottom: 20px; }
  .op-head { padding: 12px 16px; border-bottom: 1px solid #eef0f3; display: flex; gap: 12px; align-items: center; }
  .op-body { padding: 12px 16px; }
  .path { font-family: Consolas, Menlo, monospace; font-size: 15px; }
  .badge { color: #fff; font-size: 11px; font-weight: 700; border-radius: 3px; padding: 3px 8px; min-width: 52px; text-align: center; }
  .method-get { background: #61affe; } .method-post { background: #49cc90; } .method-put { background: #fca130; }
  .method-delete { background: #f93e3e; } .method-patch { background: #50e3c2; } .method-default { background: #9e9e9e; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; margin: 8px 0 12px; }
  th { text-align: left; color: #78909c; font-weight: 600; border-bottom: 1px solid #e1e4e8; padding: 6px; }
  td { border-bottom: 1px solid #f1f3f5; padding: 6px; vertical-align: top; }
  .req { color: #d32f2f; font-weight: 600; }
  pre { background: #263238; color: #eceff1; padding: 10px; border-radius: 4px; overflow-x: auto; font-size: 12px; }
  .section { font-size: 12px; text-transform: uppercase; color: #78909c; margin-top: 8px; }
  .empty { padding: 40px; text-align: center; color: #78909c; }
  .warn { background: #fff3e0; border: 1px solid #ffcc80; padding: 10px 16px; border-radius: 6px; margin-bottom: 24px; }
</style>
</head>
<body>
<nav>
  {{range .Endpoints}}<a href="#{{anchor .No}}"><span class="badge {{methodColor .Method}}">{{.Method}}</span><span class="path">{{.Path}}</span></a>
  {{end}}
</nav>
<main>
  <h1>{{.Title}}</h1>
  <div class="meta">
    {{.Description}}{{if .Summary.ScrapeDate}} · scraped {{.Summary.ScrapeDate}}{{end}}
    {{range .Servers}}<br>Server: <code>{{.URL}}</code>{{end}}
  </div>
  {{if .Summary.FetchError}}<div class="warn">The source page could not be loaded: {{.Summary.FetchError}}</div>{{end}}
  <div class="stats">
    <div class="stat"><div class="label">Paths</div><div class="value">{{.TotalPaths}}</div></div>
    <div class="stat"><div class="label">Operations</div><div class="value">{{len .Endpoints}}</div></div>
    {{range .Methods}}<div class="stat"><div class="label">{{.Method}}</div><div class="value">{{.Count}}</div></div>
    {{end}}
  </div>
  {{range .Endpoints}}
  <section class="op" id="{{anchor .No}}">
    <div class="op-head"><span class="badge {{methodColor .Method}}">{{.Method}}</span><span class="path">{{.Path}}</span></div>
    <div class="op-body">
      <p>{{.Description}}</p>
      {{if .Parameters}}
      <div class="section">Parameters</div>
      <table>
        <thead><tr><th>Name</th><th>In</th><th>Type</th><th>Required</th><th>Description</th></tr></thead>
        <tbody>
        {{range .Parameters}}<tr><td><code>{{.Name}}</code></td><td>{{.In}}</td><td>{{.Schema.Type}}</td><td{{if .Required}} class="req"{{end}}>{{required .Required}}</td><td>{{.Description}}</td></tr>
        {{end}}
        </tbody>
      </table>
      {{end}}
      {{if .HasBody}}<div class="section">Request Body</div><p><code>application/json</code> (required)</p>{{end}}
      <div class="section">Response</div>
      {{if .Response}}<pre>{{.Response}}</pre>{{else}}<p>200 Successful response</p>{{end}}
    </div>
  </section>
  {{else}}
  <div class="empty"><h3>No API endpoints found</h3><p>No documentation entries with a path were found on the page.</p></div>
  {{end}}
  <footer class="meta">Generated by <strong>doc-recon</strong></footer>
</main>
</body>
</html>
`
