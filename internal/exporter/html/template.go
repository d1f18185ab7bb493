package html

// RouteTableTemplate is the single-page route table of the generated clients
const RouteTableTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>nest-sdk-gen Clients - {{.GeneratedDate}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        header {
            background: linear-gradient(135deg, #dd0031 0%, #c3002f 100%);
            color: white;
            padding: 32px 20px;
            margin-bottom: 24px;
            border-radius: 8px;
        }
        header h1 { font-size: 2em; }
        .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 12px; margin-bottom: 24px; }
        .stat-card { background: white; padding: 14px; border-radius: 6px; border-left: 4px solid #dd0031; }
        .stat-card .label { font-size: 0.85em; color: #6c757d; }
        .stat-card .value { font-size: 1.6em; font-weight: bold; }
        .client { background: white; border-radius: 8px; margin-bottom: 20px; overflow: hidden; }
        .client h2 { font-size: 1.2em; padding: 14px 18px; border-bottom: 1px solid #e9ecef; }
        .client h2 small { color: #6c757d; font-weight: normal; }
        table { width: 100%; border-collapse: collapse; font-size: 0.9em; }
        th, td { text-align: left; padding: 8px 18px; border-bottom: 1px solid #f1f3f5; }
        th { background: #f8f9fa; color: #495057; }
        code { font-family: 'Monaco', 'Courier New', monospace; }
        .method-badge { display: inline-block; min-width: 64px; text-align: center; padding: 2px 8px; border-radius: 4px; font-weight: bold; font-size: 0.8em; }
        .method-get { background: #61affe; color: white; }
        .method-post { background: #49cc90; color: white; }
        .method-put { background: #fca130; color: white; }
        .method-delete { background: #f93e3e; color: white; }
        .method-patch { background: #50e3c2; color: white; }
        .method-default { background: #6c757d; color: white; }
        tr.skipped td { color: #adb5bd; font-style: italic; }
        .empty { background: white; padding: 40px; text-align: center; border-radius: 8px; color: #6c757d; }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>Generated Angular Clients</h1>
        <p>Generated on {{.GeneratedDate}}{{if .APIBase}} · API base <code>{{.APIBase}}</code>{{end}}</p>
    </header>

    <div class="stats">
        <div class="stat-card"><div class="label">Clients</div><div class="value">{{.TotalControllers}}</div></div>
        <div class="stat-card"><div class="label">Methods</div><div class="value">{{.TotalRoutes}}</div></div>
        <div class="stat-card"><div class="label">Skipped</div><div class="value">{{.TotalSkipped}}</div></div>
    </div>

    {{range .Clients}}
    <section class="client">
        <h2>{{.ClassName}} <small>{{.FileName}} · {{.Controller}}</small></h2>
        <table>
            <thead>
                <tr><th>Verb</th><th>Path</th><th>Method</th><th>Query</th><th>Body</th><th>Response</th></tr>
            </thead>
            <tbody>
            {{range .Rows}}
                {{if eq .Status "skipped"}}
                <tr class="skipped"><td></td><td></td><td>{{.Method}}</td><td colspan="3">skipped: {{.Reason}}</td></tr>
                {{else}}
                <tr>
                    <td><span class="method-badge {{methodColor .Verb}}">{{.Verb}}</span></td>
                    <td><code>{{.Path}}</code></td>
                    <td><code>{{.Method}}</code></td>
                    <td>{{.QueryKeys}}</td>
                    <td>{{.BodyParam}}</td>
                    <td><code>{{.Response}}</code></td>
                </tr>
                {{end}}
            {{end}}
            </tbody>
        </table>
    </section>
    {{else}}
    <div class="empty">No controllers were found.</div>
    {{end}}
</div>
</body>
</html>
`
