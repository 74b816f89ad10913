package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/lamp-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"percent": func(level, max int) int {
		if max <= 0 {
			return 0
		}
		p := level * 100 / max
		if p > 100 {
			p = 100
		}
		return p
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>{{.Name}} Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.overdriven { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
.bar { background: #eee; height: 14px; width: 100%; }
.bar-fill { background: green; height: 14px; }
.bar-fill.overdriven { background: red; }
</style>
</head>
<body>
<h1>{{.Name}} Controller</h1>

<h2>State</h2>
<table>
<tr><th>Level</th><td class="{{if .Overdriven}}overdriven{{else if gt .Level 0}}on{{else}}off{{end}}">{{.Level}} / {{.MaxLevel}}{{if .Overdriven}} OVERDRIVEN{{end}}</td></tr>
<tr><th></th><td><div class="bar"><div class="bar-fill{{if .Overdriven}} overdriven{{end}}" style="width: {{percent .Level .MaxLevel}}%"></div></div></td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Increase</th><td>{{.Counts.Increase}}</td></tr>
<tr><th>Decrease</th><td>{{.Counts.Decrease}}</td></tr>
<tr><th>Off</th><td>{{.Counts.Off}}</td></tr>
<tr><th>Full</th><td>{{.Counts.Full}}</td></tr>
<tr><th>Outage</th><td>{{.Counts.Outage}}</td></tr>
<tr><th>Surge</th><td>{{.Counts.Surge}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>GPIO pin</th><td>{{if lt .Config.Pin 0}}disabled{{else}}{{.Config.Pin}}{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() and Overdriven() methods but the template
	// wants plain fields.
	data := struct {
		status.Snapshot
		Uptime     time.Duration
		Overdriven bool
	}{
		Snapshot:   snap,
		Uptime:     snap.Uptime(),
		Overdriven: snap.Overdriven(),
	}
	indexTmpl.Execute(w, data)
}
