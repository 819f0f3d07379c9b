package email

import (
	"bytes"
	"html/template"
	texttpl "text/template"
)

// AlertItem es una fila del correo de alertas de mantenimiento.
type AlertItem struct {
	ApartmentID  string
	Number       string
	PendingCount int64
}

type AlertVars struct {
	Items []AlertItem
	Total int
}

const alertHTML = `<h2>Mantenimientos pendientes</h2>
<p>{{.Total}} departamento(s) superan el umbral de pendientes.</p>
<table border="1" cellpadding="4">
<tr><th>Departamento</th><th>ID</th><th>Pendientes</th></tr>
{{range .Items}}<tr><td>{{.Number}}</td><td>{{.ApartmentID}}</td><td>{{.PendingCount}}</td></tr>
{{end}}</table>`

const alertText = `Mantenimientos pendientes: {{.Total}} departamento(s) superan el umbral.
{{range .Items}}- {{.Number}} ({{.ApartmentID}}): {{.PendingCount}} pendientes
{{end}}`

var (
	alertHTMLTpl = template.Must(template.New("alert_html").Parse(alertHTML))
	alertTextTpl = texttpl.Must(texttpl.New("alert_txt").Parse(alertText))
)

// RenderAlert arma subject, html y texto del correo de alertas.
func RenderAlert(v AlertVars) (subject, html, text string, err error) {
	var hb, tb bytes.Buffer
	if err = alertHTMLTpl.Execute(&hb, v); err != nil {
		return "", "", "", err
	}
	if err = alertTextTpl.Execute(&tb, v); err != nil {
		return "", "", "", err
	}
	return "[alquiler] Alertas de mantenimiento", hb.String(), tb.String(), nil
}
