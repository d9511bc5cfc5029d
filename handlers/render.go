package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "₹" + d.StringFixed(2)
	},
	"moneyPtr": func(d *decimal.Decimal) string {
		if d == nil {
			return "--"
		}
		return "₹" + d.StringFixed(2)
	},
	"shortUUID": func(s string) string {
		if len(s) > 8 {
			return s[:8]
		}
		return s
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02 Jan 2006 15:04")
	},
	"deref": func(p *int64) string {
		if p == nil {
			return ""
		}
		return fmt.Sprintf("%d", *p)
	},
	"derefInt": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"moneyRaw": func(d *decimal.Decimal) string {
		if d == nil {
			return ""
		}
		return d.String()
	},
}).ParseFS(templateFS, "templates/*.html"))

// pageData is what every template receives. Data carries the screen-specific
// view struct.
type pageData struct {
	Title  string
	Active string // sidebar item to highlight
	User   models.UserProfile
	Error  string
	Data   any
}

func (h *Handler) render(w http.ResponseWriter, name string, data pageData) error {
	if data.User == (models.UserProfile{}) {
		data.User = h.sessions.User()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// confirmView drives the shared delete/deactivate confirmation screen.
type confirmView struct {
	Prompt string
	Detail string
	Action string // POST target
	Cancel string // where "Cancel" goes back to
	Fields map[string]string
}

func (h *Handler) renderConfirm(w http.ResponseWriter, active, errMsg string, v confirmView) error {
	return h.render(w, "confirm.html", pageData{
		Title:  "Confirm",
		Active: active,
		Error:  errMsg,
		Data:   v,
	})
}
