package setup

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"

	"github.com/journey-mate/journeymate/frontend/internal/apiclient"
	"github.com/journey-mate/journeymate/frontend/internal/handler"
	"github.com/journey-mate/journeymate/frontend/web"
	"github.com/journey-mate/journeymate/shared/config"
	"github.com/journey-mate/journeymate/shared/logger"
	"github.com/journey-mate/journeymate/shared/middleware/ratelimiter"
)

const (
	baseTemplate  = "base.html"
	tmplDir       = "templates"
	limiterIdle   = time.Hour
	limiterSweeps = 10 * time.Minute
)

type Dependencies struct {
	Handler *handler.Handler
	Public  config.Public
	// Limiter throttles auth submissions per client IP; nil when disabled.
	Limiter *ratelimiter.Limiter
	stop    chan struct{}
}

// Close stops background tasks.
func (d *Dependencies) Close() {
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	templates, err := loadTemplates(web.Templates)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	client := apiclient.New(cfg.Public.Api.BaseURL, cfg.Public.Api.Timeout)
	h := handler.New(templates, cfg.Public, client)

	deps := &Dependencies{
		Handler: h,
		Public:  cfg.Public,
		stop:    make(chan struct{}),
	}
	if rl := cfg.Public.RateLimit; rl.PerMinute > 0 {
		burst := rl.Burst
		if burst < 1 {
			burst = 1
		}
		deps.Limiter = ratelimiter.New(rl.PerMinute/60, float64(burst), limiterIdle)
		go deps.Limiter.Run(limiterSweeps, deps.stop)
	}

	logger.Log.Info("dependencies ready",
		"api", cfg.Public.Api.BaseURL,
		"templates", len(templates),
		"rate_limited", deps.Limiter != nil)
	return deps, nil
}

// loadTemplates parses every page template together with the base layout.
// The map is keyed by page file name.
func loadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	pages, err := fs.Glob(fsys, path.Join(tmplDir, "*.html"))
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		name := path.Base(page)
		if name == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).ParseFS(fsys, path.Join(tmplDir, baseTemplate), page)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}
