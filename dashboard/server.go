// Package dashboard renders the investor dashboard: a leaderboard of promising
// startups and a form that queries the scoring API.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	qhttp "unicorn/http"
)

//go:embed templates/index.html
var templates embed.FS

type Config struct {
	DataDir       string
	DatasetFile   string
	DatasetPrefix string
	SQLiteTable   string
}

type Dashboard struct {
	config Config
	cache  *DatasetCache
	client *Client
	hub    *Hub
	log    *zap.Logger
	page   *template.Template
}

type pageData struct {
	Modes           []Mode
	Form            Form
	Categories      []string
	Countries       []string
	ClusterProfiles []int
	Tiles           []Tile
	DatasetError    string
	Problems        []string
	Outcome         *Outcome
	LiveReload      bool
}

func New(config Config, client *Client, log *zap.Logger) (*Dashboard, error) {
	page, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	d := &Dashboard{
		config: config,
		client: client,
		log:    log,
		page:   page,
	}
	d.cache, err = NewDatasetCache(defaultCacheSize, func(ctx context.Context, path string) (*Dataset, error) {
		return LoadDataset(ctx, path, config.SQLiteTable)
	}, log)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Watch invalidates the dataset cache on changes in the data directory and tells
// open pages to reload. Call it before serving; it stops when ctx is done.
func (d *Dashboard) Watch(ctx context.Context) error {
	hub := NewHub(d.log)
	go hub.Run(ctx)

	err := d.cache.Watch(ctx, d.config.DataDir, func(file string) {
		hub.Broadcast(LiveEvent{Type: EventDatasetReloaded, File: filepath.Base(file)})
	})
	if err != nil {
		return err
	}
	d.hub = hub
	return nil
}

// Handler returns the routed dashboard wrapped in the shared middleware.
func (d *Dashboard) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.handleIndex)
	mux.HandleFunc("POST /{$}", d.handleSubmit)
	mux.HandleFunc("GET /ws", d.handleLive)

	chain := qhttp.Chain(
		qhttp.LoggerMiddleware(d.log),
		qhttp.RecoveryMiddleware(d.log),
		qhttp.SecurityHeadersMiddleware,
	)
	return chain(mux)
}

func (d *Dashboard) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := d.basePage(r.Context())
	data.Form = DefaultForm(ParseMode(r.URL.Query().Get("mode")), data.Categories, data.Countries)
	d.render(w, data)
}

func (d *Dashboard) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := d.basePage(r.Context())
	form, problems := ParseForm(r.PostForm, data.Categories, data.Countries)
	data.Form = form
	data.Problems = problems

	if len(problems) == 0 {
		resp, err := d.client.Post(r.Context(), form.Mode.Endpoint(), form.Payload())
		if err != nil {
			d.log.Warn("scoring API call failed",
				zap.String("endpoint", form.Mode.Endpoint()),
				zap.Error(err),
			)
		}
		outcome := Interpret(form, resp, err, d.client.Host())
		data.Outcome = &outcome
	}
	d.render(w, data)
}

func (d *Dashboard) handleLive(w http.ResponseWriter, r *http.Request) {
	if d.hub == nil {
		http.NotFound(w, r)
		return
	}
	d.hub.HandleWebSocket(w, r)
}

// basePage loads the dataset and fills everything that does not depend on the form.
func (d *Dashboard) basePage(ctx context.Context) pageData {
	data := pageData{
		Modes:           Modes,
		ClusterProfiles: []int{0, 1, 2},
		LiveReload:      d.hub != nil,
	}

	dataset, err := d.dataset(ctx)
	if err != nil {
		if errors.Is(err, ErrDatasetNotFound) {
			data.DatasetError = DatasetNotFoundMessage(d.config.DataDir, d.config.DatasetFile)
		} else {
			data.DatasetError = "Lecture du jeu de données impossible : " + err.Error()
		}
		d.log.Warn("dataset unavailable", zap.Error(err))
		dataset = &Dataset{}
	}

	data.Categories = dataset.Categories()
	data.Countries = dataset.Countries()
	data.Tiles = Leaderboard(dataset)
	return data
}

func (d *Dashboard) dataset(ctx context.Context) (*Dataset, error) {
	path, err := ResolveDataset(d.config.DataDir, d.config.DatasetFile, d.config.DatasetPrefix)
	if err != nil {
		return nil, err
	}
	return d.cache.Get(ctx, path)
}

func (d *Dashboard) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := d.page.Execute(&buf, data); err != nil {
		d.log.Error("render dashboard", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
