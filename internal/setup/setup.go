package setup

import (
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ashchan-dev/ashchan/internal/board"
	"github.com/ashchan-dev/ashchan/internal/config"
	"github.com/ashchan-dev/ashchan/internal/handler"
	"github.com/ashchan-dev/ashchan/internal/markdown"
	"github.com/ashchan-dev/ashchan/internal/media"
	"github.com/ashchan-dev/ashchan/internal/service"
	"github.com/ashchan-dev/ashchan/internal/storage/sqlite"
	"github.com/ashchan-dev/ashchan/internal/utils"
)

const baseTemplate = "base.html"

type Dependencies struct {
	Handler *handler.Handler
	Storage *sqlite.Storage
	Config  *config.Config
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	mediaStore, err := media.NewStore(cfg.UploadsDir, cfg.MaxUploadBytes)
	if err != nil {
		store.Cleanup()
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}

	registry, err := board.NewRegistry(cfg.Boards)
	if err != nil {
		store.Cleanup()
		return nil, fmt.Errorf("failed to build board registry: %w", err)
	}

	messageValidator := &utils.MessageValidator{MaxBytes: cfg.MaxMessageBytes}
	threads := service.NewThread(store, mediaStore, &utils.SubjectValidator{}, messageValidator)
	posts := service.NewPost(store, mediaStore, messageValidator)
	listing := service.NewListing(store, cfg.ThreadsPerPage, cfg.RepliesPreview, cfg.ThreadPreviewLen, cfg.ReplyPreviewLen)

	templates, err := loadTemplates(cfg.TemplatesDir)
	if err != nil {
		store.Cleanup()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	h := handler.New(templates, registry, threads, posts, listing, markdown.New(), cfg)

	return &Dependencies{
		Handler: h,
		Storage: store,
		Config:  cfg,
	}, nil
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

func fmtTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("02 Jan 2006 15:04")
}

func bytesToMB(bytes int64) int64 {
	return bytes / (1024 * 1024)
}

// pageSeq lists page numbers 1..n for pagination links.
func pageSeq(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i + 1
	}
	return seq
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"sub":       sub,
		"add":       add,
		"fmtTime":   fmtTime,
		"bytesToMB": bytesToMB,
		"pageSeq":   pageSeq,
	}
}

// loadTemplates parses each page template against the shared base
// layout. Pages render by executing the base template.
func loadTemplates(dir string) (map[string]*template.Template, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(templateFuncs()).ParseFiles(
			path.Join(dir, baseTemplate),
			path.Join(dir, f.Name()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", f.Name(), err)
		}
		templates[f.Name()] = tmpl
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", dir)
	}
	return templates, nil
}
