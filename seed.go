package hubsite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/flyballhub/hubsite/content"
)

// seedDoc sniffs the _type of a seed file before full decoding.
type seedDoc struct {
	Type string `json:"_type"`
}

// ImportSeedDir loads every *.json document in dir into the store. Page
// documents carry _type "page", posts "post". Seed documents are imported as
// published; a later admin edit can unpublish them. Unreadable files fail the
// import so a broken seed set is caught at startup.
func (a *App) ImportSeedDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read seed dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := a.importSeedFile(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("seed %s: %w", entry.Name(), err)
		}
	}
	a.Cache.Invalidate()
	return nil
}

func (a *App) importSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc seedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	switch doc.Type {
	case "post":
		var post content.Post
		if err := json.Unmarshal(data, &post); err != nil {
			return err
		}
		if post.Slug == "" {
			post.Slug = Slugify(strings.TrimSuffix(filepath.Base(path), ".json"))
		}
		post.Published = true
		return a.Store.SavePost(post)
	case "page", "":
		page, err := content.DecodePage(data)
		if err != nil {
			return err
		}
		if page.Slug == "" {
			page.Slug = Slugify(strings.TrimSuffix(filepath.Base(path), ".json"))
		}
		page.Published = true
		_, err = a.Store.SavePage(page)
		return err
	default:
		// Redirect seeds: {"_type":"redirect","from":"/old/","to":"/new/"}
		if doc.Type == "redirect" {
			var r struct {
				From string `json:"from"`
				To   string `json:"to"`
			}
			if err := json.Unmarshal(data, &r); err != nil {
				return err
			}
			return a.Store.SaveRedirect(r.From, r.To)
		}
		return fmt.Errorf("unknown seed document type %q", doc.Type)
	}
}

// watchSeedDir re-imports the seed directory whenever a json file inside it
// changes. Used in development to iterate on content without restarting.
// Returns a stop function.
func (a *App) watchSeedDir(dir string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		var pending <-chan time.Time
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(event.Name, ".json") {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					// Editors often emit several events per save; debounce.
					pending = time.After(250 * time.Millisecond)
				}
			case <-pending:
				pending = nil
				if err := a.ImportSeedDir(dir); err != nil {
					a.Echo.Logger.Errorf("seed reload: %v", err)
				} else {
					a.Echo.Logger.Infof("seed reloaded from %s", dir)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.Echo.Logger.Warnf("seed watcher: %v", err)
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
