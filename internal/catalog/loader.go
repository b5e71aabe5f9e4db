package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Site bundles every catalog shown on the website.
type Site struct {
	Rooms      *Catalog[Room]
	Gallery    *Catalog[GalleryMedia]
	Menu       *Catalog[MenuItem]
	Treatments *Catalog[Treatment]
	Services   *Catalog[Service]
}

// Names lists the catalogs in Site in navigation order.
var Names = []string{"rooms", "gallery", "menu", "treatments", "services"}

type document[T Record] struct {
	Items []T `yaml:"items"`
}

// LoadSite decodes the catalogs compiled into the binary.
func LoadSite() (*Site, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadSiteFS(sub)
}

// LoadSiteFS decodes <name>.yaml files from fsys.
func LoadSiteFS(fsys fs.FS) (*Site, error) {
	var (
		site Site
		err  error
	)
	if site.Rooms, err = Load[Room](fsys, "rooms"); err != nil {
		return nil, err
	}
	if site.Gallery, err = Load[GalleryMedia](fsys, "gallery"); err != nil {
		return nil, err
	}
	if site.Menu, err = Load[MenuItem](fsys, "menu"); err != nil {
		return nil, err
	}
	if site.Treatments, err = Load[Treatment](fsys, "treatments"); err != nil {
		return nil, err
	}
	if site.Services, err = Load[Service](fsys, "services"); err != nil {
		return nil, err
	}
	return &site, nil
}

// Load decodes a single catalog file. A missing file yields an empty catalog.
func Load[T Record](fsys fs.FS, name string) (*Catalog[T], error) {
	raw, err := fs.ReadFile(fsys, path.Clean(name+".yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return New[T](name, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	var doc document[T]
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	return New(name, doc.Items)
}
