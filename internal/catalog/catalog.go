package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/estately-app/estately-backend/internal/users"
	"github.com/estately-app/estately-backend/pkg/config"
	pkgerrors "github.com/estately-app/estately-backend/pkg/errors"
)

// Source delivers the static JSON documents backing the catalog: the
// property listing and the default guest profile record.
type Source interface {
	FetchProperties(ctx context.Context) ([]byte, error)
	FetchGuestProfile(ctx context.Context) ([]byte, error)
}

// FileSource reads the documents from local fixture files.
type FileSource struct {
	PropertiesPath   string
	GuestProfilePath string
}

func (s FileSource) FetchProperties(context.Context) ([]byte, error) {
	return os.ReadFile(s.PropertiesPath)
}

func (s FileSource) FetchGuestProfile(context.Context) ([]byte, error) {
	return os.ReadFile(s.GuestProfilePath)
}

// HTTPSource fetches the documents from fixed remote locations.
type HTTPSource struct {
	PropertiesURL   string
	GuestProfileURL string
	Client          *http.Client
}

func (s HTTPSource) FetchProperties(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, s.PropertiesURL)
}

func (s HTTPSource) FetchGuestProfile(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, s.GuestProfileURL)
}

func (s HTTPSource) fetch(ctx context.Context, url string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// NewSource builds a source from config: HTTP when a base URL is set,
// local fixture files otherwise.
func NewSource(cfg config.CatalogConfig) Source {
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		return HTTPSource{
			PropertiesURL:   base + "/properties.json",
			GuestProfileURL: base + "/guest-profile.json",
			Client:          &http.Client{Timeout: cfg.FetchTimeout},
		}
	}
	return FileSource{
		PropertiesPath:   cfg.PropertiesPath,
		GuestProfilePath: cfg.GuestProfilePath,
	}
}

// ListFilter narrows a catalog listing.
type ListFilter struct {
	PropertyType string
	FeaturedOnly bool
}

// Service exposes read access over the static catalog.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Property, error)
	FindByID(ctx context.Context, id string) (Property, error)
	GuestProfile(ctx context.Context) (users.User, error)
}

type service struct {
	source Source

	mu         sync.Mutex
	properties []Property
	loaded     bool
}

// NewService builds a catalog service over the provided source. The
// property document is fetched once and cached; it is static data.
func NewService(source Source) (Service, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog source is required")
	}
	return &service{source: source}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Property, error) {
	properties, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Property, 0, len(properties))
	wantType := strings.ToLower(strings.TrimSpace(filter.PropertyType))
	for _, p := range properties {
		if wantType != "" && p.PropertyType != wantType {
			continue
		}
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *service) FindByID(ctx context.Context, id string) (Property, error) {
	properties, err := s.load(ctx)
	if err != nil {
		return Property{}, err
	}
	for _, p := range properties {
		if p.ID == id {
			return p, nil
		}
	}
	return Property{}, pkgerrors.New(pkgerrors.CodeNotFound, "property not found").
		WithDetails(map[string]any{"property_id": id})
}

func (s *service) GuestProfile(ctx context.Context) (users.User, error) {
	doc, err := s.source.FetchGuestProfile(ctx)
	if err != nil {
		return users.User{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch guest profile")
	}
	var user users.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return users.User{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse guest profile")
	}
	return user.Sanitize(), nil
}

func (s *service) load(ctx context.Context) ([]Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.properties, nil
	}

	doc, err := s.source.FetchProperties(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch properties")
	}
	properties, err := parseProperties(doc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse properties")
	}
	s.properties = properties
	s.loaded = true
	return s.properties, nil
}
