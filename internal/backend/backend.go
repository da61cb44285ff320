// Package backend is the typed facade over the external REST backend: one
// method per endpoint, thin mappings from arguments to HTTP calls. It holds
// no state beyond the underlying HTTP client and performs no persistence;
// storing the token returned by Login is the caller's job.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/kmabtech/web/internal/pkg/apiclient"
)

var (
	// ErrInvalidCredentials is returned by Login on a 400/401 response.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnreachable wraps transport-level failures (no response at all).
	ErrUnreachable = errors.New("backend unreachable")
	// ErrNotFound is returned by detail lookups on a 404 response.
	ErrNotFound = errors.New("not found")
)

// Facade exposes one method per backend operation.
type Facade struct {
	client *apiclient.Client
}

// New creates a Facade on top of the given HTTP adapter.
func New(client *apiclient.Client) *Facade {
	return &Facade{client: client}
}

// ResolveAssetURL prefixes backend-relative asset paths (e.g. /uploads/x.jpg)
// with the backend base URL. Absolute http(s) URLs pass through unchanged.
func (f *Facade) ResolveAssetURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return f.client.BaseURL() + path
}

// Login authenticates against the backend and returns the bearer token.
func (f *Facade) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := f.client.PostJSON(ctx, "/Auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusBadRequest) || apiclient.IsStatus(err, http.StatusUnauthorized) {
			return "", ErrInvalidCredentials
		}
		var se *apiclient.StatusError
		if !errors.As(err, &se) {
			return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
		}
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response missing token")
	}
	return resp.Token, nil
}

// UploadImage uploads a single file and returns its hosted URL.
func (f *Facade) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var resp uploadResponse
	if err := f.client.PostMultipart(ctx, "/Upload", "file", filename, r, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// GetDashboardStats fetches the admin dashboard counters.
func (f *Facade) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := f.client.GetJSON(ctx, "/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Categories

func (f *Facade) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	return out, f.client.GetJSON(ctx, "/Categories", &out)
}

func (f *Facade) CreateCategory(ctx context.Context, cat Category) (*Category, error) {
	var out Category
	if err := f.client.PostJSON(ctx, "/Categories", cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) UpdateCategory(ctx context.Context, id int, cat Category) (*Category, error) {
	var out Category
	if err := f.client.PutJSON(ctx, fmt.Sprintf("/Categories/%d", id), cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) DeleteCategory(ctx context.Context, id int) error {
	return f.client.Delete(ctx, fmt.Sprintf("/Categories/%d", id))
}

// Products

func (f *Facade) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	return out, f.client.GetJSON(ctx, "/Products", &out)
}

func (f *Facade) GetProduct(ctx context.Context, id int) (*Product, error) {
	var out Product
	if err := f.client.GetJSON(ctx, fmt.Sprintf("/Products/%d", id), &out); err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (f *Facade) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var out Product
	if err := f.client.PostJSON(ctx, "/Products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) UpdateProduct(ctx context.Context, id int, p Product) (*Product, error) {
	var out Product
	if err := f.client.PutJSON(ctx, fmt.Sprintf("/Products/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) DeleteProduct(ctx context.Context, id int) error {
	return f.client.Delete(ctx, fmt.Sprintf("/Products/%d", id))
}

// Services

func (f *Facade) ListServices(ctx context.Context) ([]Service, error) {
	var out []Service
	return out, f.client.GetJSON(ctx, "/Services", &out)
}

func (f *Facade) CreateService(ctx context.Context, s Service) (*Service, error) {
	var out Service
	if err := f.client.PostJSON(ctx, "/Services", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) UpdateService(ctx context.Context, id int, s Service) (*Service, error) {
	var out Service
	if err := f.client.PutJSON(ctx, fmt.Sprintf("/Services/%d", id), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) DeleteService(ctx context.Context, id int) error {
	return f.client.Delete(ctx, fmt.Sprintf("/Services/%d", id))
}

// References

// ListReferences fetches references re-sorted ascending by Order. The
// backend does not guarantee any ordering.
func (f *Facade) ListReferences(ctx context.Context) ([]Reference, error) {
	var out []Reference
	if err := f.client.GetJSON(ctx, "/References", &out); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *Facade) CreateReference(ctx context.Context, r Reference) (*Reference, error) {
	var out Reference
	if err := f.client.PostJSON(ctx, "/References", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) UpdateReference(ctx context.Context, id int, r Reference) (*Reference, error) {
	var out Reference
	if err := f.client.PutJSON(ctx, fmt.Sprintf("/References/%d", id), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) DeleteReference(ctx context.Context, id int) error {
	return f.client.Delete(ctx, fmt.Sprintf("/References/%d", id))
}

// Blog posts

func (f *Facade) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	var out []BlogPost
	return out, f.client.GetJSON(ctx, "/BlogPosts", &out)
}

func (f *Facade) GetBlogPost(ctx context.Context, id int) (*BlogPost, error) {
	var out BlogPost
	if err := f.client.GetJSON(ctx, fmt.Sprintf("/BlogPosts/%d", id), &out); err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (f *Facade) CreateBlogPost(ctx context.Context, p BlogPost) (*BlogPost, error) {
	var out BlogPost
	if err := f.client.PostJSON(ctx, "/BlogPosts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) UpdateBlogPost(ctx context.Context, id int, p BlogPost) (*BlogPost, error) {
	var out BlogPost
	if err := f.client.PutJSON(ctx, fmt.Sprintf("/BlogPosts/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Facade) DeleteBlogPost(ctx context.Context, id int) error {
	return f.client.Delete(ctx, fmt.Sprintf("/BlogPosts/%d", id))
}

// Contact messages

func (f *Facade) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var out []ContactMessage
	return out, f.client.GetJSON(ctx, "/ContactMessages", &out)
}

// CreateContactMessage submits the public contact form.
func (f *Facade) CreateContactMessage(ctx context.Context, m ContactMessage) error {
	return f.client.PostJSON(ctx, "/ContactMessages", m, nil)
}

func (f *Facade) DeleteContactMessage(ctx context.Context, id int) error {
	return f.client.Delete(ctx, fmt.Sprintf("/ContactMessages/%d", id))
}
