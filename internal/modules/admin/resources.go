package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kmabtech/web/internal/backend"
	"github.com/kmabtech/web/internal/modules/admin/crud"
	"github.com/kmabtech/web/internal/modules/content"
	"github.com/kmabtech/web/internal/pkg/loader"
)

// Resources builds the CRUD schema set. Every admin resource screen is the
// same generic controller configured here; the closures translate between
// flat form values and the facade's typed payloads.
func Resources(store *content.Store) []crud.Resource {
	f := store.Facade
	return []crud.Resource{
		serviceResource(store, f),
		categoryResource(store, f),
		productResource(store, f),
		referenceResource(store, f),
		blogResource(store, f),
	}
}

func serviceResource(store *content.Store, f *backend.Facade) crud.Resource {
	fromValues := func(values map[string]string, images []string) backend.Service {
		s := backend.Service{
			TitleTr:       strings.TrimSpace(values["titleTr"]),
			DescriptionTr: values["descriptionTr"],
		}
		if len(images) > 0 {
			s.IconURL = images[0]
		}
		return s
	}
	return crud.Resource{
		Name:      "services",
		Title:     "Hizmetler",
		Columns:   []string{"Başlık", "Açıklama"},
		MaxImages: 1,
		Fields: []crud.Field{
			{Name: "titleTr", Label: "Başlık", Kind: crud.KindText, Required: true},
			{Name: "descriptionTr", Label: "Açıklama", Kind: crud.KindTextarea, Required: true},
		},
		List: func(ctx context.Context) ([]crud.Item, error) {
			snap, err := listFromLoader(ctx, store.Services)
			if err != nil {
				return nil, err
			}
			items := make([]crud.Item, 0, len(snap))
			for _, s := range snap {
				items = append(items, crud.Item{
					ID:    s.ID,
					Cells: []string{s.TitleTr, excerpt(s.DescriptionTr)},
					Values: map[string]string{
						"titleTr":       s.TitleTr,
						"descriptionTr": s.DescriptionTr,
					},
					ImageURLs: nonEmpty(s.IconURL),
				})
			}
			return items, nil
		},
		Create: func(ctx context.Context, values map[string]string, images []string) error {
			_, err := f.CreateService(ctx, fromValues(values, images))
			return err
		},
		Update: func(ctx context.Context, id int, values map[string]string, images []string) error {
			s := fromValues(values, images)
			s.ID = id
			_, err := f.UpdateService(ctx, id, s)
			return err
		},
		Delete:      func(ctx context.Context, id int) error { return f.DeleteService(ctx, id) },
		Refresh:     func(ctx context.Context) { _ = store.Services.Refetch(ctx) },
		RemoveLocal: func(id int) { store.Services.Patch(dropByID(func(s backend.Service) int { return s.ID }, id)) },
	}
}

func categoryResource(store *content.Store, f *backend.Facade) crud.Resource {
	return crud.Resource{
		Name:    "categories",
		Title:   "Kategoriler",
		Columns: []string{"Ad"},
		Fields: []crud.Field{
			{Name: "name", Label: "Ad", Kind: crud.KindText, Required: true},
		},
		List: func(ctx context.Context) ([]crud.Item, error) {
			snap, err := listFromLoader(ctx, store.Categories)
			if err != nil {
				return nil, err
			}
			items := make([]crud.Item, 0, len(snap))
			for _, cat := range snap {
				items = append(items, crud.Item{
					ID:     cat.ID,
					Cells:  []string{cat.Name},
					Values: map[string]string{"name": cat.Name},
				})
			}
			return items, nil
		},
		Create: func(ctx context.Context, values map[string]string, _ []string) error {
			_, err := f.CreateCategory(ctx, backend.Category{Name: strings.TrimSpace(values["name"])})
			return err
		},
		Update: func(ctx context.Context, id int, values map[string]string, _ []string) error {
			_, err := f.UpdateCategory(ctx, id, backend.Category{ID: id, Name: strings.TrimSpace(values["name"])})
			return err
		},
		Delete:      func(ctx context.Context, id int) error { return f.DeleteCategory(ctx, id) },
		Refresh:     func(ctx context.Context) { _ = store.Categories.Refetch(ctx) },
		RemoveLocal: func(id int) { store.Categories.Patch(dropByID(func(c backend.Category) int { return c.ID }, id)) },
	}
}

func productResource(store *content.Store, f *backend.Facade) crud.Resource {
	fromValues := func(values map[string]string, images []string) (backend.Product, error) {
		price, err := strconv.ParseFloat(strings.TrimSpace(values["price"]), 64)
		if err != nil {
			return backend.Product{}, crud.Invalid("Fiyat sayısal olmalıdır.")
		}
		categoryID, err := strconv.Atoi(values["categoryId"])
		if err != nil || categoryID <= 0 {
			return backend.Product{}, crud.Invalid("Lütfen bir kategori seçin.")
		}
		return backend.Product{
			Name:        strings.TrimSpace(values["name"]),
			Description: values["description"],
			Price:       price,
			CategoryID:  categoryID,
			Color:       values["color"],
			Material:    values["material"],
			Weight:      values["weight"],
			Dimensions:  values["dimensions"],
			Link1:       values["link1"],
			Link2:       values["link2"],
			Link3:       values["link3"],
			ImageURLs:   images,
		}, nil
	}
	return crud.Resource{
		Name:      "products",
		Title:     "Ürünler",
		Columns:   []string{"Ad", "Kategori", "Fiyat"},
		MaxImages: backend.MaxProductImages,
		Fields: []crud.Field{
			{Name: "name", Label: "Ad", Kind: crud.KindText, Required: true},
			{Name: "description", Label: "Açıklama", Kind: crud.KindTextarea},
			{Name: "price", Label: "Fiyat", Kind: crud.KindDecimal, Required: true},
			{Name: "categoryId", Label: "Kategori", Kind: crud.KindSelect, Required: true,
				Options: func(ctx context.Context) []crud.Option {
					cats, err := listFromLoader(ctx, store.Categories)
					if err != nil {
						return nil
					}
					opts := make([]crud.Option, 0, len(cats))
					for _, cat := range cats {
						opts = append(opts, crud.Option{Value: strconv.Itoa(cat.ID), Label: cat.Name})
					}
					return opts
				}},
			{Name: "color", Label: "Renk", Kind: crud.KindText},
			{Name: "material", Label: "Malzeme", Kind: crud.KindText},
			{Name: "weight", Label: "Ağırlık", Kind: crud.KindText},
			{Name: "dimensions", Label: "Boyutlar", Kind: crud.KindText},
			{Name: "link1", Label: "Link 1", Kind: crud.KindURL},
			{Name: "link2", Label: "Link 2", Kind: crud.KindURL},
			{Name: "link3", Label: "Link 3", Kind: crud.KindURL},
		},
		List: func(ctx context.Context) ([]crud.Item, error) {
			snap, err := listFromLoader(ctx, store.Products)
			if err != nil {
				return nil, err
			}
			items := make([]crud.Item, 0, len(snap))
			for _, p := range snap {
				items = append(items, crud.Item{
					ID:    p.ID,
					Cells: []string{p.Name, p.CategoryName, fmt.Sprintf("%.2f ₺", p.Price)},
					Values: map[string]string{
						"name":        p.Name,
						"description": p.Description,
						"price":       strconv.FormatFloat(p.Price, 'f', -1, 64),
						"categoryId":  strconv.Itoa(p.CategoryID),
						"color":       p.Color,
						"material":    p.Material,
						"weight":      p.Weight,
						"dimensions":  p.Dimensions,
						"link1":       p.Link1,
						"link2":       p.Link2,
						"link3":       p.Link3,
					},
					ImageURLs: p.ImageURLs,
				})
			}
			return items, nil
		},
		Create: func(ctx context.Context, values map[string]string, images []string) error {
			p, err := fromValues(values, images)
			if err != nil {
				return err
			}
			_, err = f.CreateProduct(ctx, p)
			return err
		},
		Update: func(ctx context.Context, id int, values map[string]string, images []string) error {
			p, err := fromValues(values, images)
			if err != nil {
				return err
			}
			p.ID = id
			_, err = f.UpdateProduct(ctx, id, p)
			return err
		},
		Delete:      func(ctx context.Context, id int) error { return f.DeleteProduct(ctx, id) },
		Refresh:     func(ctx context.Context) { _ = store.Products.Refetch(ctx) },
		RemoveLocal: func(id int) { store.Products.Patch(dropByID(func(p backend.Product) int { return p.ID }, id)) },
	}
}

func referenceResource(store *content.Store, f *backend.Facade) crud.Resource {
	fromValues := func(values map[string]string, images []string) (backend.Reference, error) {
		order := 0
		if raw := strings.TrimSpace(values["order"]); raw != "" {
			var err error
			if order, err = strconv.Atoi(raw); err != nil {
				return backend.Reference{}, crud.Invalid("Sıra sayısal olmalıdır.")
			}
		}
		r := backend.Reference{
			CompanyName: strings.TrimSpace(values["companyName"]),
			WebsiteURL:  values["websiteUrl"],
			Order:       order,
		}
		if len(images) > 0 {
			r.LogoURL = images[0]
		}
		return r, nil
	}
	return crud.Resource{
		Name:      "references",
		Title:     "Referanslar",
		Columns:   []string{"Firma", "Web Sitesi", "Sıra"},
		MaxImages: 1,
		Fields: []crud.Field{
			{Name: "companyName", Label: "Firma", Kind: crud.KindText, Required: true},
			{Name: "websiteUrl", Label: "Web Sitesi", Kind: crud.KindURL},
			{Name: "order", Label: "Sıra", Kind: crud.KindNumber},
		},
		List: func(ctx context.Context) ([]crud.Item, error) {
			snap, err := listFromLoader(ctx, store.References)
			if err != nil {
				return nil, err
			}
			items := make([]crud.Item, 0, len(snap))
			for _, r := range snap {
				items = append(items, crud.Item{
					ID:    r.ID,
					Cells: []string{r.CompanyName, r.WebsiteURL, strconv.Itoa(r.Order)},
					Values: map[string]string{
						"companyName": r.CompanyName,
						"websiteUrl":  r.WebsiteURL,
						"order":       strconv.Itoa(r.Order),
					},
					ImageURLs: nonEmpty(r.LogoURL),
				})
			}
			return items, nil
		},
		Create: func(ctx context.Context, values map[string]string, images []string) error {
			r, err := fromValues(values, images)
			if err != nil {
				return err
			}
			_, err = f.CreateReference(ctx, r)
			return err
		},
		Update: func(ctx context.Context, id int, values map[string]string, images []string) error {
			r, err := fromValues(values, images)
			if err != nil {
				return err
			}
			r.ID = id
			_, err = f.UpdateReference(ctx, id, r)
			return err
		},
		Delete:      func(ctx context.Context, id int) error { return f.DeleteReference(ctx, id) },
		Refresh:     func(ctx context.Context) { _ = store.References.Refetch(ctx) },
		RemoveLocal: func(id int) { store.References.Patch(dropByID(func(r backend.Reference) int { return r.ID }, id)) },
	}
}

func blogResource(store *content.Store, f *backend.Facade) crud.Resource {
	fromValues := func(values map[string]string, images []string) backend.BlogPost {
		p := backend.BlogPost{
			TitleTr:   strings.TrimSpace(values["titleTr"]),
			ContentTr: values["contentTr"],
			Author:    values["author"],
			Tags:      values["tags"],
		}
		if len(images) > 0 {
			p.ImageURL = images[0]
		}
		return p
	}
	return crud.Resource{
		Name:      "blog",
		Title:     "Blog Yazıları",
		Columns:   []string{"Başlık", "Yazar", "Tarih"},
		MaxImages: 1,
		Fields: []crud.Field{
			{Name: "titleTr", Label: "Başlık", Kind: crud.KindText, Required: true},
			{Name: "contentTr", Label: "İçerik", Kind: crud.KindTextarea, Required: true},
			{Name: "author", Label: "Yazar", Kind: crud.KindText},
			{Name: "tags", Label: "Etiketler (virgülle)", Kind: crud.KindText},
		},
		List: func(ctx context.Context) ([]crud.Item, error) {
			snap, err := listFromLoader(ctx, store.BlogPosts)
			if err != nil {
				return nil, err
			}
			items := make([]crud.Item, 0, len(snap))
			for _, p := range snap {
				items = append(items, crud.Item{
					ID:    p.ID,
					Cells: []string{p.TitleTr, p.Author, p.CreatedAt},
					Values: map[string]string{
						"titleTr":   p.TitleTr,
						"contentTr": p.ContentTr,
						"author":    p.Author,
						"tags":      p.Tags,
					},
					ImageURLs: nonEmpty(p.ImageURL),
				})
			}
			return items, nil
		},
		Create: func(ctx context.Context, values map[string]string, images []string) error {
			_, err := f.CreateBlogPost(ctx, fromValues(values, images))
			return err
		},
		Update: func(ctx context.Context, id int, values map[string]string, images []string) error {
			p := fromValues(values, images)
			p.ID = id
			_, err := f.UpdateBlogPost(ctx, id, p)
			return err
		},
		Delete:      func(ctx context.Context, id int) error { return f.DeleteBlogPost(ctx, id) },
		Refresh:     func(ctx context.Context) { _ = store.BlogPosts.Refetch(ctx) },
		RemoveLocal: func(id int) { store.BlogPosts.Patch(dropByID(func(p backend.BlogPost) int { return p.ID }, id)) },
	}
}

func listFromLoader[T any](ctx context.Context, l *loader.Loader[T]) ([]T, error) {
	return l.Get(ctx)
}

func nonEmpty(urls ...string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// dropByID builds a fresh slice: snapshots of the old one may still be held
// by in-flight page renders, so the backing array must not be rewritten.
func dropByID[T any](id func(T) int, target int) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, item := range items {
			if id(item) != target {
				out = append(out, item)
			}
		}
		return out
	}
}

func excerpt(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	// Trim on a rune boundary, Turkish text is full of multibyte runes.
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
