// Package crud implements the single, schema-driven admin screen every
// resource shares: a create/edit form with optional image slots above a
// list with row-level edit/delete. The per-resource admin pages differ only
// in their Resource schema.
package crud

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kmabtech/web/internal/pkg/apiclient"
	"github.com/kmabtech/web/internal/pkg/flash"
	"github.com/kmabtech/web/internal/pkg/session"
	"go.uber.org/zap"
)

const maxUploadBytes = 16 << 20

// Uploader pushes one file to the backend and returns its hosted URL.
type Uploader func(ctx context.Context, filename string, r io.Reader) (string, error)

// Handler serves the admin screen for one Resource.
type Handler struct {
	res       Resource
	upload    Uploader
	logger    *zap.Logger
	loginPath string
	assetURL  func(string) string
}

// NewHandler creates a CRUD handler for a resource.
func NewHandler(res Resource, upload Uploader, assetURL func(string) string, loginPath string, logger *zap.Logger) *Handler {
	return &Handler{res: res, upload: upload, assetURL: assetURL, loginPath: loginPath, logger: logger}
}

// RegisterRoutes mounts the screen under rg (already behind the admin guard).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/" + h.res.Name)
	g.GET("", h.page)
	g.POST("", h.submit)
	g.POST("/:id/delete", h.delete)
}

type pageData struct {
	Title      string
	Resource   string
	Fields     []fieldView
	Columns    []string
	Items      []Item
	MaxImages  int
	EditingID  int
	FormValues map[string]string
	FormImages []string
	Flash      *flash.Message
	Error      string
	AssetURL   func(string) string
	AdminEmail string
}

type fieldView struct {
	Field
	Choices []Option
}

func (h *Handler) page(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.res.List(ctx)
	if err != nil {
		if h.backendUnauthorized(c, err) {
			return
		}
		h.render(c, pageData{Error: "Liste yüklenemedi. Backend çalışıyor mu?"})
		return
	}

	data := pageData{Items: items, Flash: flash.Pop(c)}

	// ?edit=<id> switches the form into update mode with the record's
	// current values and images.
	if editParam := c.Query("edit"); editParam != "" {
		if id, err := strconv.Atoi(editParam); err == nil {
			for _, item := range items {
				if item.ID == id {
					data.EditingID = id
					data.FormValues = item.Values
					data.FormImages = item.ImageURLs
					break
				}
			}
		}
	}
	h.render(c, data)
}

func (h *Handler) submit(c *gin.Context) {
	ctx := c.Request.Context()

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderSubmitError(c, 0, nil, nil, "Form okunamadı.")
		return
	}

	values := make(map[string]string, len(h.res.Fields))
	for _, f := range h.res.Fields {
		values[f.Name] = c.PostForm(f.Name)
	}

	editingID := 0
	if raw := c.PostForm("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			// A mangled id must not silently turn an update into a create.
			h.renderSubmitError(c, 0, values, nil, "Geçersiz kayıt.")
			return
		}
		editingID = id
	}
	// Existing URLs the user chose to keep (update mode).
	retained := c.PostFormArray("existing_images")

	for _, f := range h.res.Fields {
		if f.Required && values[f.Name] == "" {
			h.renderSubmitError(c, editingID, values, retained, f.Label+" zorunludur.")
			return
		}
	}

	var files []*multipart.FileHeader
	if c.Request.MultipartForm != nil {
		files = c.Request.MultipartForm.File["images"]
	}
	if h.res.MaxImages == 0 && len(files) > 0 {
		h.renderSubmitError(c, editingID, values, retained, "Bu kayıt resim desteklemiyor.")
		return
	}
	if len(retained)+len(files) > h.res.MaxImages {
		h.renderSubmitError(c, editingID, values, retained,
			"En fazla "+strconv.Itoa(h.res.MaxImages)+" resim ekleyebilirsiniz.")
		return
	}

	// Upload-then-save: every new file is uploaded first, sequentially, and
	// the returned URLs join the retained ones in selection order.
	images := append([]string{}, retained...)
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.renderSubmitError(c, editingID, values, retained, "Resim okunamadı: "+fh.Filename)
			return
		}
		url, err := h.upload(ctx, fh.Filename, f)
		f.Close()
		if err != nil {
			if h.backendUnauthorized(c, err) {
				return
			}
			h.logger.Warn("image upload failed", zap.String("resource", h.res.Name), zap.Error(err))
			h.renderSubmitError(c, editingID, values, retained, "Resim yüklenemedi: "+fh.Filename)
			return
		}
		images = append(images, url)
	}

	var err error
	if editingID == 0 {
		err = h.res.Create(ctx, values, images)
	} else {
		err = h.res.Update(ctx, editingID, values, images)
	}
	if err != nil {
		if h.backendUnauthorized(c, err) {
			return
		}
		var ue *UserError
		if errors.As(err, &ue) {
			h.renderSubmitError(c, editingID, values, retained, ue.Msg)
			return
		}
		h.logger.Warn("save failed", zap.String("resource", h.res.Name), zap.Int("id", editingID), zap.Error(err))
		h.renderSubmitError(c, editingID, values, retained, "Kaydedilemedi. Lütfen tekrar deneyin.")
		return
	}

	if h.res.Refresh != nil {
		h.res.Refresh(ctx)
	}
	if editingID == 0 {
		flash.Set(c, flash.KindSuccess, "Kayıt oluşturuldu.")
	} else {
		flash.Set(c, flash.KindSuccess, "Kayıt güncellendi.")
	}
	c.Redirect(http.StatusSeeOther, "/admin/"+h.res.Name)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		flash.Set(c, flash.KindError, "Geçersiz kayıt.")
		c.Redirect(http.StatusSeeOther, "/admin/"+h.res.Name)
		return
	}
	if err := h.res.Delete(c.Request.Context(), id); err != nil {
		if h.backendUnauthorized(c, err) {
			return
		}
		h.logger.Warn("delete failed", zap.String("resource", h.res.Name), zap.Int("id", id), zap.Error(err))
		flash.Set(c, flash.KindError, "Silinemedi. Lütfen tekrar deneyin.")
		c.Redirect(http.StatusSeeOther, "/admin/"+h.res.Name)
		return
	}
	// Drop the row from the cached list; no refetch needed to observe the
	// delete.
	if h.res.RemoveLocal != nil {
		h.res.RemoveLocal(id)
	}
	flash.Set(c, flash.KindSuccess, "Kayıt silindi.")
	c.Redirect(http.StatusSeeOther, "/admin/"+h.res.Name)
}

// backendUnauthorized handles a 401 from any admin call: the session token
// is no longer valid, so the session ends and the user re-authenticates.
func (h *Handler) backendUnauthorized(c *gin.Context, err error) bool {
	if !apiclient.IsStatus(err, http.StatusUnauthorized) {
		return false
	}
	session.Clear(c)
	c.Redirect(http.StatusFound, h.loginPath)
	c.Abort()
	return true
}

func (h *Handler) renderSubmitError(c *gin.Context, editingID int, values map[string]string, retained []string, msg string) {
	items, _ := h.res.List(c.Request.Context())
	h.render(c, pageData{
		Items:      items,
		EditingID:  editingID,
		FormValues: values,
		FormImages: retained,
		Error:      msg,
	})
}

func (h *Handler) render(c *gin.Context, data pageData) {
	data.Title = h.res.Title
	data.Resource = h.res.Name
	data.Columns = h.res.Columns
	data.MaxImages = h.res.MaxImages
	data.AssetURL = h.assetURL
	data.AdminEmail = session.Email(c)
	if data.FormValues == nil {
		data.FormValues = map[string]string{}
	}
	fields := make([]fieldView, 0, len(h.res.Fields))
	for _, f := range h.res.Fields {
		fv := fieldView{Field: f}
		if f.Options != nil {
			fv.Choices = f.Options(c.Request.Context())
		}
		fields = append(fields, fv)
	}
	data.Fields = fields
	c.HTML(http.StatusOK, "admin_resource.html", data)
}
