package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/middlewares"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/apiclient"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/flashmessages"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/queryparams"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/renderer"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	dashboardLayout = "layouts/dashboard_layout"
	listTemplate    = "dashboard/resources/list"
	formTemplate    = "dashboard/resources/form"
)

// ResourceHandler bir backend kaynağı için liste/oluştur/düzenle/sil ekranları.
// Tüm admin tabloları bu handler'ı kendi Resource tanımıyla kullanır.
type ResourceHandler[T any] struct {
	service services.IAdminService[T]
	res     Resource
}

// NewResourceHandler yeni bir ResourceHandler örneği oluşturur.
func NewResourceHandler[T any](service services.IAdminService[T], res Resource) *ResourceHandler[T] {
	return &ResourceHandler[T]{service: service, res: res}
}

// Register kaynağın rotalarını gruba ekler.
func (h *ResourceHandler[T]) Register(r fiber.Router) {
	base := "/" + h.res.Slug
	r.Get(base, h.List)
	if h.res.Editable() {
		r.Get(base+"/create", h.ShowCreate)
		r.Post(base+"/create", h.Create)
		r.Get(base+"/update/:id", h.ShowUpdate)
		r.Post(base+"/update/:id", h.Update)
	}
	if h.res.Deletable {
		r.Post(base+"/delete/:id", h.Delete)
		r.Delete(base+"/delete/:id", h.Delete)
	}
}

func (h *ResourceHandler[T]) basePath(c *fiber.Ctx) string {
	return middlewares.AdminPath(c, "/"+h.res.Slug)
}

// List sayfalı tablo.
func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams(h.res.SortBy)
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Liste parametreleri okunamadı", zap.String("resource", h.res.Slug), zap.Error(err))
		params = queryparams.DefaultListParams(h.res.SortBy)
	}
	params.Validate()

	data := fiber.Map{
		"Title":    h.res.Title,
		"Resource": h.res,
		"BasePath": h.basePath(c),
		"Params":   params,
	}
	result, err := h.service.List(utils.RequestContext(c), params)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return err
		}
		data[renderer.FlashErrorKeyView] = fmt.Sprintf("%s could not be loaded. Please try again.", h.res.Title)
		result = &queryparams.PaginatedResult{Data: []T{}}
	}
	data["Result"] = result
	data["Rows"] = toRows(result.Data)
	return renderer.Render(c, listTemplate, dashboardLayout, data)
}

// ShowCreate boş form.
func (h *ResourceHandler[T]) ShowCreate(c *fiber.Ctx) error {
	return h.renderForm(c, "New "+h.res.Singular, h.basePath(c)+"/create", flashmessages.GetFlashFormData(c), nil, fiber.StatusOK)
}

// Create formu backend'e gönderir. Backend doğrulama hataları formda gösterilir.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	_, err := h.service.Create(utils.RequestContext(c), h.body(c))
	if err != nil {
		return h.mutationFailed(c, err, "New "+h.res.Singular, h.basePath(c)+"/create")
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, h.res.Singular+" created successfully.")
	return c.Redirect(h.basePath(c), fiber.StatusFound)
}

// ShowUpdate kaydı formda gösterir.
func (h *ResourceHandler[T]) ShowUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid ID.")
		return c.Redirect(h.basePath(c), fiber.StatusSeeOther)
	}
	item, err := h.service.Get(utils.RequestContext(c), uint(id))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return err
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(h.basePath(c), fiber.StatusSeeOther)
	}
	formData := flashmessages.GetFlashFormData(c)
	if formData == nil {
		formData = toRow(item)
	}
	return h.renderForm(c, "Edit "+h.res.Singular, fmt.Sprintf("%s/update/%d", h.basePath(c), id), formData, nil, fiber.StatusOK)
}

// Update kaydı günceller.
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid ID.")
		return c.Redirect(h.basePath(c), fiber.StatusSeeOther)
	}
	action := fmt.Sprintf("%s/update/%d", h.basePath(c), id)
	if _, err := h.service.Update(utils.RequestContext(c), uint(id), h.body(c)); err != nil {
		return h.mutationFailed(c, err, "Edit "+h.res.Singular, action)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, h.res.Singular+" updated successfully.")
	return c.Redirect(h.basePath(c), fiber.StatusFound)
}

// Delete kaydı siler.
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid ID.")
		return c.Redirect(h.basePath(c), fiber.StatusSeeOther)
	}
	if err := h.service.Delete(utils.RequestContext(c), uint(id)); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return err
		}
		msg := err.Error()
		if apiErr, ok := apiclient.AsAPIError(err); ok {
			msg = apiErr.FirstMessage()
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, h.res.Singular+" deleted successfully.")
	}
	return c.Redirect(h.basePath(c), fiber.StatusSeeOther)
}

// mutationFailed doğrulama hatalarını formda (422), diğer hataları flash ile gösterir.
func (h *ResourceHandler[T]) mutationFailed(c *fiber.Ctx, err error, title, action string) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return err
	}
	if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.IsValidation() {
		fieldErrs := make(map[string]string, len(apiErr.Fields))
		for k, msgs := range apiErr.Fields {
			if len(msgs) > 0 {
				fieldErrs[k] = msgs[0]
			}
		}
		c.Locals("formError", apiErr.FirstMessage())
		return h.renderForm(c, title, action, h.postedValues(c), fieldErrs, fiber.StatusUnprocessableEntity)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	_ = flashmessages.SetFlashFormData(c, h.postedValues(c))
	return c.Redirect(action, fiber.StatusSeeOther)
}

func (h *ResourceHandler[T]) renderForm(c *fiber.Ctx, title, action string, formData map[string]interface{}, fieldErrs map[string]string, status int) error {
	if formData == nil {
		formData = map[string]interface{}{}
	}
	if fieldErrs == nil {
		fieldErrs = map[string]string{}
	}
	data := fiber.Map{
		"Title":    title,
		"Resource": h.res,
		"BasePath": h.basePath(c),
		"Action":   action,
		"FormData": formData,
		"Errors":   fieldErrs,
		"Options":  h.options(utils.RequestContext(c)),
	}
	if msg, ok := c.Locals("formError").(string); ok && msg != "" {
		data[renderer.FlashErrorKeyView] = msg
	}
	return renderer.Render(c, formTemplate, dashboardLayout, data, status)
}

// options select alanlarının seçeneklerini toplar.
func (h *ResourceHandler[T]) options(ctx context.Context) map[string][]Option {
	out := make(map[string][]Option)
	for _, f := range h.res.Fields {
		if f.Kind != FieldSelect {
			continue
		}
		opts := f.Options
		if f.Lookup != nil {
			looked, err := f.Lookup(ctx)
			if err != nil {
				configslog.Log.Warn("Form seçenekleri okunamadı", zap.String("field", f.Name), zap.Error(err))
			} else {
				opts = looked
			}
		}
		out[f.Name] = opts
	}
	return out
}

// postedValues formdaki dosya dışı alanlar.
func (h *ResourceHandler[T]) postedValues(c *fiber.Ctx) map[string]interface{} {
	out := make(map[string]interface{}, len(h.res.Fields))
	for _, f := range h.res.Fields {
		switch f.Kind {
		case FieldFile:
		case FieldCheckbox:
			out[f.Name] = checked(c.FormValue(f.Name))
		default:
			out[f.Name] = strings.TrimSpace(c.FormValue(f.Name))
		}
	}
	return out
}

func checked(v string) bool {
	return v == "on" || v == "true" || v == "1"
}

// body formu backend gövdesine çevirir. Dosya alanı olan kaynaklar multipart,
// diğerleri JSON gönderilir.
func (h *ResourceHandler[T]) body(c *fiber.Ctx) apiclient.Body {
	values := h.postedValues(c)
	if !h.res.HasFiles() {
		return apiclient.JSONBody(values)
	}

	files := make(map[string]*multipart.FileHeader)
	for _, f := range h.res.Fields {
		if f.Kind != FieldFile {
			continue
		}
		if fh, err := c.FormFile(f.Name); err == nil && fh.Size > 0 {
			files[f.Name] = fh
		}
	}
	return apiclient.MultipartBody(func(w *multipart.Writer) error {
		for k, v := range values {
			s := fmt.Sprint(v)
			if b, ok := v.(bool); ok {
				s = "0"
				if b {
					s = "1"
				}
			}
			if err := w.WriteField(k, s); err != nil {
				return err
			}
		}
		for name, fh := range files {
			if err := copyFilePart(w, name, fh); err != nil {
				return err
			}
		}
		return nil
	})
}

func copyFilePart(w *multipart.Writer, name string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, fh.Filename))
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	hdr.Set("Content-Type", ct)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}
