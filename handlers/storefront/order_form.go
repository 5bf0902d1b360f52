package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/uploads"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"

	"github.com/gofiber/fiber/v2"
)

// FileStore sihirbaz yüklemelerini saklar. Taslaktan çıkan dosyaları
// kayıttan sonra servis siler; mutator'lar dosya silmez.
type FileStore interface {
	SaveHeader(kind uploads.Kind, fh *multipart.FileHeader) (orderwizard.File, error)
}

// uploadError yükleme hatasını alan hatasına çevirir; adım ilerlemez.
func uploadError(step int, path orderwizard.Path, err error) error {
	msg := "The file could not be uploaded."
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		msg = "The file must be smaller than 10 MB."
	case errors.Is(err, uploads.ErrUnsupportedType):
		msg = "Unsupported file type."
	case errors.Is(err, uploads.ErrEmpty):
		msg = "The file is empty."
	}
	return &orderwizard.ValidationError{Step: step, Errors: []orderwizard.FieldError{{Path: path, Message: msg}}}
}

// stepForm bir adım formunun alanlarını taslağa uygulayan mutator üretir.
// Sadece o adımın alanları okunur; diğer bölümler değişmez.
type stepForm struct {
	c      *fiber.Ctx
	files  FileStore
	addons []models.Addon
	step   int
}

func (f stepForm) value(name string) string {
	return strings.TrimSpace(f.c.FormValue(name))
}

func (f stepForm) checked(name string) bool {
	v := f.c.FormValue(name)
	return v == "on" || v == "true" || v == "1"
}

// values aynı isimli çoklu alanları (telefonlar) okur.
func (f stepForm) values(name string) []string {
	var out []string
	if form, err := f.c.MultipartForm(); err == nil {
		for _, v := range form.Value[name] {
			out = append(out, strings.TrimSpace(v))
		}
		return out
	}
	for _, raw := range f.c.Request().PostArgs().PeekMulti(name) {
		out = append(out, strings.TrimSpace(string(raw)))
	}
	return out
}

func (f stepForm) id(name string) uint {
	n, err := strconv.ParseUint(f.value(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// file formda dosya varsa saklar. Dosya seçilmediyse nil döner.
func (f stepForm) file(name string, kind uploads.Kind, path orderwizard.Path) (*orderwizard.File, error) {
	fh, err := f.c.FormFile(name)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil, nil
	}
	saved, err := f.files.SaveHeader(kind, fh)
	if err != nil {
		return nil, uploadError(f.step, path, err)
	}
	return &saved, nil
}

func (f stepForm) mutator(kind orderwizard.StepKind) services.DraftMutator {
	switch kind {
	case orderwizard.StepPersonal:
		return f.personal
	case orderwizard.StepDesign:
		return f.design
	case orderwizard.StepAddons:
		return f.addonsStep
	case orderwizard.StepDelivery:
		return f.delivery
	case orderwizard.StepPayment:
		return f.payment
	}
	return nil
}

func (f stepForm) personal(d *orderwizard.OrderDraft) error {
	p := &d.PersonalInfo
	p.Name = f.value("name")
	p.Position = f.value("position")
	p.Organization = f.value("organization")
	p.Email = f.value("email")
	p.BusinessEmail = f.value("businessEmail")

	d.SetPhoneNumbers(f.values("phoneNumbers"))

	p.SocialLinks.Facebook = f.value("facebook")
	p.SocialLinks.Instagram = f.value("instagram")
	p.SocialLinks.LinkedIn = f.value("linkedin")
	p.SocialLinks.X = f.value("x")
	p.SocialLinks.Website = f.value("website")

	d.DeliveryInfo.UseSameContact = f.checked("useSameContact")
	return nil
}

func (f stepForm) design(d *orderwizard.OrderDraft) error {
	cd := &d.CardDesign
	cd.NameOnCard = f.value("nameOnCard")
	cd.Color = f.value("color")
	cd.PrintLogo = f.checked("printLogo")
	if q, err := strconv.Atoi(f.value("quantity")); err == nil {
		d.Quantity = q
	}

	logo, err := f.file("companyLogo", uploads.KindLogo, orderwizard.PathCompanyLogo)
	if err != nil {
		return err
	}
	if logo != nil {
		cd.CompanyLogo = logo
	} else if f.checked("removeLogo") {
		cd.CompanyLogo = nil
	}
	return nil
}

// addonsStep katalogdaki her eklenti için "addons[<id>]" alanını okur.
// Görsel türündeki eklentiler "addonImages[<id>]" dosyasıyla seçilir; seçimin
// değeri yüklenen dosyanın özgün adıdır, dosya AddonImages'ta AddonID ile bulunur.
func (f stepForm) addonsStep(d *orderwizard.OrderDraft) error {
	for _, a := range f.addons {
		id := strconv.FormatUint(uint64(a.ID), 10)
		if a.InputKind != orderwizard.InputImage {
			if v := f.value("addons[" + id + "]"); v != "" {
				d.SetAddon(orderwizard.AddonSelection{AddonID: a.ID, Value: v, InputKind: a.InputKind})
			} else {
				d.RemoveAddon(a.ID)
			}
			continue
		}

		img, err := f.file("addonImages["+id+"]", uploads.KindAddonImage, orderwizard.PathAddonImages)
		if err != nil {
			return err
		}
		if img == nil && !f.checked("removeAddon["+id+"]") {
			continue
		}
		d.RemoveAddonImage(a.ID)
		d.RemoveAddon(a.ID)
		if img != nil {
			img.AddonID = a.ID
			name := img.Name
			if name == "" {
				name = "image"
			}
			d.AddonImages = append(d.AddonImages, *img)
			d.SetAddon(orderwizard.AddonSelection{AddonID: a.ID, Value: name, InputKind: a.InputKind})
		}
	}
	return nil
}

func (f stepForm) delivery(d *orderwizard.OrderDraft) error {
	di := &d.DeliveryInfo
	di.CountryID = f.id("countryId")
	di.CityID = f.id("cityId")
	di.AddressLine1 = f.value("addressLine1")
	di.AddressLine2 = f.value("addressLine2")
	di.Postcode = f.value("postcode")
	if !di.UseSameContact {
		di.DeliveryPhone = f.value("deliveryPhone")
		di.DeliveryEmail = f.value("deliveryEmail")
	}
	return nil
}

func (f stepForm) payment(d *orderwizard.OrderDraft) error {
	d.PaymentMethod = orderwizard.PaymentMethod(f.value("paymentMethod"))

	proof, err := f.file("paymentProof", uploads.KindPaymentProof, orderwizard.PathPaymentProof)
	if err != nil {
		return err
	}
	if proof != nil {
		d.PaymentProof = proof
	}
	if d.PaymentMethod == orderwizard.PaymentCash {
		d.PaymentProof = nil
	}
	return nil
}
