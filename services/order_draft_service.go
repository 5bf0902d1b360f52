package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/models"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderDraftServiceError sipariş taslağı servis hataları.
type OrderDraftServiceError string

func (e OrderDraftServiceError) Error() string { return string(e) }

const (
	ErrDraftNotFound       OrderDraftServiceError = "order draft not found or expired"
	ErrDraftProductMissing OrderDraftServiceError = "selected product is not available"
	ErrDraftSaveFailed     OrderDraftServiceError = "order draft could not be saved"
	ErrDraftSubmitFailed   OrderDraftServiceError = "order could not be submitted, please try again"
	ErrDraftUnknownAddon   OrderDraftServiceError = "selected add-on is not available"
	ErrDraftSubmitted      OrderDraftServiceError = "this order has already been submitted"
)

// DraftMutator adımda gönderilen form değerlerini taslağa uygular.
type DraftMutator func(d *orderwizard.OrderDraft) error

// FileRemover gönderilen/atılan taslakların yüklenen dosyalarını siler.
type FileRemover interface {
	Remove(files ...orderwizard.File)
}

// Quote fiyat özeti.
type Quote struct {
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
	Addons      []QuoteLine
	AddonsTotal decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// QuoteLine tek bir eklentinin fiyatı.
type QuoteLine struct {
	Title string
	Price decimal.Decimal
}

// IOrderDraftService sipariş sihirbazının sunucu tarafı durumu.
type IOrderDraftService interface {
	StartDraft(ctx context.Context, flow orderwizard.Flow, productID uint, quantity int) (*models.OrderDraftRecord, error)
	GetDraft(ctx context.Context, token string) (*models.OrderDraftRecord, error)
	Next(ctx context.Context, token string, mutate DraftMutator) (*models.OrderDraftRecord, error)
	Back(ctx context.Context, token string, mutate DraftMutator) (*models.OrderDraftRecord, error)
	GoTo(ctx context.Context, token string, step int) (*models.OrderDraftRecord, error)
	Submit(ctx context.Context, token string, mutate DraftMutator) (*models.OrderDraftRecord, error)
	Discard(ctx context.Context, token string) error
	Quote(ctx context.Context, rec *models.OrderDraftRecord) (*Quote, error)
	PurgeExpired(ctx context.Context) (int, error)
}

// OrderDraftService IOrderDraftService arayüzünü uygular.
type OrderDraftService struct {
	repo      repositories.IDraftRepository
	catalog   ICatalogService
	submitter orderwizard.Submitter
	files     FileRemover
	validator *orderwizard.Validator
	ttl       time.Duration
	now       func() time.Time

	locks     sync.Map // token -> *sync.Mutex
	submitted sync.Map // token -> struct{}; gönderilmiş ama silinememiş taslaklar
}

// NewOrderDraftService yeni bir OrderDraftService örneği oluşturur.
func NewOrderDraftService(repo repositories.IDraftRepository, catalog ICatalogService, submitter orderwizard.Submitter, files FileRemover, ttl time.Duration) *OrderDraftService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &OrderDraftService{
		repo:      repo,
		catalog:   catalog,
		submitter: submitter,
		files:     files,
		validator: orderwizard.NewValidator(),
		ttl:       ttl,
		now:       time.Now,
	}
}

var _ IOrderDraftService = (*OrderDraftService)(nil)

// lockDraft aynı taslağa eşzamanlı adımları (örn. çift tıklanan "gönder") sıraya
// sokar ve kilit altında taslağı okur. Taslak yoksa ya da gönderilmişse kilit
// kaydı bırakılmaz.
func (s *OrderDraftService) lockDraft(ctx context.Context, token string) (*models.OrderDraftRecord, func(), error) {
	m, _ := s.locks.LoadOrStore(token, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()

	rec, err := s.GetDraft(ctx, token)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) || errors.Is(err, ErrDraftSubmitted) {
			s.locks.CompareAndDelete(token, mu)
		}
		mu.Unlock()
		return nil, nil, err
	}
	return rec, mu.Unlock, nil
}

// StartDraft varsayılan değerlerle yeni bir taslak açar.
func (s *OrderDraftService) StartDraft(ctx context.Context, flow orderwizard.Flow, productID uint, quantity int) (*models.OrderDraftRecord, error) {
	if _, err := s.catalog.Product(ctx, productID); err != nil {
		configslog.Log.Warn("Taslak için ürün bulunamadı", zap.Uint("productID", productID), zap.Error(err))
		return nil, ErrDraftProductMissing
	}

	draft := orderwizard.NewDraft(productID)
	if quantity > 0 {
		draft.Quantity = quantity
	}
	rec := &models.OrderDraftRecord{
		Flow:      flow.Name,
		Step:      1,
		Draft:     *draft,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		configslog.Log.Error("Taslak oluşturulamadı", zap.Error(err))
		return nil, ErrDraftSaveFailed
	}
	configslog.Log.Info("Sipariş taslağı açıldı",
		zap.String("token", rec.Token), zap.String("flow", flow.Name), zap.Uint("productID", productID))
	return rec, nil
}

// GetDraft token ile taslağı getirir. Gönderilmiş taslaklar ErrDraftSubmitted döner.
func (s *OrderDraftService) GetDraft(ctx context.Context, token string) (*models.OrderDraftRecord, error) {
	if _, done := s.submitted.Load(token); done {
		return nil, ErrDraftSubmitted
	}
	rec, err := s.repo.FindByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	if rec.SubmittedAt != nil {
		return nil, ErrDraftSubmitted
	}
	return rec, nil
}

func (s *OrderDraftService) wizardFor(rec *models.OrderDraftRecord) (*orderwizard.Wizard, error) {
	flow, err := orderwizard.FlowByName(rec.Flow)
	if err != nil {
		return nil, err
	}
	return orderwizard.Resume(flow, rec.Step, &rec.Draft, s.validator), nil
}

// apply form değerlerini uygular ve katalogdan türetilen alanları (teslimat ücreti) doldurur.
// Hata olursa bu istekte yüklenen dosyalar silinir; kayıttaki dosyalara dokunulmaz.
func (s *OrderDraftService) apply(ctx context.Context, rec *models.OrderDraftRecord, before []orderwizard.File, mutate DraftMutator) error {
	var err error
	if mutate != nil {
		err = mutate(&rec.Draft)
	}
	if err == nil {
		err = s.refreshDeliveryFee(ctx, &rec.Draft)
	}
	if err != nil {
		s.removeFiles(filesNotIn(rec.Draft.Files(), before))
		return err
	}
	return nil
}

func (s *OrderDraftService) refreshDeliveryFee(ctx context.Context, d *orderwizard.OrderDraft) error {
	info := &d.DeliveryInfo
	if info.CountryID == 0 || info.CityID == 0 {
		info.DeliveryFee = decimal.Zero
		return nil
	}
	city, err := s.catalog.City(ctx, info.CountryID, info.CityID)
	if err != nil {
		if errors.Is(err, ErrCatalogNotFound) {
			info.CityID = 0
			info.DeliveryFee = decimal.Zero
			return nil
		}
		return err
	}
	info.DeliveryFee = city.DeliveryFee
	return nil
}

// save taslağı kaydeder. Kayıt başarılıysa taslaktan çıkan eski dosyalar,
// başarısızsa bu istekte yüklenen yeni dosyalar silinir.
func (s *OrderDraftService) save(ctx context.Context, rec *models.OrderDraftRecord, before []orderwizard.File) error {
	rec.ExpiresAt = s.now().Add(s.ttl)
	if err := s.repo.Save(ctx, rec); err != nil {
		configslog.Log.Error("Taslak kaydedilemedi", zap.String("token", rec.Token), zap.Error(err))
		s.removeFiles(filesNotIn(rec.Draft.Files(), before))
		return ErrDraftSaveFailed
	}
	s.removeFiles(filesNotIn(before, rec.Draft.Files()))
	return nil
}

func (s *OrderDraftService) removeFiles(files []orderwizard.File) {
	if len(files) > 0 {
		s.files.Remove(files...)
	}
}

// filesNotIn a'da olup b'de yolu bulunmayan dosyalar.
func filesNotIn(a, b []orderwizard.File) []orderwizard.File {
	var out []orderwizard.File
	for _, f := range a {
		found := false
		for _, g := range b {
			if f.Path == g.Path {
				found = true
				break
			}
		}
		if !found {
			out = append(out, f)
		}
	}
	return out
}

// Next form değerlerini uygular, taslağı her durumda kaydeder ve adım geçerliyse ilerler.
// Doğrulama hatası *orderwizard.ValidationError olarak, güncel kayıtla birlikte döner.
func (s *OrderDraftService) Next(ctx context.Context, token string, mutate DraftMutator) (*models.OrderDraftRecord, error) {
	rec, unlock, err := s.lockDraft(ctx, token)
	if err != nil {
		return nil, err
	}
	defer unlock()

	before := rec.Draft.Files()
	if err := s.apply(ctx, rec, before, mutate); err != nil {
		return rec, err
	}
	w, err := s.wizardFor(rec)
	if err != nil {
		s.removeFiles(filesNotIn(rec.Draft.Files(), before))
		return nil, err
	}

	stepErr := w.Next()
	rec.Step = w.Step()
	if err := s.save(ctx, rec, before); err != nil {
		return rec, err
	}
	return rec, stepErr
}

// Back girilen değerleri doğrulamadan kaydeder ve bir adım geri gider.
func (s *OrderDraftService) Back(ctx context.Context, token string, mutate DraftMutator) (*models.OrderDraftRecord, error) {
	rec, unlock, err := s.lockDraft(ctx, token)
	if err != nil {
		return nil, err
	}
	defer unlock()

	before := rec.Draft.Files()
	if err := s.apply(ctx, rec, before, mutate); err != nil {
		return rec, err
	}
	w, err := s.wizardFor(rec)
	if err != nil {
		s.removeFiles(filesNotIn(rec.Draft.Files(), before))
		return nil, err
	}
	w.Back()
	rec.Step = w.Step()
	return rec, s.save(ctx, rec, before)
}

// GoTo özet ekranından daha önceki bir adıma döner.
func (s *OrderDraftService) GoTo(ctx context.Context, token string, step int) (*models.OrderDraftRecord, error) {
	rec, unlock, err := s.lockDraft(ctx, token)
	if err != nil {
		return nil, err
	}
	defer unlock()

	w, err := s.wizardFor(rec)
	if err != nil {
		return nil, err
	}
	if err := w.GoTo(step); err != nil {
		return rec, err
	}
	rec.Step = w.Step()
	return rec, s.save(ctx, rec, rec.Draft.Files())
}

// Submit son adımda siparişi backend'e tek seferlik gönderir. Başarılıysa taslak
// ve dosyaları silinir; başarısızsa taslak olduğu gibi kalır.
func (s *OrderDraftService) Submit(ctx context.Context, token string, mutate DraftMutator) (*models.OrderDraftRecord, error) {
	rec, unlock, err := s.lockDraft(ctx, token)
	if err != nil {
		return nil, err
	}
	defer unlock()

	before := rec.Draft.Files()
	if err := s.apply(ctx, rec, before, mutate); err != nil {
		return rec, err
	}
	if err := s.checkAddons(ctx, &rec.Draft); err != nil {
		s.removeFiles(filesNotIn(rec.Draft.Files(), before))
		return rec, err
	}
	w, err := s.wizardFor(rec)
	if err != nil {
		s.removeFiles(filesNotIn(rec.Draft.Files(), before))
		return nil, err
	}

	if err := w.Submit(ctx, s.submitter); err != nil {
		if ve, ok := orderwizard.AsValidationError(err); ok {
			// Hatalı adıma geri götür
			if ve.Step > 0 && ve.Step < rec.Step {
				rec.Step = ve.Step
			}
			_ = s.save(ctx, rec, before)
			return rec, err
		}
		if errors.Is(err, orderwizard.ErrNotLastStep) || errors.Is(err, orderwizard.ErrAlreadySubmitted) {
			s.removeFiles(filesNotIn(rec.Draft.Files(), before))
			return rec, err
		}
		configslog.Log.Error("Sipariş gönderilemedi",
			zap.String("token", token), zap.String("flow", rec.Flow), zap.Error(err))
		_ = s.save(ctx, rec, before)
		return rec, fmt.Errorf("%w: %w", ErrDraftSubmitFailed, err)
	}

	configslog.Log.Info("Sipariş gönderildi", zap.String("token", token), zap.String("flow", rec.Flow))
	s.finishSubmitted(ctx, rec)
	s.removeFiles(rec.Draft.Files())
	s.removeFiles(filesNotIn(before, rec.Draft.Files()))
	s.locks.Delete(token)
	return rec, nil
}

// finishSubmitted gönderilen taslağı siler. Silinemezse kayıt gönderildi olarak
// işaretlenir; işaret de yazılamazsa token bu süreçte hatırlanır. Böylece
// tekrar deneme ikinci bir sipariş oluşturmaz.
func (s *OrderDraftService) finishSubmitted(ctx context.Context, rec *models.OrderDraftRecord) {
	err := s.repo.Delete(ctx, rec)
	if err == nil {
		return
	}
	configslog.Log.Warn("Gönderilen taslak silinemedi", zap.String("token", rec.Token), zap.Error(err))

	now := s.now()
	rec.SubmittedAt = &now
	if err := s.repo.Save(ctx, rec); err != nil {
		configslog.Log.Error("Taslak gönderildi olarak işaretlenemedi", zap.String("token", rec.Token), zap.Error(err))
		s.submitted.Store(rec.Token, struct{}{})
	}
}

// checkAddons seçilen eklentilerin katalogda olduğunu ve seçeneklerin geçerli olduğunu doğrular.
func (s *OrderDraftService) checkAddons(ctx context.Context, d *orderwizard.OrderDraft) error {
	if len(d.Addons) == 0 {
		return nil
	}
	addons, err := s.catalog.Addons(ctx)
	if err != nil {
		return err
	}
	for _, sel := range d.Addons {
		if !addonAccepts(addons, sel) {
			return ErrDraftUnknownAddon
		}
	}
	return nil
}

func addonAccepts(addons []models.Addon, sel orderwizard.AddonSelection) bool {
	for _, a := range addons {
		if a.ID == sel.AddonID {
			return a.AcceptsOption(sel.Value)
		}
	}
	return false
}

// Discard taslağı ve dosyalarını siler (sihirbaz kapatıldığında).
func (s *OrderDraftService) Discard(ctx context.Context, token string) error {
	rec, unlock, err := s.lockDraft(ctx, token)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.repo.Delete(ctx, rec); err != nil {
		configslog.Log.Error("Taslak silinemedi", zap.String("token", token), zap.Error(err))
		return ErrDraftSaveFailed
	}
	s.removeFiles(rec.Draft.Files())
	s.locks.Delete(token)
	return nil
}

// Quote ürün fiyatı × adet + eklentiler (sipariş başına bir kez) + teslimat ücreti.
func (s *OrderDraftService) Quote(ctx context.Context, rec *models.OrderDraftRecord) (*Quote, error) {
	d := rec.Draft
	product, err := s.catalog.Product(ctx, d.ProductID)
	if err != nil {
		return nil, err
	}
	qty := d.Quantity
	if qty < 1 {
		qty = 1
	}
	q := &Quote{
		UnitPrice:   product.Price,
		Quantity:    qty,
		Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(qty))),
		AddonsTotal: decimal.Zero,
		DeliveryFee: d.DeliveryInfo.DeliveryFee,
	}

	if len(d.Addons) > 0 {
		addons, err := s.catalog.Addons(ctx)
		if err != nil {
			return nil, err
		}
		for _, sel := range d.Addons {
			for _, a := range addons {
				if a.ID != sel.AddonID {
					continue
				}
				q.Addons = append(q.Addons, QuoteLine{Title: a.Title, Price: a.Price})
				q.AddonsTotal = q.AddonsTotal.Add(a.Price)
			}
		}
	}
	q.Total = q.Subtotal.Add(q.AddonsTotal).Add(q.DeliveryFee)
	return q, nil
}

// PurgeExpired süresi dolan taslakları ve dosyalarını temizler.
func (s *OrderDraftService) PurgeExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for _, rec := range expired {
		s.removeFiles(rec.Draft.Files())
		s.locks.Delete(rec.Token)
		s.submitted.Delete(rec.Token)
	}
	if len(expired) > 0 {
		configslog.SLog.Infof("%d süresi dolmuş sipariş taslağı temizlendi", len(expired))
	}
	return len(expired), nil
}
