package orderwizard

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strconv"
	"strings"
)

// FormField düzleştirilmiş tek bir skaler alan (örn: personalInfo[phoneNumbers][0]).
type FormField struct {
	Key   string
	Value string
}

// FilePart multipart'a dosya olarak eklenecek ikili alan.
type FilePart struct {
	Key  string
	File File
}

// Payload gönderime hazır, düz anahtarlı sipariş verisi.
type Payload struct {
	Fields []FormField
	Files  []FilePart
}

// Opener kaydedilmiş dosyaların içeriğini okur.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// OpenerFunc fonksiyonları Opener olarak kullanmak için.
type OpenerFunc func(path string) (io.ReadCloser, error)

// Open Opener arayüzünü uygular.
func (f OpenerFunc) Open(path string) (io.ReadCloser, error) { return f(path) }

var (
	fileType     = reflect.TypeOf(File{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Serialize taslağı köşeli parantezli anahtarlara düzleştirir:
//   - iç içe nesneler: cardDesign[nameOnCard]
//   - diziler: personalInfo[phoneNumbers][0]
//   - File alanları kendi adlarıyla dosya parçası olur (companyLogo, addonImages, paymentProof)
//   - omitempty işaretli boş alanlar hiç gönderilmez
func Serialize(d *OrderDraft) *Payload {
	p := &Payload{}
	if d == nil {
		return p
	}
	p.walk("", "", reflect.ValueOf(*d))
	return p
}

func (p *Payload) walk(key, name string, v reflect.Value) {
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		p.walk(key, name, v.Elem())
		return
	}
	if v.Type() == fileType {
		p.Files = append(p.Files, FilePart{Key: name, File: v.Interface().(File)})
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		if v.Type().Implements(stringerType) {
			p.add(key, v.Interface().(fmt.Stringer).String())
			return
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			fieldName, omitEmpty := jsonName(sf)
			if fieldName == "-" {
				continue
			}
			fv := v.Field(i)
			if omitEmpty && fv.IsZero() {
				continue
			}
			p.walk(joinKey(key, fieldName), fieldName, fv)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			p.walk(key+"["+strconv.Itoa(i)+"]", name, v.Index(i))
		}
	case reflect.String:
		p.add(key, v.String())
	case reflect.Bool:
		p.add(key, strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.add(key, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		p.add(key, strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		p.add(key, strconv.FormatFloat(v.Float(), 'f', -1, 64))
	}
}

func (p *Payload) add(key, value string) {
	p.Fields = append(p.Fields, FormField{Key: key, Value: value})
}

func jsonName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = sf.Name
	}
	omit := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omit = true
		}
	}
	return name, omit
}

func joinKey(key, name string) string {
	if key == "" {
		return name
	}
	return key + "[" + name + "]"
}

// Get anahtarın ilk değerini döndürür.
func (p *Payload) Get(key string) (string, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// KeysWithPrefix verilen önekle başlayan alan anahtarlarını sırasıyla döndürür.
func (p *Payload) KeysWithPrefix(prefix string) []string {
	var keys []string
	for _, f := range p.Fields {
		if strings.HasPrefix(f.Key, prefix) {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// FilesFor verilen anahtardaki dosya parçalarını döndürür.
func (p *Payload) FilesFor(key string) []File {
	var files []File
	for _, fp := range p.Files {
		if fp.Key == key {
			files = append(files, fp.File)
		}
	}
	return files
}

// WriteMultipart önce skaler alanları, sonra dosyaları yazar. Writer kapatılmaz.
func (p *Payload) WriteMultipart(w *multipart.Writer, open Opener) error {
	for _, f := range p.Fields {
		if err := w.WriteField(f.Key, f.Value); err != nil {
			return fmt.Errorf("write field %s: %w", f.Key, err)
		}
	}
	if len(p.Files) > 0 && open == nil {
		return fmt.Errorf("payload has %d file part(s) but no opener", len(p.Files))
	}
	for _, fp := range p.Files {
		if err := writeFilePart(w, fp, open); err != nil {
			return err
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(w *multipart.Writer, fp FilePart, open Opener) error {
	rc, err := open.Open(fp.File.Path)
	if err != nil {
		return fmt.Errorf("open %s (%s): %w", fp.Key, fp.File.Path, err)
	}
	defer rc.Close()

	filename := fp.File.Name
	if filename == "" {
		filename = fp.Key
	}
	contentType := fp.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(fp.Key), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", fp.Key, err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("copy %s: %w", fp.Key, err)
	}
	return nil
}
