package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// Body istek gövdesi kodlayıcısı.
type Body interface {
	Encode() (contentType string, r io.Reader, err error)
}

type jsonBody struct{ v any }

// JSONBody değeri application/json olarak gönderir.
func JSONBody(v any) Body { return jsonBody{v: v} }

func (b jsonBody) Encode() (string, io.Reader, error) {
	buf, err := json.Marshal(b.v)
	if err != nil {
		return "", nil, fmt.Errorf("encode json body: %w", err)
	}
	return "application/json", bytes.NewReader(buf), nil
}

type multipartBody struct {
	write func(w *multipart.Writer) error
}

// MultipartBody ikili alan içeren oluşturma/güncelleme istekleri için
// multipart/form-data gövdesi üretir. Writer yazma fonksiyonundan sonra kapatılır.
func MultipartBody(write func(w *multipart.Writer) error) Body {
	return multipartBody{write: write}
}

func (b multipartBody) Encode() (string, io.Reader, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := b.write(mw); err != nil {
		return "", nil, fmt.Errorf("encode multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", nil, fmt.Errorf("close multipart body: %w", err)
	}
	return mw.FormDataContentType(), &buf, nil
}

// FormBody düz anahtar/değer çiftlerini multipart olarak gönderir.
func FormBody(fields map[string]string) Body {
	return MultipartBody(func(w *multipart.Writer) error {
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
