package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized backend oturumu reddetti (401). Yerel oturum temizlenmiştir.
	ErrUnauthorized = errors.New("apiclient: session expired or unauthorized")
	// ErrNotFound kaynak bulunamadı (404).
	ErrNotFound = errors.New("apiclient: resource not found")
)

// APIError backend'in döndürdüğü 4xx/5xx hata gövdesi.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("apiclient: backend returned %d: %s", e.Status, e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("apiclient: backend returned %d: %s (%s)", e.Status, e.Message, strings.Join(keys, ", "))
}

// IsValidation 400/422 doğrulama hatası mı?
func (e *APIError) IsValidation() bool {
	return e.Status == 400 || e.Status == 422
}

// FirstMessage kullanıcıya gösterilecek tek satırlık mesaj.
func (e *APIError) FirstMessage() string {
	if e.Message != "" {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(e.Fields[k]) > 0 {
			return e.Fields[k][0]
		}
	}
	return "Request failed."
}

// AsAPIError hata zincirinde *APIError arar.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody backend'in hata gövdesi. errors alanı hem "alan": "mesaj" hem de
// "alan": ["mesaj", ...] biçiminde gelebilir.
type errorBody struct {
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if len(apiErr.Message) > 200 {
			apiErr.Message = apiErr.Message[:200]
		}
		return apiErr
	}
	apiErr.Message = eb.Message
	if apiErr.Message == "" {
		apiErr.Message = eb.Error
	}
	if len(eb.Errors) > 0 {
		apiErr.Fields = make(map[string][]string, len(eb.Errors))
		for k, raw := range eb.Errors {
			var list []string
			if err := json.Unmarshal(raw, &list); err == nil {
				apiErr.Fields[k] = list
				continue
			}
			var one string
			if err := json.Unmarshal(raw, &one); err == nil {
				apiErr.Fields[k] = []string{one}
			}
		}
	}
	return apiErr
}
