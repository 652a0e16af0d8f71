package dto

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// MaxBodyBytes is the maximum accepted request body size (1 MB).
const MaxBodyBytes = 1 << 20

const formContentType = "application/x-www-form-urlencoded"

// DecodeRecord reads the request body into a Record. Form posts are read with
// validation.FromValues, anything else as a JSON object. A body that is too
// large or unreadable wraps domain.ErrValidation; a body that is not an
// object wraps validation.ErrShape.
func DecodeRecord(w http.ResponseWriter, r *http.Request) (*validation.Record, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return nil, readError(err)
		}
		return validation.FromValues(r.PostForm)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, readError(err)
	}
	return validation.FromJSON(data)
}

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == formContentType
}

func readError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: body exceeds %d bytes", domain.ErrValidation, tooLarge.Limit)
	}
	return fmt.Errorf("%w: reading body: %w", domain.ErrValidation, err)
}
