package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sushihentaime/blogapi/internal/blogservice"
)

type envelope map[string]any

func (e envelope) JSON() string {
	json, err := json.MarshalIndent(e, "", "\t")
	if err != nil {
		return ""
	}

	return string(json)
}

func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	json, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	for key, values := range headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(json)

	return nil
}

const maxBodyBytes = 1 << 20

// parseJSON decodes exactly one JSON value of at most maxBodyBytes into dst, rejecting
// fields dst does not declare. Errors are phrased for the client.
func (app *application) parseJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return describeDecodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must only contain a single JSON value")
	}

	return nil
}

func describeDecodeError(err error) error {
	var (
		syntaxErr  *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
		tooLarge   *http.MaxBytesError
		invalidDst *json.InvalidUnmarshalError
	)

	switch {
	case errors.Is(err, io.EOF):
		return errors.New("request body must not be empty")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("request body contains badly-formed JSON")
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("request body contains badly-formed JSON (at character %d)", syntaxErr.Offset)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("request body contains an invalid value for the %q field", typeErr.Field)
	case errors.As(err, &typeErr):
		return fmt.Errorf("request body contains incorrect JSON type (at character %d)", typeErr.Offset)
	case errors.As(err, &tooLarge):
		return fmt.Errorf("request body must not be larger than %d bytes", tooLarge.Limit)
	case errors.As(err, &invalidDst):
		// dst is chosen by the handler, never by the client.
		panic(err)
	}

	// encoding/json has no typed error for DisallowUnknownFields.
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return fmt.Errorf("request body contains unknown field %s", field)
	}

	return err
}

// readIDParam returns the blog id from the path. A value that is not a UUID cannot name an
// existing blog, so callers answer it with 404.
func (app *application) readIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

func readInt(qs url.Values, key string) (int, error) {
	s := qs.Get(key)
	if s == "" {
		return 0, nil
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer value", key)
	}

	return i, nil
}

// readListParams collects the pagination, filter and sort options of a list request.
func (app *application) readListParams(r *http.Request) (blogservice.ListParams, error) {
	qs := r.URL.Query()

	page, err := readInt(qs, "page")
	if err != nil {
		return blogservice.ListParams{}, err
	}

	limit, err := readInt(qs, "limit")
	if err != nil {
		return blogservice.ListParams{}, err
	}

	return blogservice.ListParams{
		Page:    page,
		Limit:   limit,
		Author:  qs.Get("author"),
		Title:   qs.Get("title"),
		Tags:    blogservice.ParseTags(qs.Get("tags")),
		OrderBy: qs.Get("order_by"),
		Order:   qs.Get("order"),
		State:   qs.Get("state"),
	}, nil
}
