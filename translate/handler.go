package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/evergreen-ci/cirrus"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const (
	// ProviderGoogle is the name of the Google Cloud Translation provider.
	ProviderGoogle = "google"
	// ProviderMyMemory is the name of the MyMemory translation provider.
	ProviderMyMemory = "mymemory"
)

// Route is the path at which the translation handler is served.
const Route = "/api/translator_trigger"

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"

	maxRequestBodySize = 1 << 20
)

const (
	missingTextMessage         = "Missing the 'text' field in request body"
	unsupportedLanguageMessage = "The provided language is not supported"
	invalidJSONMessage         = "Invalid JSON in request body"
	methodNotAllowedMessage    = "Method not allowed"
	translationFailedPrefix    = "Translation failed: "
)

// Request is the body of a translation request.
type Request struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Response is the result of handling a translation request.
type Response struct {
	StatusCode  int
	ContentType string
	Body        string
}

type translationResult struct {
	TranslatedText string `json:"translated_text"`
}

// Handler handles translation requests by validating them and delegating the
// translation to a cirrus.Translator.
type Handler struct {
	translator cirrus.Translator
}

// NewHandler creates a new translation handler.
func NewHandler(t cirrus.Translator) (*Handler, error) {
	if t == nil {
		return nil, errors.New("must specify a translator")
	}
	return &Handler{translator: t}, nil
}

// Handle handles the raw body of a translation request. The translator is only
// called if the text is non-empty and both languages are supported.
func (h *Handler) Handle(ctx context.Context, body []byte) Response {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		grip.Info(message.WrapError(err, message.Fields{
			"message": "rejecting translation request with invalid body",
			"route":   Route,
		}))
		return textResponse(http.StatusBadRequest, invalidJSONMessage)
	}

	return h.handleRequest(ctx, req)
}

func (h *Handler) handleRequest(ctx context.Context, req Request) Response {
	msg := message.Fields{
		"message":     "handling translation request",
		"route":       Route,
		"source":      req.Source,
		"target":      req.Target,
		"text_length": len(req.Text),
	}

	if req.Text == "" {
		msg["status"] = http.StatusBadRequest
		grip.Info(msg)
		return textResponse(http.StatusBadRequest, missingTextMessage)
	}

	source := cirrus.Language(req.Source)
	target := cirrus.Language(req.Target)
	if source.Validate() != nil || target.Validate() != nil {
		msg["status"] = http.StatusBadRequest
		grip.Info(msg)
		return textResponse(http.StatusBadRequest, unsupportedLanguageMessage)
	}

	translated, err := h.translator.Translate(ctx, req.Text, source, target)
	if err != nil {
		msg["status"] = http.StatusInternalServerError
		grip.Error(message.WrapError(err, msg))
		return textResponse(http.StatusInternalServerError, translationFailedPrefix+errors.Cause(err).Error())
	}

	body, err := marshalResult(translationResult{TranslatedText: translated})
	if err != nil {
		msg["status"] = http.StatusInternalServerError
		grip.Error(message.WrapError(err, msg))
		return textResponse(http.StatusInternalServerError, translationFailedPrefix+err.Error())
	}

	msg["status"] = http.StatusOK
	grip.Info(msg)

	return Response{
		StatusCode:  http.StatusOK,
		ContentType: contentTypeJSON,
		Body:        body,
	}
}

// marshalResult encodes the result without escaping HTML characters or
// non-ASCII text.
func marshalResult(res translationResult) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		return "", errors.Wrap(err, "encoding translation result")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func textResponse(status int, body string) Response {
	return Response{
		StatusCode:  status,
		ContentType: contentTypeText,
		Body:        body,
	}
}

// ServeHTTP handles a translation request over HTTP. Only POST requests are
// accepted.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeResponse(w, textResponse(http.StatusMethodNotAllowed, methodNotAllowedMessage))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		grip.Info(message.WrapError(err, message.Fields{
			"message": "could not read translation request body",
			"route":   Route,
		}))
		writeResponse(w, textResponse(http.StatusBadRequest, invalidJSONMessage))
		return
	}

	writeResponse(w, h.Handle(r.Context(), body))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.WriteString(w, resp.Body); err != nil {
		grip.Warning(message.WrapError(err, message.Fields{
			"message": "could not write translation response",
			"route":   Route,
			"status":  resp.StatusCode,
		}))
	}
}

// NewServeMux returns a mux that serves the handler at Route.
func NewServeMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Route, h)
	return mux
}
