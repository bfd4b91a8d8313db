package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const defaultMyMemoryBaseURL = "https://api.mymemory.translated.net"

// MyMemoryTranslatorOptions are options to create a translator backed by the
// MyMemory translation API.
type MyMemoryTranslatorOptions struct {
	// BaseURL is the base URL of the MyMemory API. Defaults to the public API.
	BaseURL *string
	// Email is an optional contact email sent with each request, which raises
	// the daily quota of the keyless API.
	Email *string
	// HTTPClient is the HTTP client used to make requests. If it is not given,
	// a client is taken from the shared pool and returned on Close.
	HTTPClient *http.Client

	ownsHTTPClient bool
}

// NewMyMemoryTranslatorOptions returns new uninitialized options to create a
// MyMemory translator.
func NewMyMemoryTranslatorOptions() *MyMemoryTranslatorOptions {
	return &MyMemoryTranslatorOptions{}
}

// SetBaseURL sets the base URL of the MyMemory API.
func (o *MyMemoryTranslatorOptions) SetBaseURL(u string) *MyMemoryTranslatorOptions {
	o.BaseURL = &u
	return o
}

// SetEmail sets the contact email.
func (o *MyMemoryTranslatorOptions) SetEmail(email string) *MyMemoryTranslatorOptions {
	o.Email = &email
	return o
}

// SetHTTPClient sets the HTTP client used to make requests.
func (o *MyMemoryTranslatorOptions) SetHTTPClient(hc *http.Client) *MyMemoryTranslatorOptions {
	o.HTTPClient = hc
	return o
}

// Validate checks that the options are valid and sets defaults where possible.
func (o *MyMemoryTranslatorOptions) Validate() error {
	if o.BaseURL == nil {
		o.BaseURL = utility.ToStringPtr(defaultMyMemoryBaseURL)
	}

	catcher := grip.NewBasicCatcher()
	u, err := url.Parse(*o.BaseURL)
	catcher.Add(errors.Wrap(err, "parsing base URL"))
	catcher.NewWhen(err == nil && (u.Scheme == "" || u.Host == ""), "base URL must be absolute")
	if catcher.HasErrors() {
		return catcher.Resolve()
	}

	if o.HTTPClient == nil {
		o.HTTPClient = utility.GetHTTPClient()
		o.ownsHTTPClient = true
	}

	return nil
}

// MyMemoryTranslator provides a cirrus.Translator implementation backed by the
// MyMemory translation API.
type MyMemoryTranslator struct {
	opts MyMemoryTranslatorOptions
}

// NewMyMemoryTranslator creates a new translator backed by MyMemory.
func NewMyMemoryTranslator(opts MyMemoryTranslatorOptions) (*MyMemoryTranslator, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}
	return &MyMemoryTranslator{opts: opts}, nil
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	// ResponseStatus is sometimes sent as a string.
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

// Translate translates the text from the source language to the target
// language.
func (t *MyMemoryTranslator) Translate(ctx context.Context, text string, source, target cirrus.Language) (string, error) {
	if err := source.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid source language")
	}
	if err := target.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid target language")
	}

	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", string(source)+"|"+string(target))
	if email := utility.FromStringPtr(t.opts.Email); email != "" {
		q.Set("de", email)
	}
	u := strings.TrimSuffix(*t.opts.BaseURL, "/") + "/get?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.opts.HTTPClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "making request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("MyMemory API returned status %d", resp.StatusCode)
	}

	var out myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if status := out.ResponseStatus.String(); status != "200" {
		grip.Debug(message.Fields{
			"message":  "MyMemory API returned an error",
			"provider": ProviderMyMemory,
			"status":   status,
			"details":  out.ResponseDetails,
		})
		return "", errors.Errorf("MyMemory API error (status %s): %s", status, out.ResponseDetails)
	}

	return out.ResponseData.TranslatedText, nil
}

// Close returns the HTTP client to the pool if the translator owns it.
func (t *MyMemoryTranslator) Close() error {
	if t.opts.ownsHTTPClient && t.opts.HTTPClient != nil {
		utility.PutHTTPClient(t.opts.HTTPClient)
		t.opts.HTTPClient = nil
		t.opts.ownsHTTPClient = false
	}
	return nil
}
