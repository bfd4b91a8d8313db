package translate

import (
	"context"

	"cloud.google.com/go/translate"
	"github.com/evergreen-ci/cirrus"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// GoogleTranslatorOptions are options to create a translator backed by Google
// Cloud Translation.
type GoogleTranslatorOptions struct {
	// CredentialsFile is the path to a service account key file. If it is not
	// given, Application Default Credentials are used.
	CredentialsFile *string
	// ClientOptions are additional options passed to the Google API client.
	ClientOptions []option.ClientOption
}

// NewGoogleTranslatorOptions returns new uninitialized options to create a
// Google translator.
func NewGoogleTranslatorOptions() *GoogleTranslatorOptions {
	return &GoogleTranslatorOptions{}
}

// SetCredentialsFile sets the path to the service account key file.
func (o *GoogleTranslatorOptions) SetCredentialsFile(path string) *GoogleTranslatorOptions {
	o.CredentialsFile = &path
	return o
}

// AddClientOptions adds options for the Google API client.
func (o *GoogleTranslatorOptions) AddClientOptions(opts ...option.ClientOption) *GoogleTranslatorOptions {
	o.ClientOptions = append(o.ClientOptions, opts...)
	return o
}

// Validate checks that the options are valid.
func (o *GoogleTranslatorOptions) Validate() error {
	if o.CredentialsFile != nil && *o.CredentialsFile == "" {
		return errors.New("credentials file cannot be empty if specified")
	}
	return nil
}

// GoogleTranslator provides a cirrus.Translator implementation backed by Google
// Cloud Translation.
type GoogleTranslator struct {
	client *translate.Client
}

// NewGoogleTranslator creates a new translator backed by Google Cloud
// Translation.
func NewGoogleTranslator(ctx context.Context, opts GoogleTranslatorOptions) (*GoogleTranslator, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}

	clientOpts := append([]option.ClientOption{}, opts.ClientOptions...)
	if opts.CredentialsFile != nil {
		clientOpts = append(clientOpts, option.WithCredentialsFile(*opts.CredentialsFile))
	}

	client, err := translate.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating Google Translate client")
	}

	return &GoogleTranslator{client: client}, nil
}

// Translate translates the text from the source language to the target
// language. The text is translated as plain text, so the result does not
// contain HTML escapes.
func (t *GoogleTranslator) Translate(ctx context.Context, text string, source, target cirrus.Language) (string, error) {
	sourceTag, err := source.Tag()
	if err != nil {
		return "", errors.Wrap(err, "getting source language")
	}
	targetTag, err := target.Tag()
	if err != nil {
		return "", errors.Wrap(err, "getting target language")
	}

	translations, err := t.client.Translate(ctx, []string{text}, targetTag, &translate.Options{
		Source: sourceTag,
		Format: translate.Text,
	})
	if err != nil {
		grip.Debug(message.WrapError(err, message.Fields{
			"message":  "Google Translate API call failed",
			"provider": ProviderGoogle,
			"source":   source,
			"target":   target,
		}))
		return "", errors.Wrap(err, "translating text")
	}
	if len(translations) == 0 {
		return "", errors.New("no translation returned")
	}

	return translations[0].Text, nil
}

// Close closes the underlying client.
func (t *GoogleTranslator) Close() error {
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}
