// Command translator serves the translation handler, either as an AWS Lambda
// function behind API Gateway or as an HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/cirrus/internal/config"
	"github.com/evergreen-ci/cirrus/translate"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

type closableTranslator interface {
	cirrus.Translator
	Close() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		grip.Emergency(message.WrapError(err, message.Fields{
			"message": "translator service failed",
		}))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	conf, err := config.NewLoader().Translator()
	if err != nil {
		return errors.Wrap(err, "invalid translator configuration")
	}

	tr, err := newTranslator(ctx, conf)
	if err != nil {
		return errors.Wrapf(err, "creating '%s' translator", conf.Provider)
	}
	closeTranslator := closeOnce(tr, conf.Provider)
	defer closeTranslator()

	h, err := translate.NewHandler(tr)
	if err != nil {
		return errors.Wrap(err, "creating handler")
	}

	if conf.InLambda {
		grip.Info(message.Fields{
			"message":  "starting Lambda handler",
			"provider": conf.Provider,
		})
		// StartWithOptions never returns, so the translator is closed when
		// Lambda sends SIGTERM before shutting the function down.
		lambda.StartWithOptions(h.HandleAPIGatewayRequest,
			lambda.WithContext(ctx),
			lambda.WithEnableSIGTERM(closeTranslator))
		return nil
	}

	return serve(ctx, h, conf)
}

// closeOnce returns a function that closes the translator on its first call.
func closeOnce(tr closableTranslator, provider string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			grip.Warning(message.WrapError(tr.Close(), message.Fields{
				"message":  "could not close translator",
				"provider": provider,
			}))
		})
	}
}

func newTranslator(ctx context.Context, conf *config.TranslatorConfig) (closableTranslator, error) {
	switch conf.Provider {
	case translate.ProviderGoogle:
		opts := translate.NewGoogleTranslatorOptions()
		if conf.GoogleCredentialsFile != "" {
			opts.SetCredentialsFile(conf.GoogleCredentialsFile)
		}
		return translate.NewGoogleTranslator(ctx, *opts)
	case translate.ProviderMyMemory:
		opts := translate.NewMyMemoryTranslatorOptions()
		if conf.MyMemoryEmail != "" {
			opts.SetEmail(conf.MyMemoryEmail)
		}
		return translate.NewMyMemoryTranslator(*opts)
	default:
		return nil, errors.Errorf("unrecognized translation provider '%s'", conf.Provider)
	}
}

func serve(ctx context.Context, h *translate.Handler, conf *config.TranslatorConfig) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(conf.Port),
		Handler:           translate.NewServeMux(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		grip.Info(message.Fields{
			"message":  "starting HTTP server",
			"addr":     srv.Addr,
			"route":    translate.Route,
			"provider": conf.Provider,
		})
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return errors.Wrap(err, "serving HTTP")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down HTTP server")
	}
	grip.Info("HTTP server stopped")

	return nil
}
