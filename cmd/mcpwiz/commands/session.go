package commands

import (
	"io"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/proxyconfig"
	"github.com/mcp-proxy/mcp-proxy/internal/registration"
	"github.com/mcp-proxy/mcp-proxy/internal/target/validator"
	"github.com/mcp-proxy/mcp-proxy/internal/wizard"
	"github.com/mcp-proxy/mcp-proxy/pkg/fileutil"
)

// newRegistrar builds the registration client for cfg. Metrics are recorded
// in reg when it is non-nil.
func newRegistrar(cfg *config.Config, reg prometheus.Registerer) *registration.Client {
	svc := registration.NewHTTPService(registration.WithTimeout(cfg.Registration.Timeout))
	var opts []registration.Option
	if reg != nil {
		opts = append(opts, registration.WithMetrics(registration.NewMetrics(reg)))
	}
	return registration.NewClient(svc, opts...)
}

// newController opens cfg.Document and starts a wizard session on step.
func newController(cfg *config.Config, reg prometheus.Registerer, step wizard.Step) (*wizard.Controller, error) {
	doc, err := loadDocument(cfg)
	if err != nil {
		return nil, err
	}
	return wizard.New(newRegistrar(cfg, reg),
		wizard.WithServer(cfg.Server.Address, cfg.Server.Port),
		wizard.WithDocument(doc),
		wizard.WithStep(step),
	), nil
}

// loadDocument opens cfg.Document, starting empty when it does not exist.
func loadDocument(cfg *config.Config) (*proxyconfig.Config, error) {
	doc, err := proxyconfig.LoadOrNew(cfg.Document)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, fileutil.ErrFileTooLarge):
		return nil, errors.NewUserError(err, "Point --document at the proxy configuration file")
	default:
		return nil, errors.NewUserError(err, "Fix or remove "+cfg.Document)
	}
}

// serverLabel renders the admin listener address for messages.
func serverLabel(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.Server.Port))
}

// addFailure turns a failed AddTarget result into a CLI error, printing
// field-level problems to w first.
func addFailure(w io.Writer, cfg *config.Config, err error) error {
	var invalid *wizard.InvalidDraftError
	if errors.As(err, &invalid) {
		printIssues(w, invalid.Issues)
		return errors.NewUserError(errors.Wrap(errors.ErrInvalidTarget, "target not registered"),
			"Fix the fields above and try again")
	}

	var regErr *registration.RegistrationError
	if errors.As(err, &regErr) {
		if regErr.Rejected() {
			return errors.NewUserError(err, "The proxy rejected the target; adjust it and try again")
		}
		return errors.NewSystemError(err, "Is the proxy admin listener reachable at "+serverLabel(cfg)+"?")
	}

	if errors.Is(err, wizard.ErrRegistrationInFlight) {
		return errors.NewUserError(err, "Wait for the pending registration to finish")
	}
	return err
}

// printIssues writes one line per validation issue, errors first.
func printIssues(w io.Writer, issues []*validator.ValidationError) {
	_ = validator.NewReporter(w, validator.FormatText).Report(issues)
}
