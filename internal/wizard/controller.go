package wizard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcp-proxy/mcp-proxy/internal/logging"
	"github.com/mcp-proxy/mcp-proxy/internal/proxyconfig"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
	"github.com/mcp-proxy/mcp-proxy/internal/target/validator"
)

// Default coordinates of the proxy admin listener.
const (
	DefaultServerAddress = "0.0.0.0"
	DefaultServerPort    = 19000
)

// Registrar submits a target to the running proxy under a category.
// *registration.Client implements it.
type Registrar interface {
	Register(ctx context.Context, address string, port int, category target.Category, t target.Target) error
}

// Result is the outcome of one AddTarget call.
type Result struct {
	// Target is the target that was built from the draft, if validation passed.
	Target target.Target

	// Index is the target's position in the document, or -1 if it was not
	// appended.
	Index int

	// Warnings holds non-blocking validation issues.
	Warnings []*validator.ValidationError

	// Err is nil when the target was registered and appended.
	Err error
}

// Added reports whether the target was appended to the document.
func (r Result) Added() bool {
	return r.Err == nil && r.Index >= 0
}

// Option configures a Controller.
type Option func(*Controller)

// WithServer sets the proxy admin listener the targets are registered with.
func WithServer(address string, port int) Option {
	return func(c *Controller) {
		c.serverAddress = address
		c.serverPort = port
	}
}

// WithDocument starts the session from an existing document instead of an
// empty one.
func WithDocument(doc *proxyconfig.Config) Option {
	return func(c *Controller) {
		if doc != nil {
			c.doc = doc
		}
	}
}

// WithValidator replaces the default validator.
func WithValidator(v *validator.Validator) Option {
	return func(c *Controller) {
		c.validator = v
	}
}

// WithLogger sets the logger. Without it the logger is taken from each
// call's context.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithStep sets the initial step.
func WithStep(s Step) Option {
	return func(c *Controller) {
		c.step = s
	}
}

// Controller runs one setup session.
//
// Methods are safe to call from multiple goroutines, so a UI may run
// AddTarget in the background and keep navigating.
type Controller struct {
	registrar     Registrar
	validator     *validator.Validator
	gate          *Gate
	logger        *slog.Logger
	serverAddress string
	serverPort    int

	mu      sync.Mutex
	step    Step
	epoch   uint64 // bumped each time the targets step is left
	doc     *proxyconfig.Config
	lastErr error
}

// New creates a Controller on the listener step with an empty document.
func New(reg Registrar, opts ...Option) *Controller {
	c := &Controller{
		registrar:     reg,
		validator:     validator.New(),
		gate:          NewGate(),
		serverAddress: DefaultServerAddress,
		serverPort:    DefaultServerPort,
		step:          StepListener,
		doc:           proxyconfig.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Next moves forward one step. It never fails and is a no-op on the last
// step. Zero targets is a valid state to leave the targets step in.
func (c *Controller) Next() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step < StepComplete {
		c.leave()
		c.step++
	}
	return c.step
}

// Previous moves back one step without side effects on the document.
func (c *Controller) Previous() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > StepListener {
		c.leave()
		c.step--
	}
	return c.step
}

// leave invalidates pending registrations when the targets step is left.
// Callers hold c.mu.
func (c *Controller) leave() {
	if c.step == StepTargets {
		c.epoch++
		c.lastErr = nil
	}
}

// InFlight reports whether a registration is pending.
func (c *Controller) InFlight() bool {
	return c.gate.Busy()
}

// LastError returns the error shown inline on the targets step, or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Targets returns the accumulated targets in order.
func (c *Controller) Targets() []target.Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Targets()
}

// Document returns a snapshot of the configuration document for handoff to
// later steps.
func (c *Controller) Document() *proxyconfig.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// AddTarget validates d, registers the resulting target with the proxy and,
// on success, appends it to the document and resets d.
//
// The step does not change on success or failure. A failure is also kept
// as LastError until the next AddTarget call. d is reset only when the target
// was appended.
func (c *Controller) AddTarget(ctx context.Context, d *target.Draft) Result {
	logger := c.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	if !c.gate.TryAcquire() {
		return Result{Index: -1, Err: ErrRegistrationInFlight}
	}
	defer c.gate.Release()

	c.mu.Lock()
	c.lastErr = nil
	if c.step != StepTargets {
		c.mu.Unlock()
		return Result{Index: -1, Err: ErrNotOnTargetsStep}
	}
	if d == nil {
		c.lastErr = ErrNilDraft
		c.mu.Unlock()
		return Result{Index: -1, Err: ErrNilDraft}
	}
	epoch := c.epoch
	existing := c.doc.Targets()
	c.mu.Unlock()

	issues := c.validator.Validate(d.Kind, d, existing)
	warnings := validator.Warnings(issues)
	if validator.HasErrors(issues) {
		err := &InvalidDraftError{Issues: validator.Errors(issues)}
		c.setError(epoch, err)
		return Result{Index: -1, Warnings: warnings, Err: err}
	}
	for _, w := range warnings {
		logger.Warn("target draft warning", "field", w.Field, "message", w.Message)
	}

	t, err := d.Build()
	if err != nil {
		c.setError(epoch, err)
		return Result{Index: -1, Warnings: warnings, Err: err}
	}

	category := d.Category
	if !category.Valid() {
		category = d.Kind.Category()
	}

	regErr := c.registrar.Register(ctx, c.serverAddress, c.serverPort, category, t)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		logger.Warn("discarding registration result after leaving targets step",
			"target", t.Name,
			"registered", regErr == nil)
		return Result{Target: t, Index: -1, Warnings: warnings, Err: ErrResultDiscarded}
	}
	if regErr != nil {
		c.lastErr = regErr
		c.mu.Unlock()
		return Result{Target: t, Index: -1, Warnings: warnings, Err: regErr}
	}
	idx := c.doc.Append(t)
	c.mu.Unlock()

	d.Reset()
	logger.Info("target added", "target", t.Name, "index", idx, "kind", string(target.Classify(t)))
	return Result{Target: t, Index: idx, Warnings: warnings}
}

// setError records err as LastError unless the step was left meanwhile.
func (c *Controller) setError(epoch uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch == epoch {
		c.lastErr = err
	}
}

// RemoveTarget removes the target at index i from the document. The proxy
// is not told: a target it already accepted stays registered.
func (c *Controller) RemoveTarget(ctx context.Context, i int) (target.Target, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.doc.At(i)
	if err := c.doc.RemoveAt(i); err != nil {
		return target.Target{}, err
	}
	if ok {
		logger := c.logger
		if logger == nil {
			logger = logging.FromContext(ctx)
		}
		logger.Info("target removed from document; it remains registered on the proxy",
			"target", t.Name, "index", i)
	}
	return t, nil
}
