package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/thinkify/mongo-init/pkg/logger"
	"github.com/thinkify/mongo-init/pkg/metrics"
	"go.uber.org/zap"
)

// SuccessMessage is printed once a run has ensured every declaration.
const SuccessMessage = "Database initialized successfully"

const defaultOpTimeout = 30 * time.Second

// Report describes what a successful run did.
type Report struct {
	Database            string        `json:"database"`
	CollectionsCreated  []string      `json:"collections_created"`
	CollectionsExisting []string      `json:"collections_existing"`
	Indexes             []string      `json:"indexes"`
	Duration            time.Duration `json:"duration"`
}

// Bootstrapper ensures a database holds the collections and indexes of a
// Schema. Every step relies on the server's idempotent create semantics;
// nothing is checked before it is created.
type Bootstrapper struct {
	target    Target
	schema    Schema
	opTimeout time.Duration
	actor     string
}

type Option func(*Bootstrapper)

// WithOpTimeout bounds each collection or index creation call.
func WithOpTimeout(d time.Duration) Option {
	return func(b *Bootstrapper) {
		if d > 0 {
			b.opTimeout = d
		}
	}
}

// WithActor names who performs the changes in audit records.
func WithActor(actor string) Option {
	return func(b *Bootstrapper) {
		b.actor = actor
	}
}

func NewBootstrapper(target Target, schema Schema, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		target:    target,
		schema:    schema,
		opTimeout: defaultOpTimeout,
		actor:     "bootstrap",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run creates every collection, then every index, in declaration order.
// The first failure aborts the run; completed steps are left in place.
func (b *Bootstrapper) Run(ctx context.Context) (*Report, error) {
	if err := b.schema.Validate(); err != nil {
		metrics.BootstrapFailures.WithLabelValues("validate").Inc()
		return nil, err
	}

	start := time.Now()
	report := &Report{Database: b.target.Name()}

	for _, name := range b.schema.Collections {
		created, err := b.ensureCollection(ctx, name)
		if err != nil {
			metrics.BootstrapFailures.WithLabelValues("collection").Inc()
			return report, fmt.Errorf("create collection %q: %w", name, err)
		}
		if created {
			report.CollectionsCreated = append(report.CollectionsCreated, name)
		} else {
			report.CollectionsExisting = append(report.CollectionsExisting, name)
		}
	}

	for _, idx := range b.schema.Indexes {
		name, err := b.ensureIndex(ctx, idx)
		if err != nil {
			metrics.BootstrapFailures.WithLabelValues("index").Inc()
			return report, fmt.Errorf("create index %s: %w", idx, err)
		}
		report.Indexes = append(report.Indexes, idx.Collection+"."+name)
	}

	report.Duration = time.Since(start)
	metrics.Duration.Observe(report.Duration.Seconds())
	metrics.LastSuccess.SetToCurrentTime()
	return report, nil
}

func (b *Bootstrapper) ensureCollection(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, b.opTimeout)
	defer cancel()

	err := b.target.CreateCollection(ctx, name)
	switch {
	case err == nil:
		metrics.CollectionsEnsured.WithLabelValues("created").Inc()
		logger.AuditLog("collection_created", b.actor,
			zap.String("database", b.target.Name()),
			zap.String("collection", name))
		return true, nil
	case isNamespaceExists(err):
		metrics.CollectionsEnsured.WithLabelValues("existing").Inc()
		logger.Logger.Debugw("collection already exists", "collection", name)
		return false, nil
	}
	return false, Classify(err)
}

func (b *Bootstrapper) ensureIndex(ctx context.Context, idx IndexDeclaration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.opTimeout)
	defer cancel()

	name, err := b.target.CreateIndex(ctx, idx.Collection, idx.Model())
	if err != nil {
		return "", Classify(err)
	}
	metrics.IndexesEnsured.Inc()
	logger.AuditLog("index_ensured", b.actor,
		zap.String("database", b.target.Name()),
		zap.String("collection", idx.Collection),
		zap.String("index", name),
		zap.Bool("unique", idx.Unique))
	return name, nil
}
