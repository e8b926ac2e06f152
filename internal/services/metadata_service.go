// metadata_service.go
//
// Breeze client metadata for gorm models, served alongside the jam-build data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-breezemeta.
// jam-build-breezemeta is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-breezemeta is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-breezemeta.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/database"
	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
	"github.com/localnerve/jam-build-breezemeta/internal/models"
)

// ErrContextNotFound is returned for a metadata context that was never registered.
var ErrContextNotFound = errors.New("metadata context not found")

// IntrospectorFactory produces the model reader of one metadata context.
// db is nil when the service runs without a database.
type IntrospectorFactory func(db *gorm.DB, log *zap.Logger) (metadata.Introspector, error)

// GormContext serves a fixed set of gorm models.
func GormContext(set func() []any, namespace string) IntrospectorFactory {
	return func(db *gorm.DB, log *zap.Logger) (metadata.Introspector, error) {
		opts := []database.IntrospectorOption{database.WithLogger(log)}
		if namespace != "" {
			opts = append(opts, database.WithNamespace(namespace))
		}
		return database.NewGormIntrospector(db, set(), opts...)
	}
}

// StaticContext serves an introspector that was built ahead of time,
// typically a model file.
func StaticContext(in metadata.Introspector) IntrospectorFactory {
	return func(*gorm.DB, *zap.Logger) (metadata.Introspector, error) {
		return in, nil
	}
}

// MetadataOptions holds what every build of a MetadataService shares.
type MetadataOptions struct {
	Version          string
	NamingConvention string
	Namespace        string
	Constraints      *metadata.ConstraintTable
	Logger           *zap.Logger
	Registerer       prometheus.Registerer
}

// OptionsFromConfig maps the service configuration onto MetadataOptions.
func OptionsFromConfig(cfg *config.Config, constraints *metadata.ConstraintTable, log *zap.Logger) MetadataOptions {
	return MetadataOptions{
		Version:          cfg.MetadataVersion,
		NamingConvention: cfg.NamingConvention,
		Namespace:        cfg.ModelNamespace,
		Constraints:      constraints,
		Logger:           log,
		Registerer:       prometheus.DefaultRegisterer,
	}
}

// MetadataService builds Breeze metadata documents for named contexts.
// Every Build starts from a fresh introspector and builder, so concurrent
// requests share nothing but the registry.
type MetadataService struct {
	db   *gorm.DB
	opts MetadataOptions

	mu       sync.RWMutex
	contexts map[string]IntrospectorFactory

	builds *prometheus.CounterVec
}

// NewMetadataService creates an empty registry. Use RegisterDefaults for
// the built-in contexts.
func NewMetadataService(db *gorm.DB, opts MetadataOptions) (*MetadataService, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Version == "" {
		opts.Version = metadata.DefaultMetadataVersion
	}
	if opts.NamingConvention == "" {
		opts.NamingConvention = metadata.DefaultNamingConvention
	}

	builds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "breezemeta_builds_total",
		Help: "Metadata document builds by context and result.",
	}, []string{"context", "result"})

	if opts.Registerer != nil {
		if err := opts.Registerer.Register(builds); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("failed to register build metrics: %w", err)
			}
			builds = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return &MetadataService{
		db:       db,
		opts:     opts,
		contexts: make(map[string]IntrospectorFactory),
		builds:   builds,
	}, nil
}

// Register adds a context. Names are case-insensitive.
func (s *MetadataService) Register(name string, f IntrospectorFactory) error {
	key := strings.ToLower(name)
	if key == "" {
		return fmt.Errorf("context name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.contexts[key]; dup {
		return fmt.Errorf("context %s registered twice", key)
	}
	s.contexts[key] = f
	return nil
}

// RegisterDefaults adds the northwind and accounts model sets.
func (s *MetadataService) RegisterDefaults() error {
	if err := s.Register("northwind", GormContext(models.Northwind, s.opts.Namespace)); err != nil {
		return err
	}
	return s.Register("accounts", GormContext(models.Accounts, s.opts.Namespace))
}

// Contexts lists the registered context names in order.
func (s *MetadataService) Contexts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.contexts))
	for name := range s.contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Version is the metadataVersion stamped on every document.
func (s *MetadataService) Version() string {
	return s.opts.Version
}

// Build produces the document of one context.
func (s *MetadataService) Build(ctx context.Context, name string) (*metadata.BreezeMetadata, error) {
	key := strings.ToLower(name)

	s.mu.RLock()
	factory, ok := s.contexts[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContextNotFound, name)
	}

	log := s.opts.Logger.With(zap.String("context", key))

	in, err := factory(s.db, log)
	if err != nil {
		s.builds.WithLabelValues(key, "error").Inc()
		return nil, fmt.Errorf("context %s: %w", key, err)
	}

	doc, err := metadata.NewBuilder(in,
		metadata.WithDataTypes(database.DataTypeTable()),
		metadata.WithValidators(database.ValidatorTable()),
		metadata.WithConstraints(s.opts.Constraints),
		metadata.WithVersion(s.opts.Version),
		metadata.WithNamingConvention(s.opts.NamingConvention),
		metadata.WithLogger(log),
	).Build(ctx)
	if err != nil {
		s.builds.WithLabelValues(key, "error").Inc()
		log.Warn("metadata build failed", zap.Error(err))
		return nil, fmt.Errorf("context %s: %w", key, err)
	}

	s.builds.WithLabelValues(key, "ok").Inc()
	return doc, nil
}

// BuildAll builds every registered context concurrently and stops at the
// first failure.
func (s *MetadataService) BuildAll(ctx context.Context) (map[string]*metadata.BreezeMetadata, error) {
	names := s.Contexts()
	docs := make([]*metadata.BreezeMetadata, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			doc, err := s.Build(gctx, name)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*metadata.BreezeMetadata, len(names))
	for i, name := range names {
		out[name] = docs[i]
	}
	return out, nil
}
