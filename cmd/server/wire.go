// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"adventure_backend/internal/account"
	"adventure_backend/internal/app"
	"adventure_backend/internal/audit"
	"adventure_backend/internal/avatar"
	"adventure_backend/internal/config"
	"adventure_backend/internal/firebase"
	"adventure_backend/internal/jobs"
	platformElasticsearch "adventure_backend/internal/platform/elasticsearch"
	"adventure_backend/internal/profile"
	"adventure_backend/internal/reward"
	"adventure_backend/internal/search"
	"adventure_backend/internal/shared"

	"github.com/google/wire"
)

var platformSet = wire.NewSet(
	provideLogger,
	firebase.NewFirebaseService,
	wire.Bind(new(shared.IdentityProvider), new(*firebase.FirebaseService)),
	wire.Bind(new(shared.TokenVerifier), new(*firebase.FirebaseService)),
	provideFirestore,
	platformElasticsearch.NewClient,
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		platformSet,
		audit.ProvideRecorder,

		avatar.NewCatalog,
		avatar.NewHandler,
		wire.Bind(new(account.AvatarCatalog), new(*avatar.Catalog)),

		profile.NewFirestoreRepository,
		profile.NewService,
		profile.NewHandler,

		search.NewIndexer,
		wire.Bind(new(account.ProfileIndexer), new(*search.Indexer)),
		search.NewService,
		search.NewHandler,

		provideProfileWriter,
		account.NewService,
		account.NewHandler,

		reward.NewFirestoreRepository,
		reward.NewService,
		reward.NewHandler,

		jobs.NewOrphanReportJob,

		wire.Struct(new(app.Handlers), "*"),
		app.NewServer,
	)
	return nil, nil, nil
}

// initializeTools wires the dependencies of the seed-rewards and sync-profiles commands.
func initializeTools(cfg *config.Config) (*tools, func(), error) {
	wire.Build(
		platformSet,
		profile.NewFirestoreRepository,
		provideProfileLister,
		search.NewIndexer,
		search.NewSyncer,
		reward.NewFirestoreRepository,
		reward.NewService,
		wire.Struct(new(tools), "*"),
	)
	return nil, nil, nil
}
