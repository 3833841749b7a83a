// File: cmd/server/providers.go
package main

import (
	"log"

	"adventure_backend/internal/account"
	"adventure_backend/internal/config"
	"adventure_backend/internal/firebase"
	"adventure_backend/internal/platform/logger"
	"adventure_backend/internal/profile"
	"adventure_backend/internal/reward"
	"adventure_backend/internal/search"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

// tools is what the maintenance subcommands need.
type tools struct {
	Logger  *zap.Logger
	Rewards reward.Service
	Syncer  *search.Syncer
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	appLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		// Sync on a console writer returns EINVAL on some platforms; ignore it.
		if err := appLogger.Sync(); err != nil {
			log.Printf("DEBUG: logger sync: %v", err)
		}
	}
	return appLogger, cleanup, nil
}

func provideFirestore(fs *firebase.FirebaseService) *firestore.Client {
	return fs.Firestore()
}

func provideProfileWriter(repo profile.Repository) account.ProfileWriter {
	return repo
}

func provideProfileLister(repo profile.Repository) search.ProfileLister {
	return repo
}
