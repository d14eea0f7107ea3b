// Package mongo opens MongoDB connections from environment configuration.
//
// The session store and the user repository both run on the database
// returned by Connect:
//
//	cfg, err := config.Load[mongo.Config]()
//	db, err := mongo.Connect(ctx, cfg)
//	defer db.Client().Disconnect(context.Background())
//
//	store := session.NewMongoStore(db)
//
// New retries the initial connection, which helps when the database
// container starts after the application. Failures are joined with
// ErrFailedToConnectToMongo; Healthcheck failures with ErrHealthcheckFailed.
package mongo
