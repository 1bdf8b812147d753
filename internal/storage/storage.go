package storage

import (
	"context"
	"os"
	"sync"
	"time"

	"taskhive-backend/internal/config"
	"taskhive-backend/internal/util/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var log = logger.GetLogger()

var (
	db        *gorm.DB
	dbOnce    sync.Once
	mongoDb   *mongo.Database
	mongoOnce sync.Once
)

// GetDb returns the shared Postgres handle for all relational
// repositories.
func GetDb() *gorm.DB {
	dbOnce.Do(connectDb)
	return db
}

// GetMongoDb returns the document database used by the append-only
// activity log.
func GetMongoDb() *mongo.Database {
	mongoOnce.Do(connectMongoDb)
	return mongoDb
}

func connectDb() {
	var err error

	db, err = gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDb, err := db.DB()
	if err != nil {
		log.Error("Failed to get underlying sql.DB", "error", err)
		os.Exit(1)
	}

	sqlDb.SetMaxOpenConns(25)
	sqlDb.SetMaxIdleConns(5)
	sqlDb.SetConnMaxLifetime(time.Hour)
}

func connectMongoDb() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.GetEnv().MongoUri))
	if err != nil {
		log.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Error("Failed to ping MongoDB", "error", err)
		os.Exit(1)
	}

	mongoDb = client.Database("taskhive")
}
