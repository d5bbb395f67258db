package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	mongoConnectTimeout = 10 * time.Second
	pgMaxOpenConns      = 25
	pgConnMaxIdleTime   = 5 * time.Minute
)

// DB bundles the two stores: Postgres for relational rows, Mongo for the
// post documents.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
}

// InitDB connects both stores. A missing .env file is fine; the variables
// can come from the environment directly.
func InitDB() (*DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from the environment")
	}

	pgConnStr := os.Getenv("POSTGRES_CONN_STR")
	if pgConnStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR is required")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}

	pgdb, err := openPostgres(pgConnStr)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	mongoClient, err := openMongo(mongoURI)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}

	return &DB{Postgres: pgdb, Mongo: mongoClient}, nil
}

func openPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pgMaxOpenConns)
	sqlDB.SetConnMaxIdleTime(pgConnMaxIdleTime)
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("postgres connection established")
	return db, nil
}

func openMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("mongo connection established")
	return client, nil
}

// CloseDB shuts both connections down; safe to call with partial state.
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		if sqlDB, err := db.Postgres.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("postgres close: %v", err)
			}
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("mongo close: %v", err)
		}
	}
}
