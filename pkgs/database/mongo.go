package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DefaultMongoHost     = "localhost"
	DefaultMongoPort     = 27017
	DefaultMongoDatabase = "TweetsDB"
)

// MongoConfig locates the tweets store.
type MongoConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// URI builds the connection string of a local, unauthenticated server.
func (c MongoConfig) URI() string {
	host := c.Host
	if host == "" {
		host = DefaultMongoHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultMongoPort
	}
	return "mongodb://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/"
}

func (c MongoConfig) DatabaseName() string {
	if c.Database == "" {
		return DefaultMongoDatabase
	}
	return c.Database
}

// ConnectMongo connects and pings the server. The returned client is the
// single handle shared by the whole session.
func ConnectMongo(ctx context.Context, conf MongoConfig) (*mongo.Client, *mongo.Database, error) {
	logger := log.WithFields(log.Fields{
		"caller":   "ConnectMongo",
		"uri":      conf.URI(),
		"database": conf.DatabaseName(),
	})

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB")
	return client, client.Database(conf.DatabaseName()), nil
}
