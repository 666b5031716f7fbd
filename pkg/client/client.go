package client

import (
	"context"
	"io"
	"time"

	"sitterhub/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const shutdownTimeout = 10 * time.Second

// Client owns the process-wide connections shared by every handler tree.
type Client struct {
	Mongo   *mongo.Client
	Redis   *redis.Client
	closers []namedCloser
}

type namedCloser struct {
	name   string
	closer io.Closer
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = client
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// SetRedis connects to Redis. Redis is optional, so a failed ping is
// logged and the client is left unset rather than aborting startup.
func (c *Client) SetRedis(log *logger.Logger, opts RedisOptions) {
	if opts.Addr == "" {
		log.Info("Redis address not configured, using in-memory stores")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to ping Redis, falling back to in-memory stores", "addr", opts.Addr, "error", err)
		_ = rdb.Close()
		return
	}

	log.Info("Successfully connected to Redis", "addr", opts.Addr)
	c.Redis = rdb
}

// RegisterCloser adds a resource (Kafka writer, reader) that is closed on shutdown.
func (c *Client) RegisterCloser(name string, closer io.Closer) {
	c.closers = append(c.closers, namedCloser{name: name, closer: closer})
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	for _, nc := range c.closers {
		if err := nc.closer.Close(); err != nil {
			log.Error("Failed to close resource", "resource", nc.name, "error", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error("Failed to close Redis client", "error", err)
		}
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect MongoDB", "error", err)
		}
	}
	log.Info("Client connections closed")
}
