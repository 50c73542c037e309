package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// pingTimeout bounds the reachability check; ctx may only shorten it.
const pingTimeout = 5 * time.Second

// ConnectDB connects to uri and pings the primary before returning the client.
// ctx bounds both steps. A client whose ping fails is disconnected.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("mongo: uri is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo: connect")
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		// The caller's ctx may already be done; disconnect on a fresh deadline.
		_ = DisconnectDB(context.WithoutCancel(ctx), client)
		return nil, errors.Wrap(err, "mongo: ping primary")
	}
	return client, nil
}

// DisconnectDB closes client, waiting for in-flight operations until ctx or pingTimeout ends.
func DisconnectDB(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
