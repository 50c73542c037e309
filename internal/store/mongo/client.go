// Package mongo implements store.Client on MongoDB.
//
// Each table is a collection whose documents carry the wire columns of the row. Serial keys
// come from a counters collection and timestamps are stored as fixed-width UTC strings so
// they sort chronologically.
package mongo

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/dberr"
	"alcyxob/fitness-coach/internal/store"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	countersCollectionName = "counters"
	timestampLayout        = "2006-01-02T15:04:05.000000Z"
)

// Client stores rows in a MongoDB database.
type Client struct {
	db   *mongo.Database
	defs map[string]store.TableDef
	now  func() time.Time
	log  zerolog.Logger
}

var _ store.Client = (*Client)(nil)

// New creates a client for db. Only tables listed in defs are accessible.
func New(db *mongo.Database, logger zerolog.Logger, defs ...store.TableDef) *Client {
	c := &Client{
		db:   db,
		defs: make(map[string]store.TableDef, len(defs)),
		now:  time.Now,
		log:  logger.With().Str("component", "mongo").Logger(),
	}
	for _, def := range defs {
		c.defs[def.Name] = def
	}
	return c
}

func (c *Client) Select(ctx context.Context, table string, q store.Query, dest any) error {
	coll, _, err := c.collection(table)
	if err != nil {
		return err
	}
	filter, err := toFilter(q.Filters)
	if err != nil {
		return err
	}
	opts := options.Find()
	if len(q.Order) > 0 {
		sort := bson.D{}
		for _, o := range q.Order {
			dir := 1
			if o.Descending {
				dir = -1
			}
			sort = append(sort, bson.E{Key: o.Column, Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	start := time.Now()
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		c.trace(table, "find", start, err)
		return mapError(err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		c.trace(table, "find", start, err)
		return mapError(err)
	}
	c.trace(table, "find", start, nil)
	return writeDocs(docs, dest)
}

func (c *Client) Insert(ctx context.Context, table string, row store.Row, dest any) error {
	coll, def, err := c.collection(table)
	if err != nil {
		return err
	}
	doc, err := toDocument(row)
	if err != nil {
		return err
	}

	if def.Serial && len(def.Key) == 1 {
		key := def.Key[0]
		if !positive(doc[key]) {
			next, err := c.nextSequence(ctx, table)
			if err != nil {
				return err
			}
			doc[key] = next
		}
	}
	stamp := c.now().UTC().Format(timestampLayout)
	if doc[store.CreatedAtColumn] == nil {
		doc[store.CreatedAtColumn] = stamp
	}
	if def.UpdatedAt && doc[store.UpdatedAtColumn] == nil {
		doc[store.UpdatedAtColumn] = stamp
	}

	start := time.Now()
	_, err = coll.InsertOne(ctx, doc)
	c.trace(table, "insert", start, err)
	if err != nil {
		return mapError(err)
	}
	delete(doc, "_id")
	return writeDocs([]bson.M{doc}, dest)
}

// Update applies row with $set. The updated documents are read back through the same
// filters, so callers must not change the columns they filter on.
func (c *Client) Update(ctx context.Context, table string, row store.Row, filters []store.Filter, dest any) error {
	coll, def, err := c.collection(table)
	if err != nil {
		return err
	}
	doc, err := toDocument(row)
	if err != nil {
		return err
	}
	if def.UpdatedAt && doc[store.UpdatedAtColumn] == nil {
		doc[store.UpdatedAtColumn] = c.now().UTC().Format(timestampLayout)
	}
	filter, err := toFilter(filters)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := coll.UpdateMany(ctx, filter, bson.M{"$set": doc})
	c.trace(table, "update", start, err)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return writeDocs(nil, dest)
	}
	if dest == nil {
		return nil
	}
	return c.Select(ctx, table, store.Query{Filters: filters}, dest)
}

func (c *Client) Delete(ctx context.Context, table string, filters []store.Filter) (int64, error) {
	coll, _, err := c.collection(table)
	if err != nil {
		return 0, err
	}
	filter, err := toFilter(filters)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	res, err := coll.DeleteMany(ctx, filter)
	c.trace(table, "delete", start, err)
	if err != nil {
		return 0, mapError(err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates unique indexes for the key and unique columns of every table.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	for name, def := range c.defs {
		var models []mongo.IndexModel
		for _, cols := range append([][]string{def.Key}, def.Unique...) {
			if len(cols) == 0 {
				continue
			}
			keys := bson.D{}
			for _, col := range cols {
				keys = append(keys, bson.E{Key: col, Value: 1})
			}
			models = append(models, mongo.IndexModel{
				Keys:    keys,
				Options: options.Index().SetUnique(true).SetName(name + "_" + strings.Join(cols, "_") + "_key"),
			})
		}
		if len(models) == 0 {
			continue
		}
		if _, err := c.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return mapError(err)
		}
		c.log.Debug().Str("collection", name).Int("indexes", len(models)).Msg("indexes ensured")
	}
	return nil
}

func (c *Client) nextSequence(ctx context.Context, table string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := c.db.Collection(countersCollectionName).
		FindOneAndUpdate(ctx, bson.M{"_id": table}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, mapError(err)
	}
	return counter.Seq, nil
}

func (c *Client) collection(table string) (*mongo.Collection, store.TableDef, error) {
	def, ok := c.defs[table]
	if !ok {
		return nil, store.TableDef{}, dberr.Store("42P01", `collection "`+table+`" is not defined`, "", nil)
	}
	return c.db.Collection(table), def, nil
}

func (c *Client) trace(table, op string, start time.Time, err error) {
	c.log.Debug().
		Err(err).
		Str("collection", table).
		Str("op", op).
		Dur("elapsed", time.Since(start)).
		Msg("round trip")
}

func positive(v any) bool {
	switch n := v.(type) {
	case int32:
		return n > 0
	case int64:
		return n > 0
	case float64:
		return n > 0
	}
	return false
}

// toDocument converts a wire row into a BSON document through relaxed extended JSON.
func toDocument(row store.Row) (bson.M, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, dberr.Unknown(err)
	}
	doc := bson.M{}
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, dberr.Unknown(err)
	}
	return doc, nil
}

// writeDocs renders documents as a JSON array of rows and decodes it into dest.
func writeDocs(docs []bson.M, dest any) error {
	if dest == nil {
		return nil
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, doc := range docs {
		delete(doc, "_id")
		data, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return dberr.Decoding(err)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(data)
	}
	b.WriteByte(']')
	return store.DecodeRows([]byte(b.String()), dest)
}
