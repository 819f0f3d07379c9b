package mongo

import (
	"context"
	"errors"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type decoder[T any] func(bson.M) (*T, error)

func findOne[T any](ctx context.Context, coll *mongodrv.Collection, filter bson.M, dec decoder[T]) (*T, error) {
	var m bson.M
	if err := coll.FindOne(ctx, filter).Decode(&m); err != nil {
		return nil, mapErr(coll.Name()+".findOne", err)
	}
	return dec(m)
}

func findByID[T any](ctx context.Context, coll *mongodrv.Collection, id string, dec decoder[T]) (*T, error) {
	o, err := oid(id)
	if err != nil {
		return nil, err
	}
	return findOne(ctx, coll, bson.M{"_id": o}, dec)
}

// findPage lista ordenado por _id con skip/limit acotados. Un documento
// malformado se descarta del listado (y se loguea) en vez de cortar la página.
func findPage[T any](ctx context.Context, coll *mongodrv.Collection, filter bson.M, p repository.Page, dec decoder[T]) ([]T, error) {
	p = p.Bounded()
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(p.Skip)).
		SetLimit(int64(p.Limit))

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(coll.Name()+".find", err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(coll.Name()+".find", err)
	}
	return decodeAll(ctx, coll.Name(), docs, dec), nil
}

func decodeAll[T any](ctx context.Context, name string, docs []bson.M, dec decoder[T]) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := dec(d)
		if err != nil {
			logger.From(ctx).Warn("skipping malformed document",
				logger.Layer("adapter"), logger.Component("mongo"),
				logger.String("collection", name), logger.Err(err))
			continue
		}
		out = append(out, *v)
	}
	return out
}

func insert(ctx context.Context, coll *mongodrv.Collection, doc bson.M) (string, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return "", mapErr(coll.Name()+".insert", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", repository.Unavailable(coll.Name()+".insert", errors.New("unexpected inserted id type"))
	}
	return id.Hex(), nil
}

// updateByID aplica $set (y $unset de alias heredados) y devuelve el documento resultante.
func updateByID[T any](ctx context.Context, coll *mongodrv.Collection, id string, set, unset bson.M, dec decoder[T]) (*T, error) {
	o, err := oid(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	var m bson.M
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": o}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&m)
	if err != nil {
		return nil, mapErr(coll.Name()+".update", err)
	}
	return dec(m)
}

func setFields(ctx context.Context, coll *mongodrv.Collection, id string, set bson.M) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": o}, bson.M{"$set": set})
	if err != nil {
		return mapErr(coll.Name()+".update", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongodrv.Collection, id string) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": o})
	if err != nil {
		return mapErr(coll.Name()+".delete", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func count(ctx context.Context, coll *mongodrv.Collection, filter bson.M) (int64, error) {
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, mapErr(coll.Name()+".count", err)
	}
	return n, nil
}

func projectionIDs() *options.FindOptions {
	return options.Find().SetProjection(bson.M{"_id": 1})
}
