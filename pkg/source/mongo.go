package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/record"
)

// DefaultMongoCollection is used when the location names none.
const DefaultMongoCollection = "nodes"

// Mongo reads one document per person from a collection. Document fields
// become columns; non-string values are formatted the way a spreadsheet
// export would show them.
type Mongo struct {
	URI        string
	Database   string
	Collection string
	// Filter restricts the documents; nil reads all.
	Filter bson.D
	// Timeout bounds connect and read; zero means 30s.
	Timeout time.Duration
}

// ParseMongo splits "mongodb://host/db#collection".
func ParseMongo(location string) (*Mongo, error) {
	uri, coll, _ := strings.Cut(location, "#")
	u, err := url.Parse(uri)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidSource, err, "invalid mongodb uri")
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return nil, kerrors.New(kerrors.ErrCodeInvalidSource, "mongodb uri must name a database")
	}
	if coll == "" {
		coll = DefaultMongoCollection
	}
	return &Mongo{URI: uri, Database: db, Collection: coll}, nil
}

func (s *Mongo) Kind() string { return "mongo" }

// Location omits credentials.
func (s *Mongo) Location() string {
	u, err := url.Parse(s.URI)
	if err != nil {
		return s.Database + "." + s.Collection
	}
	return u.Host + "/" + s.Database + "." + s.Collection
}

// Fetch reads the collection in natural order.
func (s *Mongo) Fetch(ctx context.Context) ([]record.Row, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeNetwork, err, "connect mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	return fetchCollection(ctx, client.Database(s.Database).Collection(s.Collection), s.Filter)
}

func fetchCollection(ctx context.Context, coll *mongo.Collection, filter bson.D) ([]record.Row, error) {
	if filter == nil {
		filter = bson.D{}
	}
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeNetwork, err, "query %s", coll.Name())
	}
	defer cur.Close(ctx)

	var rows []record.Row
	for cur.Next(ctx) {
		var doc bson.D
		if err := cur.Decode(&doc); err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode document")
		}
		rows = append(rows, rowFromDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeNetwork, err, "read %s", coll.Name())
	}
	return rows, nil
}

// rowFromDoc flattens top-level fields. The _id field is used as id only
// when the document has no id field of its own.
func rowFromDoc(doc bson.D) record.Row {
	row := make(record.Row, len(doc))
	var oid string
	for _, e := range doc {
		if e.Key == "_id" {
			oid = cell(e.Value)
			continue
		}
		row[strings.ToLower(e.Key)] = cell(e.Value)
	}
	if _, ok := row["id"]; !ok && oid != "" {
		row["id"] = oid
	}
	return row
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case primitive.ObjectID:
		return v.Hex()
	case primitive.Null:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
