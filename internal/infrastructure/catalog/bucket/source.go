// Package bucket loads the game catalog from a blob bucket (GCS, S3 or a local directory).
package bucket

import (
	"context"
	"errors"
	"fmt"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
	"gocloud.dev/gcerrors"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/parsers"
)

// ErrObjectNotFound is returned when the catalog key does not exist in the bucket.
var ErrObjectNotFound = errors.New("catalog object not found")

// Source implements ports.CatalogSource over a gocloud.dev bucket.
type Source struct {
	bucketURL string
	key       string
	parser    parsers.CatalogParser
	schema    *entities.Schema
}

// NewSource creates a catalog source. An empty format is taken from the key's
// extension, falling back to CSV.
func NewSource(bucketURL, key, format string, schema *entities.Schema) (*Source, error) {
	if bucketURL == "" {
		return nil, errors.New("bucket url is required")
	}
	if key == "" {
		return nil, errors.New("catalog key is required")
	}

	var parser parsers.CatalogParser
	if format != "" {
		parser = parsers.CatalogForFormat(format)
	} else if parser = parsers.CatalogForFile(key); parser == nil {
		parser = parsers.CatalogForFormat("csv")
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported catalog format: %s", format)
	}

	if schema == nil {
		schema = entities.DefaultSchema()
	}

	return &Source{
		bucketURL: bucketURL,
		key:       key,
		parser:    parser,
		schema:    schema,
	}, nil
}

// Describe returns the object location.
func (s *Source) Describe() string {
	return s.bucketURL + "#" + s.key
}

// Load downloads and parses the catalog object. The bucket is opened per load
// so credentials rotate with the refresh cycle.
func (s *Source) Load(ctx context.Context) (*entities.Catalog, error) {
	bk, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return nil, fmt.Errorf("opening bucket %s: %w", s.bucketURL, err)
	}
	defer bk.Close()

	r, err := bk.NewReader(ctx, s.key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, s.Describe())
		}
		return nil, fmt.Errorf("reading %s: %w", s.Describe(), err)
	}
	defer r.Close()

	catalog, err := s.parser.ParseCatalog(r, s.schema, s.Describe())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Describe(), err)
	}

	return catalog, nil
}
