package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
	"github.com/ecofinds/ecofinds-api/pkg/helpers"
)

var (
	// ErrUploadsDisabled is returned when no object storage client is
	// configured, so callers can distinguish it from an internal fault.
	ErrUploadsDisabled = errors.New("image uploads disabled")

	errESResponse = errors.New("elasticsearch response error")
)

// CatalogService owns listing CRUD, browse/search, and image uploads.
// Elasticsearch indexing is best-effort; Postgres stays authoritative.
type CatalogService struct {
	Products  repo.ProductRepository
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
}

func NewCatalogService(products repo.ProductRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *CatalogService {
	return &CatalogService{Products: products, Logger: logger, ES: es, ESIndex: esIndex, GCS: gcs, GCSBucket: gcsBucket}
}

// ProductInput carries the mutable listing fields, already validated at
// the binding layer.
type ProductInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Image       string
}

func (s *CatalogService) Create(ctx context.Context, ownerID string, in ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
		OwnerID:     ownerID,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// ListQuery is the browse request after query-string parsing.
type ListQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
	SortBy   string
	SortAsc  bool
}

func (s *CatalogService) List(ctx context.Context, q ListQuery) ([]entity.Product, Pagination, error) {
	f := repo.ProductFilter{
		Category: q.Category,
		Search:   q.Search,
		Page:     ClampPage(q.Page),
		Limit:    ClampLimit(q.Limit),
		SortBy:   q.SortBy,
		SortAsc:  q.SortAsc,
	}
	items, total, err := s.Products.List(ctx, f)
	if err != nil {
		return nil, Pagination{}, err
	}
	return items, paginate(f.Page, f.Limit, total), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*entity.Product, error) {
	return s.Products.GetByID(ctx, id)
}

// Update replaces the mutable fields; only the stored owner may call it.
func (s *CatalogService) Update(ctx context.Context, id, actorID string, in ProductInput) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, ErrForbidden
	}
	p.Title = in.Title
	p.Description = in.Description
	p.Category = in.Category
	p.Price = in.Price
	p.Image = in.Image
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Delete hard-deletes the listing; historical purchases keep their
// snapshots, live cart lines drop with the row.
func (s *CatalogService) Delete(ctx context.Context, id, actorID string) error {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != actorID {
		return ErrForbidden
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteIndex(ctx, id)
	return nil
}

// UploadImage stores a listing photo in GCS and points the record at it.
func (s *CatalogService) UploadImage(ctx context.Context, id, actorID string, r io.Reader, filename, contentType string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, ErrUploadsDisabled
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", p.ID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	p.Image = url
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Recommend returns same-category listings, using Elasticsearch when it is
// configured and falling back to the repository otherwise.
func (s *CatalogService) Recommend(ctx context.Context, productID string, limit int) ([]entity.Product, error) {
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	if s.ES != nil && s.ESIndex != "" {
		if out, err := s.searchSimilar(ctx, p, limit); err == nil {
			return out, nil
		} else if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", productID).Warn("es recommend failed, falling back")
		}
	}
	return s.Products.ListSimilar(ctx, p.Category, p.ID, limit)
}

func (s *CatalogService) searchSimilar(ctx context.Context, p *entity.Product, limit int) ([]entity.Product, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter":   []any{map[string]any{"term": map[string]any{"category": p.Category}}},
				"must_not": []any{map[string]any{"ids": map[string]any{"values": []string{p.ID}}}},
				"should": []any{map[string]any{
					"more_like_this": map[string]any{
						"fields":        []string{"title", "description"},
						"like":          p.Title,
						"min_term_freq": 1,
						"min_doc_freq":  1,
					},
				}},
			},
		},
		"size": limit,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errESResponse
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *CatalogService) index(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price,
		"image":       p.Image,
		"owner_id":    p.OwnerID,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
