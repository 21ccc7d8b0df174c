package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	tsclient "github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements free-text doctor search using Typesense.
// The index is a projection of the directory; Postgres stays the source
// of truth and the recommendation engine never reads from here.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.DoctorSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the doctors collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.DoctorsCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: tsclient.DoctorsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "specialization", Type: "string"},
			{Name: "language", Type: "string", Facet: pointer.True()},
			{Name: "address", Type: "string"},
			{Name: "gender", Type: "string", Facet: pointer.True()},
			{Name: "consultation_fee", Type: "float"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a doctor
func (a *TypesenseAdapter) Index(ctx context.Context, doctor *entities.Doctor) error {
	name := "N/A"
	if doctor.User != nil {
		name = doctor.User.FullName()
	}

	document := map[string]interface{}{
		"id":               doctor.ID,
		"name":             name,
		"specialization":   doctor.Specialization,
		"language":         doctor.Language,
		"address":          doctor.Address,
		"gender":           doctor.Gender,
		"consultation_fee": doctor.ConsultationFee,
		"created_at":       doctor.CreatedAt.Unix(),
	}

	if _, err := a.client.Client().Collection(tsclient.DoctorsCollection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index doctor: %w", err)
	}

	return nil
}

// Delete removes a doctor from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(tsclient.DoctorsCollection).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete doctor from index: %w", err)
	}
	return nil
}

// Search searches doctors by name or specialization
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*repositories.DoctorSearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,specialization"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.DoctorsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}

	hits := []*repositories.DoctorSearchHit{}
	if result.Hits == nil {
		return hits, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		hits = append(hits, &repositories.DoctorSearchHit{
			DoctorID:        docString(doc, "id"),
			Name:            docString(doc, "name"),
			Specialization:  docString(doc, "specialization"),
			Language:        docString(doc, "language"),
			Address:         docString(doc, "address"),
			Gender:          docString(doc, "gender"),
			ConsultationFee: docFloat(doc, "consultation_fee"),
		})
	}

	return hits, nil
}

func docString(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func docFloat(doc map[string]interface{}, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}
