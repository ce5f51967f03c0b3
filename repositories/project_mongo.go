package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/project-registry/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectsCollection is the collection holding project documents.
const ProjectsCollection = "projects"

type projectDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Reason           string             `bson:"reason"`
	Type             string             `bson:"type"`
	Div              *string            `bson:"div,omitempty"`
	Category         string             `bson:"category"`
	Priority         string             `bson:"priority"`
	HelpDeskLocation string             `bson:"helpDeskLocation"`
	ProjectLocation  string             `bson:"projectLocation"`
	Status           string             `bson:"status"`
	StartDate        time.Time          `bson:"startDate"`
	EndDate          time.Time          `bson:"endDate"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func newProjectDocument(p *models.Project) projectDocument {
	return projectDocument{
		Name:             p.Name,
		Reason:           p.Reason,
		Type:             p.Type,
		Div:              p.Div,
		Category:         p.Category,
		Priority:         p.Priority,
		HelpDeskLocation: p.HelpDeskLocation,
		ProjectLocation:  p.ProjectLocation,
		Status:           p.Status,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (d projectDocument) model() models.Project {
	return models.Project{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Reason:           d.Reason,
		Type:             d.Type,
		Div:              d.Div,
		Category:         d.Category,
		Priority:         d.Priority,
		HelpDeskLocation: d.HelpDeskLocation,
		ProjectLocation:  d.ProjectLocation,
		Status:           d.Status,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// MongoProjectRepository stores projects as documents in MongoDB
type MongoProjectRepository struct {
	coll *mongo.Collection
}

// NewMongoProjectRepository creates a repository over the projects collection of db
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(ProjectsCollection)}
}

// Create inserts a new project document
func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	// BSON dates carry millisecond precision
	now := time.Now().UTC().Truncate(time.Millisecond)
	project.CreatedAt = now
	project.UpdatedAt = now

	doc := newProjectDocument(project)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	project.ID = doc.ID.Hex()
	return nil
}

// FindAll retrieves all projects in natural order
func (r *MongoProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	return decodeProjects(ctx, cursor)
}

// UpdateStatus sets the status of one project and returns the updated document
func (r *MongoProjectRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: time.Now().UTC().Truncate(time.Millisecond)},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc projectDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	project := doc.model()
	return &project, nil
}

// Count counts every project document
func (r *MongoProjectRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

// CountByStatus counts documents whose status matches exactly
func (r *MongoProjectRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "status", Value: status}})
}

// FindRecent retrieves the newest projects by creation time
func (r *MongoProjectRepository) FindRecent(ctx context.Context, limit int) ([]models.Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeProjects(ctx, cursor)
}

// DepartmentStats groups projects by div in a single aggregation
func (r *MongoProjectRepository) DepartmentStats(ctx context.Context) ([]models.DepartmentStat, error) {
	closed := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$status", models.StatusClosed}}}, 1, 0,
	}}}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$div"},
			{Key: "totalProjects", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "closedProjects", Value: bson.D{{Key: "$sum", Value: closed}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	stats := make([]models.DepartmentStat, 0)
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("decode department stats: %w", err)
	}
	return stats, nil
}

func decodeProjects(ctx context.Context, cursor *mongo.Cursor) ([]models.Project, error) {
	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	projects := make([]models.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, d.model())
	}
	return projects, nil
}
