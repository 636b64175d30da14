package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/ports"
)

const collectionTasks = "tasks"

type MongoTaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{coll: db.Collection(collectionTasks)}
}

type mongoExtras struct {
	Tags           []string   `bson:"tags"`
	DueDate        *time.Time `bson:"dueDate,omitempty"`
	Priority       string     `bson:"priority,omitempty"`
	EstimatedHours *float64   `bson:"estimatedHours,omitempty"`
	ActualHours    *float64   `bson:"actualHours,omitempty"`
	Notes          string     `bson:"notes,omitempty"`
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	Extras      mongoExtras        `bson:"extras"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toMongoTask(t *domain.Task, owner primitive.ObjectID) mongoTask {
	return mongoTask{
		UserID:      owner,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Extras: mongoExtras{
			Tags:           t.Extras.Tags,
			DueDate:        t.Extras.DueDate,
			Priority:       string(t.Extras.Priority),
			EstimatedHours: t.Extras.EstimatedHours,
			ActualHours:    t.Extras.ActualHours,
			Notes:          t.Extras.Notes,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (m mongoTask) toDomain() *domain.Task {
	var due *time.Time
	if m.Extras.DueDate != nil {
		d := m.Extras.DueDate.UTC()
		due = &d
	}
	return &domain.Task{
		ID:          m.ID.Hex(),
		OwnerID:     m.UserID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.TaskStatus(m.Status),
		Extras: domain.TaskExtras{
			Tags:           m.Extras.Tags,
			DueDate:        due,
			Priority:       domain.Priority(m.Extras.Priority),
			EstimatedHours: m.Extras.EstimatedHours,
			ActualHours:    m.Extras.ActualHours,
			Notes:          m.Extras.Notes,
		},
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// ownedFilter scopes a single-task query to its owner. Malformed ids match
// nothing, which callers report as domain.ErrTaskNotFound.
func ownedFilter(ownerID, taskID string) (bson.M, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return bson.M{"_id": id, "userId": owner}, nil
}

// Create inserts a new task document and assigns its id.
func (r *MongoTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(t.OwnerID)
	if err != nil {
		return fmt.Errorf("create task: invalid owner id %q", t.OwnerID)
	}

	doc := toMongoTask(t, owner)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID = doc.ID.Hex()
	return nil
}

// FindByID retrieves a task owned by ownerID.
func (r *MongoTaskRepository) FindByID(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	filter, err := ownedFilter(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoTask
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return m.toDomain(), nil
}

// listFilter builds the owner-scoped query for List.
func listFilter(owner primitive.ObjectID, f ports.ListTasksFilter) bson.M {
	filter := bson.M{"userId": owner}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Priority != "" {
		filter["extras.priority"] = string(f.Priority)
	}
	return filter
}

// listSort orders by the requested field, breaking ties on _id so pages
// never overlap.
func listSort(f ports.ListTasksFilter) bson.D {
	field := f.SortBy
	if field == "" {
		field = ports.SortByCreatedAt
	}
	dir := 1
	if f.Descending {
		dir = -1
	}
	return bson.D{{Key: string(field), Value: dir}, {Key: "_id", Value: dir}}
}

// pageSkip returns the number of documents before the given 1-based page.
// ok is false when the offset does not fit in an int64; no such page exists.
func pageSkip(page, limit int) (skip int64, ok bool) {
	if page <= 1 || limit <= 0 {
		return 0, true
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return 0, false
	}
	return int64(page-1) * int64(limit), true
}

// List returns a page of the owner's tasks and the total match count.
func (r *MongoTaskRepository) List(ctx context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	owner, err := primitive.ObjectIDFromHex(f.OwnerID)
	if err != nil {
		return []*domain.Task{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(owner, f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	skip, ok := pageSkip(f.Page, f.Limit)
	if !ok {
		return []*domain.Task{}, total, nil
	}
	opts := options.Find().
		SetSort(listSort(f)).
		SetSkip(skip).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Task, 0, f.Limit)
	for cur.Next(ctx) {
		var m mongoTask
		if err := cur.Decode(&m); err != nil {
			return nil, 0, fmt.Errorf("decode task: %w", err)
		}
		items = append(items, m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tasks: %w", err)
	}
	return items, total, nil
}

// patchUpdate translates a patch into $set/$unset. Extras are addressed by
// dotted path so unsupplied extras survive.
func patchUpdate(p domain.TaskPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if p.Title.Set {
		set["title"] = p.Title.Value
	}
	nullable(set, unset, "description", p.Description)
	if p.Status.Set {
		set["status"] = string(p.Status.Value)
	}

	e := p.Extras
	nullable(set, unset, "extras.tags", e.Tags)
	nullable(set, unset, "extras.dueDate", e.DueDate)
	if e.Priority.Set {
		set["extras.priority"] = string(e.Priority.Value)
	}
	nullable(set, unset, "extras.estimatedHours", e.EstimatedHours)
	nullable(set, unset, "extras.actualHours", e.ActualHours)
	nullable(set, unset, "extras.notes", e.Notes)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func nullable[T any](set, unset bson.M, path string, o domain.Optional[T]) {
	switch {
	case !o.Set:
	case o.Null:
		unset[path] = ""
	default:
		set[path] = o.Value
	}
}

// Update applies the patch in a single atomic findOneAndUpdate.
func (r *MongoTaskRepository) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch, now time.Time) (*domain.Task, error) {
	filter, err := ownedFilter(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoTask
	if err := r.coll.FindOneAndUpdate(ctx, filter, patchUpdate(patch, now), opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return m.toDomain(), nil
}

// Delete permanently removes a task owned by ownerID.
func (r *MongoTaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	filter, err := ownedFilter(ownerID, taskID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// snapshotProjection holds only the fields the insights report reads.
var snapshotProjection = bson.M{
	"title":           1,
	"status":          1,
	"userId":          1,
	"extras.dueDate":  1,
	"extras.priority": 1,
	"createdAt":       1,
	"updatedAt":       1,
}

// Snapshot reads every task of the owner in one query.
func (r *MongoTaskRepository) Snapshot(ctx context.Context, ownerID string) ([]domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"userId": owner}, options.Find().SetProjection(snapshotProjection))
	if err != nil {
		return nil, fmt.Errorf("snapshot tasks: %w", err)
	}

	var docs []mongoTask
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	out := make([]domain.Task, 0, len(docs))
	for _, m := range docs {
		out = append(out, *m.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing the owner-scoped queries.
func (r *MongoTaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "extras.dueDate", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// InsertMany stores tasks in bulk. Used by the seeder.
func (r *MongoTaskRepository) InsertMany(ctx context.Context, tasks []*domain.Task) error {
	docs := make([]interface{}, 0, len(tasks))
	for _, t := range tasks {
		owner, err := primitive.ObjectIDFromHex(t.OwnerID)
		if err != nil {
			return fmt.Errorf("insert tasks: invalid owner id %q", t.OwnerID)
		}
		doc := toMongoTask(t, owner)
		doc.ID = primitive.NewObjectID()
		t.ID = doc.ID.Hex()
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

// DeleteAll empties the collection. Used by the seeder.
func (r *MongoTaskRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
