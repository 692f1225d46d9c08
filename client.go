package vecdesk

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/connection"
	"github.com/kailas-cloud/vecdesk/internal/domain"
	domcol "github.com/kailas-cloud/vecdesk/internal/domain/collection"
	domobj "github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/mode"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/request"
	objrepo "github.com/kailas-cloud/vecdesk/internal/repository/object"
	schemarepo "github.com/kailas-cloud/vecdesk/internal/repository/schema"
	searchrepo "github.com/kailas-cloud/vecdesk/internal/repository/search"
	"github.com/kailas-cloud/vecdesk/internal/transport/rest"
	colsvc "github.com/kailas-cloud/vecdesk/internal/usecase/collection"
	"github.com/kailas-cloud/vecdesk/internal/usecase/health"
	objsvc "github.com/kailas-cloud/vecdesk/internal/usecase/object"
	searchsvc "github.com/kailas-cloud/vecdesk/internal/usecase/search"
)

const defaultSearchLimit = 10

// Client is the access layer over one store connection. The connection is
// reloaded from the settings collaborator before every operation, so a
// SaveSettings from another Client takes effect on the next call.
// Safe for concurrent use.
type Client struct {
	settings SettingsStore
	state    *connection.State

	collections *colsvc.Service
	objects     *objsvc.Service
	search      *searchsvc.Service
	health      *health.Service

	defaultLimit int

	obs *observer
}

// New creates a Client. Nothing is loaded and no network call is made
// until the first operation.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		countConcurrency:   colsvc.DefaultCountConcurrency,
		defaultSearchLimit: defaultSearchLimit,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.settings == nil {
		fs, err := FileSettings("", "", logger)
		if err != nil {
			return nil, err
		}
		cfg.settings = fs
	}
	if cfg.httpClient == nil {
		cfg.httpClient = http.DefaultClient
	}
	if cfg.countConcurrency <= 0 {
		return nil, fmt.Errorf("vecdesk: count concurrency must be positive, got %d", cfg.countConcurrency)
	}
	if cfg.defaultSearchLimit <= 0 {
		return nil, fmt.Errorf("vecdesk: default search limit must be positive, got %d", cfg.defaultSearchLimit)
	}

	obs, err := newObserver(logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	state := connection.New(sourceAdapter{store: cfg.settings})
	transport := rest.New(state, cfg.httpClient, logger)

	schemas := schemarepo.New(transport)
	var (
		embed   searchsvc.Embedder
		checker health.EmbeddingChecker
	)
	if cfg.embedder != nil {
		adapter := &embedderAdapter{inner: cfg.embedder}
		embed, checker = adapter, adapter
	}

	collections := colsvc.New(schemas, cfg.countConcurrency, logger)

	return &Client{
		settings:     cfg.settings,
		state:        state,
		collections:  collections,
		objects:      objsvc.New(objrepo.New(transport), logger),
		search:       searchsvc.New(searchrepo.New(transport), collections, embed, logger),
		health:       health.New(schemas, checker, logger),
		defaultLimit: cfg.defaultSearchLimit,
		obs:          obs,
	}, nil
}

// Initialize reloads the connection from the settings collaborator and
// returns the normalized url ("" when none is set). Every operation does
// this on its own; calling it directly is only needed to refresh
// CurrentEndpoint.
func (c *Client) Initialize(ctx context.Context) (string, error) {
	start := time.Now()
	conn, err := c.state.Initialize(ctx)
	c.obs.observe("initialize", start, err)
	if err != nil {
		return "", err
	}
	return conn.URL, nil
}

// CurrentEndpoint returns the url of the last loaded connection, or
// "(not configured)".
func (c *Client) CurrentEndpoint() string {
	return c.state.CurrentEndpoint()
}

// Settings returns the persisted connection as the settings collaborator
// holds it (url not normalized).
func (c *Client) Settings(ctx context.Context) (Settings, error) {
	return c.settings.GetSettings(ctx)
}

// SaveSettings persists s and reloads the connection.
func (c *Client) SaveSettings(ctx context.Context, s Settings) error {
	start := time.Now()
	err := c.saveSettings(ctx, s)
	c.obs.observe("save_settings", start, err, zap.String("endpoint", c.state.CurrentEndpoint()))
	return err
}

func (c *Client) saveSettings(ctx context.Context, s Settings) error {
	if err := c.settings.SaveSettings(ctx, s); err != nil {
		return err
	}
	_, err := c.state.Initialize(ctx)
	return err
}

// ListCollections returns every collection in schema order with its object
// count. A collection whose count fails is reported with Count 0.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	start := time.Now()
	out, err := c.listCollections(ctx)
	c.obs.observe("list_collections", start, err, c.endpointField())
	return out, err
}

func (c *Client) listCollections(ctx context.Context) ([]Collection, error) {
	if err := c.require(ctx); err != nil {
		return nil, err
	}
	cols, err := c.collections.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Collection, len(cols))
	for i := range cols {
		out[i] = collectionFromDomain(cols[i])
	}
	return out, nil
}

// GetPage returns at most limit rows of collection starting at offset,
// projected onto properties. sort may be nil.
func (c *Client) GetPage(
	ctx context.Context, collection string, properties []string, sort *Sort, limit, offset int,
) ([]Row, error) {
	start := time.Now()
	out, err := c.getPage(ctx, collection, properties, sort, limit, offset)
	c.obs.observe("get_page", start, err, c.endpointField(), zap.String("collection", collection))
	return out, err
}

func (c *Client) getPage(
	ctx context.Context, collection string, properties []string, sort *Sort, limit, offset int,
) ([]Row, error) {
	if err := c.require(ctx); err != nil {
		return nil, err
	}
	var in *objsvc.SortInput
	if sort != nil {
		in = &objsvc.SortInput{Property: sort.Property, Order: sort.Order}
	}
	rows, err := c.objects.Page(ctx, collection, properties, in, limit, offset)
	if err != nil {
		return nil, err
	}
	return rowsFromDomain(rows), nil
}

// Search runs a bm25, vector or hybrid search. Rows come back in the
// store's ranking order and carry every property of the collection.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Row, error) {
	start := time.Now()
	out, err := c.runSearch(ctx, req)
	c.obs.observe("search", start, err,
		c.endpointField(),
		zap.String("collection", req.Collection),
		zap.String("type", string(req.Type)),
	)
	return out, err
}

func (c *Client) runSearch(ctx context.Context, req SearchRequest) ([]Row, error) {
	if err := c.require(ctx); err != nil {
		return nil, err
	}
	r, err := request.New(
		req.Query, req.Collection, mode.Parse(string(req.Type)),
		req.Limit, c.defaultLimit, req.Properties, req.Alpha,
	)
	if err != nil {
		return nil, err
	}
	rows, err := c.search.Search(ctx, &r)
	if err != nil {
		return nil, err
	}
	return rowsFromDomain(rows), nil
}

// CreateCollection creates a class. The first character of the name is
// upper-cased and data types are mapped to the store's tokens. Properties
// with blank names are ignored; at least one must remain.
func (c *Client) CreateCollection(ctx context.Context, schema CollectionSchema) error {
	start := time.Now()
	err := c.createCollection(ctx, schema)
	c.obs.observe("create_collection", start, err, c.endpointField(), zap.String("collection", schema.Name))
	return err
}

func (c *Client) createCollection(ctx context.Context, schema CollectionSchema) error {
	if err := c.require(ctx); err != nil {
		return err
	}
	props := make([]domcol.PropertyInput, len(schema.Properties))
	for i, p := range schema.Properties {
		props[i] = domcol.PropertyInput{Name: p.Name, DataType: p.DataType, Description: p.Description}
	}
	return c.collections.Create(ctx, schema.Name, schema.Description, props)
}

// DeleteCollection removes a class and all its objects.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	start := time.Now()
	err := c.deleteCollection(ctx, name)
	c.obs.observe("delete_collection", start, err, c.endpointField(), zap.String("collection", name))
	return err
}

func (c *Client) deleteCollection(ctx context.Context, name string) error {
	if err := c.require(ctx); err != nil {
		return err
	}
	return c.collections.Delete(ctx, name)
}

// CreateObject stores a new object and returns the identity the store
// assigned to it.
func (c *Client) CreateObject(ctx context.Context, collection string, properties map[string]any) (string, error) {
	start := time.Now()
	id, err := c.createObject(ctx, collection, properties)
	c.obs.observe("create_object", start, err,
		c.endpointField(), zap.String("collection", collection), zap.String("id", id),
	)
	return id, err
}

func (c *Client) createObject(ctx context.Context, collection string, properties map[string]any) (string, error) {
	if err := c.require(ctx); err != nil {
		return "", err
	}
	return c.objects.Create(ctx, collection, domobj.Properties(properties))
}

// UpdateObject merges properties into an existing object. Properties not in
// the map keep their values.
func (c *Client) UpdateObject(ctx context.Context, collection, id string, properties map[string]any) error {
	start := time.Now()
	err := c.updateObject(ctx, collection, id, properties)
	c.obs.observe("update_object", start, err,
		c.endpointField(), zap.String("collection", collection), zap.String("id", id),
	)
	return err
}

func (c *Client) updateObject(ctx context.Context, collection, id string, properties map[string]any) error {
	if err := c.require(ctx); err != nil {
		return err
	}
	return c.objects.Update(ctx, collection, id, domobj.Properties(properties))
}

// DeleteObjects deletes ids one request at a time, in order. The first
// failure stops the run: the returned *DeleteError names the failing id
// and lists the ids already deleted, which are not restored.
func (c *Client) DeleteObjects(ctx context.Context, collection string, ids []string) error {
	start := time.Now()
	err := c.deleteObjects(ctx, ids)
	c.obs.observe("delete_objects", start, err,
		c.endpointField(), zap.String("collection", collection), zap.Int("ids", len(ids)),
	)
	return err
}

func (c *Client) deleteObjects(ctx context.Context, ids []string) error {
	if err := c.require(ctx); err != nil {
		return err
	}
	if len(ids) == 0 {
		return domain.NewValidation("ids", "at least one id is required")
	}
	_, err := c.objects.DeleteMany(ctx, ids)
	return err
}

// GetObjectByID returns the properties of one object. found is false, with
// a nil error, when the store answers 404.
func (c *Client) GetObjectByID(ctx context.Context, collection, id string) (map[string]any, bool, error) {
	start := time.Now()
	props, found, err := c.getObjectByID(ctx, id)
	c.obs.observe("get_object", start, err,
		c.endpointField(), zap.String("collection", collection), zap.String("id", id), zap.Bool("found", found),
	)
	return props, found, err
}

func (c *Client) getObjectByID(ctx context.Context, id string) (map[string]any, bool, error) {
	if err := c.require(ctx); err != nil {
		return nil, false, err
	}
	props, found, err := c.objects.Get(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}
	return props, true, nil
}

// Health probes the store's readiness endpoint and, when an embedder is
// configured, embeds a short probe text. Component failures are reported in
// the result; only a missing configuration is an error.
func (c *Client) Health(ctx context.Context) (Health, error) {
	start := time.Now()
	h, err := c.checkHealth(ctx)
	c.obs.observe("health", start, err, c.endpointField(), zap.String("status", h.Status))
	return h, err
}

func (c *Client) checkHealth(ctx context.Context) (Health, error) {
	if err := c.require(ctx); err != nil {
		return Health{}, err
	}
	r := c.health.Check(ctx)
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return Health{Status: string(r.Status), Checks: checks, Errors: r.Errors}, nil
}

func (c *Client) require(ctx context.Context) error {
	_, err := c.state.Require(ctx)
	return err
}

func (c *Client) endpointField() zap.Field {
	return zap.String("endpoint", c.state.CurrentEndpoint())
}

func collectionFromDomain(col domcol.Collection) Collection {
	props := make([]Property, len(col.Properties()))
	for i, p := range col.Properties() {
		props[i] = Property{Name: p.Name(), DataType: p.DataType(), Description: p.Description()}
	}
	return Collection{
		Name:        col.Name(),
		Description: col.Description(),
		Count:       col.Count(),
		Properties:  props,
	}
}

func rowsFromDomain(rows []domobj.Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		props := r.Properties
		if props == nil {
			props = domobj.Properties{}
		}
		out[i] = Row{
			ID:         r.Additional.ID,
			Score:      r.Additional.Score,
			Distance:   r.Additional.Distance,
			Properties: props,
		}
	}
	return out
}
