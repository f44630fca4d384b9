package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/pkg/authenticator"
	"github.com/questx-lab/rewards/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey         struct{}
	loggerKey          struct{}
	dbKey              struct{}
	dbTxKey            struct{}
	httpClientKey      struct{}
	httpRequestKey     struct{}
	tokenEngineKey     struct{}
	snowflakeKey       struct{}
	requestUserIDKey   struct{}
	requestUserKindKey struct{}
	startTimeKey       struct{}
	responseKey        struct{}
	errorKey           struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, _ := ctx.Value(configsKey{}).(config.Configs)
	return cfg
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger("silence")
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the root
// database connection.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}

	db, _ := ctx.Value(dbKey{}).(*gorm.DB)
	if db == nil {
		return nil
	}

	return db.WithContext(ctx)
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		tx.Commit()
	}

	return context.WithValue(ctx, dbTxKey{}, nil)
}

// WithRollbackDBTransaction is safe to defer after a commit, the rollback of a
// committed transaction is a no-op.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		tx.Rollback()
	}

	return context.WithValue(ctx, dbTxKey{}, nil)
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	client, ok := ctx.Value(httpClientKey{}).(*http.Client)
	if !ok || client == nil {
		return http.DefaultClient
	}

	return client
}

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	req, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return req
}

func WithTokenEngine(
	ctx context.Context, engine authenticator.TokenEngine[model.AccessToken],
) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	engine, _ := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
	return engine
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, _ := ctx.Value(snowflakeKey{}).(*snowflake.Node)
	return node
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, _ := ctx.Value(requestUserIDKey{}).(string)
	return id
}

func WithRequestUserKind(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, requestUserKindKey{}, kind)
}

func RequestUserKind(ctx context.Context) string {
	kind, _ := ctx.Value(requestUserKindKey{}).(string)
	return kind
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}

// Detach returns a context that keeps every value of the parent but is never
// canceled. It is used to run work that must outlive the request.
func Detach(ctx context.Context) context.Context {
	return detachedContext{parent: ctx}
}

type detachedContext struct {
	parent context.Context
}

func (detachedContext) Deadline() (time.Time, bool) {
	return time.Time{}, false
}

func (detachedContext) Done() <-chan struct{} {
	return nil
}

func (detachedContext) Err() error {
	return nil
}

func (c detachedContext) Value(key any) any {
	return c.parent.Value(key)
}
