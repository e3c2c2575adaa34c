package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// executor runs Cypher against the graph store and hands back plain rows.
// The gateway only ever talks to this seam, so unit tests can swap in a fake.
type executor interface {
	write(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
	read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
	schema(ctx context.Context, cypher string) error
	ping(ctx context.Context) error
	close(ctx context.Context) error
}

// neo4jExecutor is the driver-backed executor. One session per call keeps
// concurrent requests isolated while sharing the driver's connection pool.
type neo4jExecutor struct {
	driver   neo4j.DriverWithContext
	database string
}

func (e *neo4jExecutor) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return e.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: e.database,
		AccessMode:   mode,
	})
}

func (e *neo4jExecutor) write(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	session := e.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	rows, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collectRows(ctx, tx, cypher, params)
	})
	if err != nil {
		return nil, err
	}
	return rows.([]map[string]any), nil
}

func (e *neo4jExecutor) read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	session := e.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collectRows(ctx, tx, cypher, params)
	})
	if err != nil {
		return nil, err
	}
	return rows.([]map[string]any), nil
}

// schema runs DDL in an auto-commit transaction; index statements cannot run
// inside managed transactions alongside data writes.
func (e *neo4jExecutor) schema(ctx context.Context, cypher string) error {
	session := e.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, nil)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

func (e *neo4jExecutor) ping(ctx context.Context) error {
	rows, err := e.read(ctx, pingQuery, nil)
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return fmt.Errorf("ping returned %d rows", len(rows))
	}
	return nil
}

func (e *neo4jExecutor) close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

func collectRows(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) ([]map[string]any, error) {
	result, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}
